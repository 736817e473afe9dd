package challenge

import "time"

// CanAccess reports whether the user may open the track.
func CanAccess(t Track, s UserSettings) bool {
	return !t.IsPremium || s.HasUnlocked(t.ID)
}

// CurrentDay is the 1-based challenge day in the user's timezone, capped at
// DaysPerTrack. Zero means the track has not started.
func CurrentDay(s UserSettings, now time.Time) int {
	if s.StartedAt.IsZero() {
		return 0
	}
	loc := s.Location()
	start := dateOf(s.StartedAt.In(loc))
	today := dateOf(now.In(loc))
	if today.Before(start) {
		return 0
	}
	day := int(today.Sub(start).Hours()/24) + 1
	if day > DaysPerTrack {
		return DaysPerTrack
	}
	return day
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextReminderAt returns the next occurrence of the reminder hour after now.
func NextReminderAt(s UserSettings, now time.Time) time.Time {
	loc := s.Location()
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), s.ReminderHour, 0, 0, 0, loc)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
