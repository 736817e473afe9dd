package challenge

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestCurrentDay(t *testing.T) {
	start := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	s := UserSettings{StartedAt: start}

	t.Run("not started", func(t *testing.T) {
		if got := CurrentDay(UserSettings{}, start); got != 0 {
			t.Fatalf("expected 0, got %d", got)
		}
		if got := CurrentDay(s, start.Add(-24*time.Hour)); got != 0 {
			t.Fatalf("expected 0 before start, got %d", got)
		}
	})

	t.Run("counts calendar days", func(t *testing.T) {
		if got := CurrentDay(s, start.Add(time.Hour)); got != 1 {
			t.Fatalf("expected day 1, got %d", got)
		}
		if got := CurrentDay(s, time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC)); got != 2 {
			t.Fatalf("expected day 2 after midnight, got %d", got)
		}
	})

	t.Run("caps at track length", func(t *testing.T) {
		if got := CurrentDay(s, start.AddDate(0, 2, 0)); got != DaysPerTrack {
			t.Fatalf("expected %d, got %d", DaysPerTrack, got)
		}
	})
}

func TestNextReminderAt(t *testing.T) {
	s := UserSettings{ReminderHour: 8}
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	got := NextReminderAt(s, now)
	want := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestNewCode(t *testing.T) {
	code, err := NewCode(bytes.NewReader([]byte{0, 1, 2, 3, 4, 5, 6, 7}))
	if err != nil {
		t.Fatalf("new code: %v", err)
	}
	if code != "ABCD-EFGH" {
		t.Fatalf("unexpected code: %s", code)
	}

	random, err := NewCode(nil)
	if err != nil {
		t.Fatalf("new random code: %v", err)
	}
	if len(random) != 9 || random[4] != '-' {
		t.Fatalf("unexpected code shape: %s", random)
	}
	if strings.ContainsAny(random, "01ILO") {
		t.Fatalf("code contains ambiguous characters: %s", random)
	}
}

func TestNewCode_DiscardsBiasedBytes(t *testing.T) {
	t.Run("bytes past the last full alphabet cycle are skipped", func(t *testing.T) {
		src := []byte{248, 255, 0, 1, 2, 3, 250, 4, 5, 6, 7}
		src = append(src, make([]byte, 5)...)
		code, err := NewCode(bytes.NewReader(src))
		if err != nil {
			t.Fatalf("new code: %v", err)
		}
		if code != "ABCD-EFGH" {
			t.Fatalf("unexpected code: %s", code)
		}
	})

	t.Run("exhausted reader", func(t *testing.T) {
		src := bytes.Repeat([]byte{252}, codeGroupLen*2)
		if _, err := NewCode(bytes.NewReader(src)); err == nil {
			t.Fatalf("expected error when every byte is discarded")
		}
	})

	t.Run("every accepted byte maps uniformly", func(t *testing.T) {
		if codeByteLimit != 248 {
			t.Fatalf("expected limit 248 for a 31 letter alphabet, got %d", codeByteLimit)
		}
		counts := make([]int, len(codeAlphabet))
		for v := 0; v < 256; v++ {
			idx, ok := alphabetIndex(byte(v))
			if ok != (v < codeByteLimit) {
				t.Fatalf("byte %d: accepted=%v", v, ok)
			}
			if ok {
				counts[idx]++
			}
		}
		for i, c := range counts {
			if c != codeByteLimit/len(codeAlphabet) {
				t.Fatalf("letter %q drawn %d times", codeAlphabet[i], c)
			}
		}
	})
}

func TestNormalizeCode(t *testing.T) {
	for in, want := range map[string]string{
		" abcd-efgh ": "ABCD-EFGH",
		"abcdefgh":    "ABCD-EFGH",
		"ab cd ef gh": "ABCD-EFGH",
		"short":       "SHORT",
	} {
		if got := NormalizeCode(in); got != want {
			t.Fatalf("NormalizeCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanAccess(t *testing.T) {
	free := Track{ID: "free"}
	premium := Track{ID: "premium", IsPremium: true}

	if !CanAccess(free, UserSettings{}) {
		t.Fatalf("free track should be accessible")
	}
	if CanAccess(premium, UserSettings{}) {
		t.Fatalf("premium track should be locked")
	}
	if !CanAccess(premium, UserSettings{UnlockedTrackIDs: []string{"premium"}}) {
		t.Fatalf("unlocked premium track should be accessible")
	}
}
