package memory

import (
	"strconv"
	"time"

	"github.com/riskibarqy/eviction-league/internal/domain/challenge"
	"github.com/riskibarqy/eviction-league/internal/domain/contestant"
	"github.com/riskibarqy/eviction-league/internal/domain/league"
	"github.com/riskibarqy/eviction-league/internal/domain/scoring"
	"github.com/riskibarqy/eviction-league/internal/domain/season"
	"github.com/riskibarqy/eviction-league/internal/domain/team"
)

const (
	SeasonIDDefault  = "season-27"
	LeagueIDDefault  = "league-backyard"
	RuleSetIDDefault = "rules-classic"

	TrackIDGratitude = "track-gratitude"
	TrackIDFocus     = "track-focus"
)

var seedEpoch = time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC)

func SeedSeasons() []season.Season {
	return []season.Season{
		{
			ID:          SeasonIDDefault,
			Name:        "Season 27",
			Number:      27,
			StartsAt:    seedEpoch,
			CurrentWeek: 1,
		},
	}
}

func SeedRuleSets() []scoring.RuleSet {
	return []scoring.RuleSet{
		{
			ID:   RuleSetIDDefault,
			Name: "Classic",
			Rules: []scoring.Rule{
				{Code: "HOH", Label: "Head of Household win", Points: 10},
				{Code: "VETO", Label: "Power of Veto win", Points: 7},
				{Code: "NOMINATIONS", Label: "Nominated", Points: -3},
				{Code: "EVICTION", Label: "Evicted", Points: -5},
				{Code: "BLOCK_BUSTER", Label: "BB Blockbuster win", Points: 5},
			},
		},
	}
}

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:        LeagueIDDefault,
			SeasonID:  SeasonIDDefault,
			Name:      "Backyard League",
			RuleSetID: RuleSetIDDefault,
			CreatedAt: seedEpoch,
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "team-diary-room", LeagueID: LeagueIDDefault, Name: "Diary Room", DraftOrder: 1},
		{ID: "team-have-nots", LeagueID: LeagueIDDefault, Name: "Have-Nots", DraftOrder: 2},
		{ID: "team-backyard", LeagueID: LeagueIDDefault, Name: "Backyard Crew", DraftOrder: 3},
		{ID: "team-jury-house", LeagueID: LeagueIDDefault, Name: "Jury House", DraftOrder: 4},
	}
}

func SeedContestants() []contestant.Contestant {
	names := [][2]string{
		{"Angela", "Murray"},
		{"Ashley", "Baptiste"},
		{"Cam", "Sullivan-Brown"},
		{"Chelsie", "Baham"},
		{"Joseph", "Rodriguez"},
		{"Kimo", "Apaka"},
		{"Leah", "Peters"},
		{"Makensy", "Manbeck"},
		{"Quinn", "Martin"},
		{"Rubina", "Bernabe"},
		{"T'kor", "Clottey"},
		{"Tucker", "Des Lauriers"},
	}

	out := make([]contestant.Contestant, 0, len(names))
	for i, n := range names {
		out = append(out, contestant.Contestant{
			ID:         seedContestantID(i),
			SeasonID:   SeasonIDDefault,
			FirstName:  n[0],
			LastName:   n[1],
			Status:     contestant.StatusActive,
			EnteredDay: 1,
		})
	}
	return out
}

func seedContestantID(i int) string {
	return "hg-" + string(rune('a'+i))
}

func SeedTracks() []challenge.Track {
	return []challenge.Track{
		{
			ID:          TrackIDGratitude,
			Slug:        "gratitude",
			Title:       "30 Days of Gratitude",
			Description: "One small prompt a day to notice what went right.",
			Days:        challenge.DaysPerTrack,
			CreatedAt:   seedEpoch,
		},
		{
			ID:          TrackIDFocus,
			Slug:        "deep-focus",
			Title:       "Deep Focus",
			Description: "Thirty days of building an attention habit.",
			Days:        challenge.DaysPerTrack,
			IsPremium:   true,
			CreatedAt:   seedEpoch,
		},
	}
}

func SeedPrompts() []challenge.Prompt {
	out := make([]challenge.Prompt, 0, 2*challenge.DaysPerTrack)
	for _, tr := range SeedTracks() {
		for day := 1; day <= challenge.DaysPerTrack; day++ {
			out = append(out, challenge.Prompt{
				TrackID: tr.ID,
				Day:     day,
				Title:   tr.Title + ", day " + strconv.Itoa(day),
				Body:    "Take **five minutes** today.\nWrite down one thing about *" + tr.Slug + "* you noticed.",
			})
		}
	}
	return out
}
