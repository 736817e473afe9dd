package usecase

import (
	"context"
	"strings"

	"github.com/riskibarqy/eviction-league/internal/domain/live"
	"github.com/riskibarqy/eviction-league/internal/platform/logging"
)

// publishBestEffort logs publish failures instead of returning them.
func publishBestEffort(ctx context.Context, publisher live.Publisher, event live.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logging.Default().WarnContext(ctx, "publish change event failed",
			"kind", string(event.Kind),
			"league_id", event.LeagueID,
			"season_id", event.SeasonID,
			"error", err,
		)
	}
}

func normalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
