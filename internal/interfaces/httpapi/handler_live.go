package httpapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/riskibarqy/eviction-league/internal/usecase"
)

const (
	liveWriteTimeout = 10 * time.Second
	livePongTimeout  = 60 * time.Second
	livePingInterval = 25 * time.Second
)

func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			allowAll = true
		}
		if origin != "" {
			allowed[origin] = struct{}{}
		}
	}

	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowAll {
				return true
			}
			if _, ok := allowed[origin]; ok {
				return true
			}
			u, err := url.Parse(origin)
			return err == nil && strings.EqualFold(u.Host, r.Host)
		},
	}
}

// WatchLeague upgrades to a WebSocket and pushes a full league snapshot on
// connect and after every change that touches the league.
func (h *Handler) WatchLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WatchLeague")
	defer span.End()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	leagueID := r.PathValue("leagueID")
	snapshots, err := h.liveService.Watch(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "watch league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.logger.WarnContext(ctx, "websocket upgrade failed", "league_id", leagueID, "error", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()
	h.logger.InfoContext(ctx, "live watcher connected", "league_id", leagueID)

	go readUntilClosed(conn, cancel)

	ticker := time.NewTicker(livePingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.InfoContext(ctx, "live watcher disconnected", "league_id", leagueID)
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(liveWriteTimeout)); err != nil {
				return
			}
		case snap, ok := <-snapshots:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "change feed closed"),
					time.Now().Add(liveWriteTimeout))
				return
			}
			if err := writeSnapshot(conn, snap); err != nil {
				h.logger.WarnContext(ctx, "write live snapshot failed", "league_id", leagueID, "error", err)
				return
			}
		}
	}
}

// readUntilClosed drains client frames so pongs and close frames are processed.
func readUntilClosed(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(4096)
	_ = conn.SetReadDeadline(time.Now().Add(livePongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(livePongTimeout))
	})
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func writeSnapshot(conn *websocket.Conn, snap usecase.LeagueSnapshot) error {
	msg := liveMessageDTO{
		Type:       "snapshot",
		Draft:      draftBoardToDTO(snap.Draft),
		Scoreboard: scoreboardToDTO(snap.Scoreboard),
		At:         time.Now().UTC(),
	}
	if snap.Cause != nil {
		msg.Cause = string(snap.Cause.Kind)
		msg.At = snap.Cause.At
	}

	payload, err := sonic.Marshal(msg)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}
