package changefeed

import (
	"github.com/bytedance/sonic"
	"github.com/riskibarqy/eviction-league/internal/domain/live"
	"github.com/valyala/bytebufferpool"
)

// DefaultTopic is the redis channel and nats subject events travel on.
const DefaultTopic = "eviction-league.live"

const subscriberBuffer = 64

func encodeEvent(event live.Event) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(event); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.B...), nil
}

func decodeEvent(payload []byte) (live.Event, error) {
	var event live.Event
	if err := sonic.Unmarshal(payload, &event); err != nil {
		return live.Event{}, err
	}
	return event, nil
}
