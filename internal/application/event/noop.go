package event

import (
	"context"
	"time"
)

// NoopPublisher is used in dev and tests when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	return nil
}

// NoopStats swallows hits and reports zero views; it keeps event browsing
// alive when the stats collaborator is absent.
type NoopStats struct{}

func (NoopStats) RecordView(ctx context.Context, uri, ip string) {}

func (NoopStats) ViewCounts(ctx context.Context, uris []string, since, until time.Time, uniqueOnly bool) (map[string]int64, error) {
	return map[string]int64{}, nil
}
