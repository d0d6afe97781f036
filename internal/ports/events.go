package ports

import (
	"context"
	"time"
)

const (
	EventClaimCreated        = "claims.created"
	EventDefectCreated       = "defects.created"
	EventDefectStatusChanged = "defects.status_changed"
	EventTestScriptUpdated   = "test_scripts.updated"
)

// Event announces a state change that already committed to the store.
type Event struct {
	Name       string
	OccurredAt time.Time
	Payload    any
}

// EventPublisher fans events out to subscribers. Adapters may drop events
// when no broker is configured.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
