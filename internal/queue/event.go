// Package queue carries catalog change events over RabbitMQ: the payload,
// a publisher used by the services and an audit consumer that appends every
// event to a log file.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// Resource names used in events.
const (
	ResourceMovie  = "movie"
	ResourceActor  = "actor"
	ResourceRating = "rating"
	ResourceUser   = "user"
)

// Actions used in events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// CatalogEvent is published after every successful write.  It carries
// enough information for downstream consumers to audit the change without
// querying the primary database.
type CatalogEvent struct {
	ID         string `json:"id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	EntityID   uint64 `json:"entity_id"`
	UserID     uint64 `json:"user_id"`
	Username   string `json:"username"`
	OccurredAt string `json:"occurred_at"`
}

// NewCatalogEvent stamps an event with a fresh id and the current UTC time.
func NewCatalogEvent(resource, action string, entityID, userID uint64, username string) CatalogEvent {
	return CatalogEvent{
		ID:         uuid.NewString(),
		Resource:   resource,
		Action:     action,
		EntityID:   entityID,
		UserID:     userID,
		Username:   username,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
