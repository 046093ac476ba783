package catalog

import (
	"encoding/json"
	"time"
)

const (
	EventItemCreated = "ItemCreated"
	EventItemUpdated = "ItemUpdated"
	EventItemDeleted = "ItemDeleted"
)

type Envelope struct {
	EventID       string          `json:"event_id"` // uuid
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "catalog-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // item_id
	Payload       json.RawMessage `json:"payload"`
}

// ItemChangedPayload carries the full item snapshot for created/updated
// events so consumers never need to re-query.
type ItemChangedPayload struct {
	Item Item `json:"item"`
}

type ItemDeletedPayload struct {
	ItemID string `json:"item_id"`
}
