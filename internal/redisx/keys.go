package redisx

import "time"

const (
	// Cache item by id: item:{item_id} -> item JSON
	KeyItem = "item:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLItemCache = 5 * time.Minute
	TTLDedup     = 48 * time.Hour
)
