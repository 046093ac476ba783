package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-catalog-cart.git/internal/catalog"
	kafkax "github.com/ariefcatur/go-catalog-cart.git/internal/kafka"
	"github.com/ariefcatur/go-catalog-cart.git/internal/redisx"
)

// Service keeps the redis item cache in step with catalog events so API
// reads stay warm without waiting for a cache miss.
type Service struct {
	Redis       *redis.Client
	ServiceName string
}

// HandleItemEvent is the consumer handler for the item events topic.
func (s *Service) HandleItemEvent(ctx context.Context, m kafkago.Message) error {
	var env catalog.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	switch env.EventType {
	case catalog.EventItemCreated, catalog.EventItemUpdated, catalog.EventItemDeleted:
	default:
		return nil // ignore
	}

	// dedup by event id
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	switch env.EventType {
	case catalog.EventItemDeleted:
		p, err := kafkax.UnwrapPayload[catalog.ItemDeletedPayload](env.Payload)
		if err != nil {
			return err
		}
		if err := s.Redis.Del(ctx, fmt.Sprintf(redisx.KeyItem, p.ItemID)).Err(); err != nil {
			return err
		}
		slog.Debug("item cache evicted", "item_id", p.ItemID)
		return nil

	default:
		p, err := kafkax.UnwrapPayload[catalog.ItemChangedPayload](env.Payload)
		if err != nil {
			return err
		}
		key := fmt.Sprintf(redisx.KeyItem, p.Item.ID)
		if err := s.Redis.Set(ctx, key, kafkax.MustMarshal(p.Item), redisx.TTLItemCache).Err(); err != nil {
			return err
		}
		slog.Debug("item cache refreshed", "item_id", p.Item.ID, "event", env.EventType)
		return nil
	}
}
