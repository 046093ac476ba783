package cache

import (
	"context"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-catalog-cart.git/internal/catalog"
	kafkax "github.com/ariefcatur/go-catalog-cart.git/internal/kafka"
)

// Redis is only touched past the event-type gate, so these paths run
// without a server.
func TestHandleItemEventDecoding(t *testing.T) {
	svc := &Service{ServiceName: "cachesync"}
	ctx := context.Background()

	t.Run("unrelated event types are ignored", func(t *testing.T) {
		env := catalog.Envelope{EventType: "OrderCreated", Payload: []byte(`{}`)}
		err := svc.HandleItemEvent(ctx, kafkago.Message{Value: kafkax.MustMarshal(env)})
		require.NoError(t, err)
	})

	t.Run("broken envelope is an error", func(t *testing.T) {
		err := svc.HandleItemEvent(ctx, kafkago.Message{Value: []byte("{nope")})
		require.Error(t, err)
	})
}
