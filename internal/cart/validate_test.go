package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCart(t *testing.T) {
	ctx := context.Background()
	stocks := stubStock{
		stock:    map[string]int{"itm-1": 10, "itm-2": 5},
		failWith: map[string]error{"itm-broken": errors.New("malformed id rejected by store")},
	}
	v := NewValidator(stocks)

	t.Run("all sufficient", func(t *testing.T) {
		rep := v.ValidateCart(ctx, []Line{{"itm-1", 5}, {"itm-2", 3}})
		assert.True(t, rep.IsValid)
		assert.Empty(t, rep.Errors)
		assert.NotNil(t, rep.Errors)
	})

	t.Run("one insufficient line", func(t *testing.T) {
		rep := v.ValidateCart(ctx, []Line{{"itm-1", 15}, {"itm-2", 3}})
		assert.False(t, rep.IsValid)
		require.Len(t, rep.Errors, 1)
		assert.Equal(t, "Item itm-1: insufficient stock. Available: 10, Requested: 15", rep.Errors[0])
	})

	t.Run("unknown item is a message, not an error", func(t *testing.T) {
		rep := v.ValidateCart(ctx, []Line{{"nope", 5}})
		assert.False(t, rep.IsValid)
		require.Len(t, rep.Errors, 1)
		assert.Equal(t, "Item nope: not found", rep.Errors[0])
	})

	t.Run("unexpected failure becomes a generic message", func(t *testing.T) {
		rep := v.ValidateCart(ctx, []Line{{"itm-broken", 1}})
		assert.False(t, rep.IsValid)
		require.Len(t, rep.Errors, 1)
		assert.Equal(t, "Item itm-broken: validation error", rep.Errors[0])
	})

	t.Run("every line evaluated, input order kept", func(t *testing.T) {
		rep := v.ValidateCart(ctx, []Line{
			{"nope", 1},       // not found
			{"itm-1", 3},      // fine
			{"itm-broken", 2}, // unexpected
			{"itm-2", 99},     // insufficient
		})
		assert.False(t, rep.IsValid)
		require.Len(t, rep.Errors, 3)
		assert.Equal(t, "Item nope: not found", rep.Errors[0])
		assert.Equal(t, "Item itm-broken: validation error", rep.Errors[1])
		assert.Equal(t, "Item itm-2: insufficient stock. Available: 5, Requested: 99", rep.Errors[2])
	})

	t.Run("duplicate failing lines are not deduplicated", func(t *testing.T) {
		rep := v.ValidateCart(ctx, []Line{{"nope", 1}, {"nope", 2}})
		require.Len(t, rep.Errors, 2)
	})
}
