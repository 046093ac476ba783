package cartstate

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-catalog-cart.git/internal/catalog"
)

type memStorage struct {
	data map[string][]byte
	err  error
}

func newMemStorage() *memStorage { return &memStorage{data: map[string][]byte{}} }

func (m *memStorage) Get(key string) ([]byte, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	b, ok := m.data[key]
	return b, ok, nil
}
func (m *memStorage) Set(key string, value []byte) error {
	m.data[key] = value
	return nil
}
func (m *memStorage) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func item(id string, priceCents int64) *catalog.Item {
	return &catalog.Item{ID: id, Kind: catalog.KindProduct, Name: "item " + id, PriceCents: priceCents, Stock: 100}
}

func TestStoreAdd(t *testing.T) {
	t.Run("repeated add sums quantities into one line", func(t *testing.T) {
		s := NewStore(newMemStorage())
		require.NoError(t, s.Add("itm-1", 3, nil))
		require.NoError(t, s.Add("itm-1", 2, nil))

		lines := s.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 5, lines[0].Quantity)
	})

	t.Run("new lines append in insertion order", func(t *testing.T) {
		s := NewStore(newMemStorage())
		require.NoError(t, s.Add("b", 1, nil))
		require.NoError(t, s.Add("a", 1, nil))
		require.NoError(t, s.Add("c", 1, nil))
		require.NoError(t, s.Add("a", 1, nil))

		lines := s.Lines()
		require.Len(t, lines, 3)
		assert.Equal(t, "b", lines[0].ItemID)
		assert.Equal(t, "a", lines[1].ItemID)
		assert.Equal(t, "c", lines[2].ItemID)
	})

	t.Run("snapshot kept unless a new one is supplied", func(t *testing.T) {
		s := NewStore(newMemStorage())
		require.NoError(t, s.Add("itm-1", 1, item("itm-1", 500)))
		require.NoError(t, s.Add("itm-1", 1, nil))

		lines := s.Lines()
		require.NotNil(t, lines[0].Item)
		assert.Equal(t, int64(500), lines[0].Item.PriceCents)

		require.NoError(t, s.Add("itm-1", 1, item("itm-1", 700)))
		assert.Equal(t, int64(700), s.Lines()[0].Item.PriceCents)
	})

	t.Run("invalid input rejected", func(t *testing.T) {
		s := NewStore(newMemStorage())
		require.ErrorIs(t, s.Add("itm-1", 0, nil), catalog.ErrInvalidInput)
		require.ErrorIs(t, s.Add("", 1, nil), catalog.ErrInvalidInput)
		assert.Empty(t, s.Lines())
	})
}

func TestStoreSetQuantity(t *testing.T) {
	t.Run("replaces instead of summing", func(t *testing.T) {
		s := NewStore(newMemStorage())
		require.NoError(t, s.Add("itm-1", 5, nil))
		require.NoError(t, s.SetQuantity("itm-1", 2))
		assert.Equal(t, 2, s.Lines()[0].Quantity)
	})

	t.Run("zero removes the line", func(t *testing.T) {
		s := NewStore(newMemStorage())
		require.NoError(t, s.Add("itm-1", 5, nil))
		require.NoError(t, s.Add("itm-1", 2, nil))
		require.NoError(t, s.SetQuantity("itm-1", 0))

		assert.Empty(t, s.Lines())
		assert.Equal(t, Totals{}, s.Totals(nil))
	})

	t.Run("unknown id is a no-op, no line created", func(t *testing.T) {
		s := NewStore(newMemStorage())
		require.NoError(t, s.SetQuantity("ghost", 3))
		assert.Empty(t, s.Lines())
	})
}

func TestStoreRemoveAndClear(t *testing.T) {
	st := newMemStorage()
	s := NewStore(st)
	require.NoError(t, s.Add("a", 1, nil))
	require.NoError(t, s.Add("b", 2, nil))

	require.NoError(t, s.Remove("a"))
	require.Len(t, s.Lines(), 1)
	require.NoError(t, s.Remove("a")) // already gone

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Lines())

	_, ok, err := st.Get(StorageKey)
	require.NoError(t, err)
	assert.False(t, ok, "clear must erase the persisted key")
}

func TestStoreTotals(t *testing.T) {
	s := NewStore(newMemStorage())
	require.NoError(t, s.Add("priced", 2, item("priced", 1000)))
	require.NoError(t, s.Add("looked-up", 3, nil))
	require.NoError(t, s.Add("unknown", 4, nil))

	lookup := func(id string) (catalog.Item, bool) {
		if id == "looked-up" {
			return catalog.Item{ID: id, PriceCents: 200}, true
		}
		return catalog.Item{}, false
	}

	t.Run("snapshot, then lookup, then zero", func(t *testing.T) {
		got := s.Totals(lookup)
		assert.Equal(t, 9, got.TotalQuantity)
		assert.Equal(t, int64(2*1000+3*200), got.TotalPriceCents)
	})

	t.Run("nil lookup still counts quantity", func(t *testing.T) {
		got := s.Totals(nil)
		assert.Equal(t, 9, got.TotalQuantity)
		assert.Equal(t, int64(2000), got.TotalPriceCents)
	})
}

func TestStorePersistence(t *testing.T) {
	t.Run("round trip through file storage", func(t *testing.T) {
		fs, err := NewFileStorage(t.TempDir())
		require.NoError(t, err)

		s := NewStore(fs)
		require.NoError(t, s.Add("itm-1", 3, item("itm-1", 1500)))
		require.NoError(t, s.Add("itm-2", 1, nil))

		reloaded := NewStore(fs)
		lines := reloaded.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, "itm-1", lines[0].ItemID)
		assert.Equal(t, 3, lines[0].Quantity)
		assert.Equal(t, "itm-2", lines[1].ItemID)
		assert.Equal(t, 1, lines[1].Quantity)
		require.NotNil(t, lines[0].Item)
		assert.Equal(t, int64(1500), lines[0].Item.PriceCents)
	})

	t.Run("persisted shape carries totals", func(t *testing.T) {
		st := newMemStorage()
		s := NewStore(st)
		require.NoError(t, s.Add("itm-1", 2, item("itm-1", 250)))

		b, ok, err := st.Get(StorageKey)
		require.NoError(t, err)
		require.True(t, ok)

		var pc struct {
			Items           []LineItem `json:"items"`
			TotalQuantity   int        `json:"totalQuantity"`
			TotalPriceCents int64      `json:"totalPriceCents"`
		}
		require.NoError(t, json.Unmarshal(b, &pc))
		assert.Equal(t, 2, pc.TotalQuantity)
		assert.Equal(t, int64(500), pc.TotalPriceCents)
		require.Len(t, pc.Items, 1)
	})

	t.Run("corrupt data loads as an empty cart", func(t *testing.T) {
		st := newMemStorage()
		st.data[StorageKey] = []byte("{not json")
		s := NewStore(st)
		assert.Empty(t, s.Lines())
	})

	t.Run("structurally wrong data is treated as absent", func(t *testing.T) {
		st := newMemStorage()
		st.data[StorageKey] = []byte(`{"items":[{"itemId":"","quantity":-3},{"itemId":"ok","quantity":1}]}`)
		s := NewStore(st)
		lines := s.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, "ok", lines[0].ItemID)
	})

	t.Run("storage read failure starts empty", func(t *testing.T) {
		st := newMemStorage()
		st.err = errors.New("disk on fire")
		s := NewStore(st)
		assert.Empty(t, s.Lines())
	})
}
