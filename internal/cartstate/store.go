package cartstate

import (
	"encoding/json"

	"github.com/ariefcatur/go-catalog-cart.git/internal/catalog"
)

// StorageKey is the single fixed key the whole cart lives under.
const StorageKey = "shopping_cart_app_cart"

// LineItem is one entry in the client-local cart. Item is an optional
// cached snapshot for display before the catalog has loaded; the
// reference is weak, the item may be gone or have different stock by now.
type LineItem struct {
	ItemID   string        `json:"itemId"`
	Quantity int           `json:"quantity"`
	Item     *catalog.Item `json:"item,omitempty"`
}

type Totals struct {
	TotalQuantity   int   `json:"totalQuantity"`
	TotalPriceCents int64 `json:"totalPriceCents"`
}

type persistedCart struct {
	Items           []LineItem `json:"items"`
	TotalQuantity   int        `json:"totalQuantity"`
	TotalPriceCents int64      `json:"totalPriceCents"`
}

// Store holds the ordered cart lines in memory and writes the full cart
// back to storage after every mutation. Single-writer, not safe for
// concurrent use; inject one per logical client.
type Store struct {
	storage Storage
	items   []LineItem
}

// NewStore loads the cart from storage. Absent or corrupt data starts an
// empty cart; a broken local cart silently resets instead of blocking
// the user.
func NewStore(storage Storage) *Store {
	s := &Store{storage: storage}

	b, ok, err := storage.Get(StorageKey)
	if err != nil || !ok {
		return s
	}
	var pc persistedCart
	if err := json.Unmarshal(b, &pc); err != nil {
		return s
	}
	for _, ln := range pc.Items {
		if ln.ItemID == "" || ln.Quantity < 1 {
			continue
		}
		s.items = append(s.items, ln)
	}
	return s
}

// Add merges by item id: an existing line's quantity is summed with qty,
// and its snapshot is replaced only when a new one is supplied. A new
// line is appended at the end.
func (s *Store) Add(itemID string, qty int, snapshot *catalog.Item) error {
	if itemID == "" || qty < 1 {
		return catalog.ErrInvalidInput
	}

	if i := s.index(itemID); i >= 0 {
		s.items[i].Quantity += qty
		if snapshot != nil {
			cp := *snapshot
			s.items[i].Item = &cp
		}
		return s.persist()
	}

	ln := LineItem{ItemID: itemID, Quantity: qty}
	if snapshot != nil {
		cp := *snapshot
		ln.Item = &cp
	}
	s.items = append(s.items, ln)
	return s.persist()
}

// SetQuantity replaces (not sums) the line's quantity; qty <= 0 removes
// the line. No line is created for an unknown item id.
func (s *Store) SetQuantity(itemID string, qty int) error {
	i := s.index(itemID)
	if i < 0 {
		return nil
	}
	if qty <= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	} else {
		s.items[i].Quantity = qty
	}
	return s.persist()
}

func (s *Store) Remove(itemID string) error {
	i := s.index(itemID)
	if i < 0 {
		return nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return s.persist()
}

// Clear empties the cart and erases the persisted key.
func (s *Store) Clear() error {
	s.items = nil
	return s.storage.Delete(StorageKey)
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Totals derives quantity and price sums. Price per line resolves from
// the cached snapshot first, then the supplied lookup, else the line
// contributes 0 to price but still counts toward quantity; the
// authoritative catalog may simply not have loaded yet.
func (s *Store) Totals(lookup func(itemID string) (catalog.Item, bool)) Totals {
	var t Totals
	for _, ln := range s.items {
		t.TotalQuantity += ln.Quantity
		switch {
		case ln.Item != nil:
			t.TotalPriceCents += ln.Item.PriceCents * int64(ln.Quantity)
		case lookup != nil:
			if it, ok := lookup(ln.ItemID); ok {
				t.TotalPriceCents += it.PriceCents * int64(ln.Quantity)
			}
		}
	}
	return t
}

func (s *Store) index(itemID string) int {
	for i, ln := range s.items {
		if ln.ItemID == itemID {
			return i
		}
	}
	return -1
}

// persist writes the whole cart, totals included, under the fixed key.
// Persisted totals price from snapshots only; there is no catalog lookup
// at save time.
func (s *Store) persist() error {
	t := s.Totals(nil)
	pc := persistedCart{
		Items:           s.items,
		TotalQuantity:   t.TotalQuantity,
		TotalPriceCents: t.TotalPriceCents,
	}
	if pc.Items == nil {
		pc.Items = []LineItem{}
	}
	b, err := json.Marshal(pc)
	if err != nil {
		return err
	}
	return s.storage.Set(StorageKey, b)
}
