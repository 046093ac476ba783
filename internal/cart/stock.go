package cart

import (
	"context"

	"github.com/ariefcatur/go-catalog-cart.git/internal/catalog"
)

// StockReader is the slice of the item repository the cart logic needs.
// *catalog.Repo satisfies it.
type StockReader interface {
	GetStock(ctx context.Context, itemID string) (int, error)
}

type StockCheck struct {
	Available         bool `json:"available"`
	AvailableStock    int  `json:"availableStock"`
	RequestedQuantity int  `json:"requestedQuantity"`
}

type Checker struct {
	stock StockReader
}

func NewChecker(s StockReader) *Checker { return &Checker{stock: s} }

// CheckStock reports whether qty of an item can be taken from current
// stock. A missing item fails with catalog.ErrNotFound, unmodified, so
// the caller can tell "not found" apart from "insufficient".
func (c *Checker) CheckStock(ctx context.Context, itemID string, qty int) (StockCheck, error) {
	if itemID == "" || qty < 1 {
		return StockCheck{}, catalog.ErrInvalidInput
	}
	stock, err := c.stock.GetStock(ctx, itemID)
	if err != nil {
		return StockCheck{}, err
	}
	return StockCheck{
		Available:         stock >= qty,
		AvailableStock:    stock,
		RequestedQuantity: qty,
	}, nil
}
