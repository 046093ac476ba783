package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariefcatur/go-catalog-cart.git/internal/catalog"
)

type Line struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type Report struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

type Validator struct {
	stock StockReader
}

func NewValidator(s StockReader) *Validator { return &Validator{stock: s} }

// ValidateCart checks every line and collects one message per failing
// line, in input order. A per-line failure never aborts the loop; every
// line is evaluated before the report is returned.
func (v *Validator) ValidateCart(ctx context.Context, lines []Line) Report {
	errs := make([]string, 0, len(lines))

	for _, ln := range lines {
		stock, err := v.stock.GetStock(ctx, ln.ItemID)
		switch {
		case err == nil:
			if stock < ln.Quantity {
				errs = append(errs, fmt.Sprintf(
					"Item %s: insufficient stock. Available: %d, Requested: %d",
					ln.ItemID, stock, ln.Quantity))
			}
		case errors.Is(err, catalog.ErrNotFound):
			errs = append(errs, fmt.Sprintf("Item %s: not found", ln.ItemID))
		default:
			errs = append(errs, fmt.Sprintf("Item %s: validation error", ln.ItemID))
		}
	}

	return Report{IsValid: len(errs) == 0, Errors: errs}
}
