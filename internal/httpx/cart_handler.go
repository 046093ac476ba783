package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-catalog-cart.git/internal/cart"
	"github.com/ariefcatur/go-catalog-cart.git/internal/catalog"
)

type CheckStockReq struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type ValidateCartReq struct {
	Items []cart.Line `json:"items"`
}

type CartHandler struct {
	Checker   *cart.Checker
	Validator *cart.Validator
}

func (h *CartHandler) Register(r *chi.Mux) {
	r.Post("/cart/check-stock", h.checkStock)
	r.Post("/cart/validate", h.validateCart)
}

func (h *CartHandler) checkStock(w http.ResponseWriter, r *http.Request) {
	var req CheckStockReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ItemID == "" || req.Quantity < 1 {
		writeError(w, http.StatusBadRequest, "itemId and a positive quantity are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	res, err := h.Checker.CheckStock(ctx, req.ItemID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			writeError(w, http.StatusNotFound, "item not found")
		case errors.Is(err, catalog.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid input")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// validateCart rejects an empty line list here at the boundary; past that
// the validator always produces a report, so this always answers 200.
func (h *CartHandler) validateCart(w http.ResponseWriter, r *http.Request) {
	var req ValidateCartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "items must not be empty")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	writeJSON(w, http.StatusOK, h.Validator.ValidateCart(ctx, req.Items))
}
