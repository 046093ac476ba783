package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-catalog-cart.git/internal/catalog"
	kafkax "github.com/ariefcatur/go-catalog-cart.git/internal/kafka"
	"github.com/ariefcatur/go-catalog-cart.git/internal/redisx"
)

type ItemsHandler struct {
	Repo     *catalog.Repo
	Redis    *redis.Client
	Producer *kafkax.Producer
	Service  string
}

// Register mounts the catalog routes; mutations go behind auth.
func (h *ItemsHandler) Register(r *chi.Mux, auth func(http.Handler) http.Handler) {
	r.Get("/items", h.listItems)
	r.Get("/items/{id}", h.getItem)

	r.Group(func(g chi.Router) {
		g.Use(auth)
		g.Post("/items", h.createItem)
		g.Put("/items/{id}", h.updateItem)
		g.Delete("/items/{id}", h.deleteItem)
	})
}

func (h *ItemsHandler) createItem(w http.ResponseWriter, r *http.Request) {
	var in catalog.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	it, err := h.Repo.Create(ctx, in)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid input")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.cacheItem(ctx, it)
	h.publish(catalog.EventItemCreated, it.ID, catalog.ItemChangedPayload{Item: it},
		r.Header.Get("X-Request-Id"))

	writeJSON(w, http.StatusCreated, it)
}

func (h *ItemsHandler) listItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	items, err := h.Repo.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if items == nil {
		items = []catalog.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemsHandler) getItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// cache first
	key := fmt.Sprintf(redisx.KeyItem, id)
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		writeJSON(w, http.StatusOK, json.RawMessage(s))
		return
	}

	// fallback DB, then fill the cache
	it, err := h.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.cacheItem(ctx, it)
	writeJSON(w, http.StatusOK, it)
}

func (h *ItemsHandler) updateItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var p catalog.UpdatePatch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	it, err := h.Repo.Update(ctx, id, p)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid input")
		case errors.Is(err, catalog.ErrNotFound):
			writeError(w, http.StatusNotFound, "item not found")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.cacheItem(ctx, it)
	h.publish(catalog.EventItemUpdated, it.ID, catalog.ItemChangedPayload{Item: it},
		r.Header.Get("X-Request-Id"))

	writeJSON(w, http.StatusOK, it)
}

func (h *ItemsHandler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	_ = h.Redis.Del(ctx, fmt.Sprintf(redisx.KeyItem, id)).Err()
	h.publish(catalog.EventItemDeleted, id, catalog.ItemDeletedPayload{ItemID: id},
		r.Header.Get("X-Request-Id"))

	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemsHandler) cacheItem(ctx context.Context, it catalog.Item) {
	key := fmt.Sprintf(redisx.KeyItem, it.ID)
	_ = h.Redis.Set(ctx, key, kafkax.MustMarshal(it), redisx.TTLItemCache).Err()
}

func (h *ItemsHandler) publish(eventType, itemID string, payload any, traceID string) {
	ev := catalog.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       traceID,
		CorrelationID: itemID,
		Payload:       kafkax.MustMarshal(payload),
	}
	h.Producer.Publish(catalog.PartitionKey(itemID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
