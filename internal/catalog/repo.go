package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const itemColumns = `id, kind, name, description, price_cents, thumbnail, stock,
	category, event_date, location, capacity, start_time, end_time,
	created_at, updated_at`

type Repo struct {
	DB     *pgxpool.Pool
	tracer trace.Tracer
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{DB: db, tracer: otel.Tracer("catalog/repo")}
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (Item, error) {
	ctx, span := r.tracer.Start(ctx, "catalog.create",
		trace.WithAttributes(attribute.String("item.kind", string(in.Kind))))
	defer span.End()

	if err := in.Validate(); err != nil {
		return Item{}, err
	}

	now := time.Now().UTC()
	it := Item{
		ID:          uuid.NewString(),
		Kind:        in.Kind,
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Thumbnail:   in.Thumbnail,
		Stock:       in.Stock,
		Category:    in.Category,
		EventDate:   in.EventDate,
		Location:    in.Location,
		Capacity:    in.Capacity,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := r.DB.Exec(ctx, `
		INSERT INTO items(id, kind, name, description, price_cents, thumbnail, stock,
		                  category, event_date, location, capacity, start_time, end_time,
		                  created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		it.ID, it.Kind, it.Name, it.Description, it.PriceCents, it.Thumbnail, it.Stock,
		it.Category, it.EventDate, it.Location, it.Capacity, it.StartTime, it.EndTime,
		it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return Item{}, err
	}
	return it, nil
}

func (r *Repo) Get(ctx context.Context, id string) (Item, error) {
	ctx, span := r.tracer.Start(ctx, "catalog.get",
		trace.WithAttributes(attribute.String("item.id", id)))
	defer span.End()

	row := r.DB.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id=$1`, id)
	it, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	return it, err
}

// GetStock returns the current stock only; the cart package reads through
// this instead of loading the whole item.
func (r *Repo) GetStock(ctx context.Context, id string) (int, error) {
	ctx, span := r.tracer.Start(ctx, "catalog.get_stock",
		trace.WithAttributes(attribute.String("item.id", id)))
	defer span.End()

	var stock int
	err := r.DB.QueryRow(ctx, `SELECT stock FROM items WHERE id=$1`, id).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return stock, err
}

func (r *Repo) List(ctx context.Context) ([]Item, error) {
	ctx, span := r.tracer.Start(ctx, "catalog.list")
	defer span.End()

	rows, err := r.DB.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Update applies a partial update; only non-nil patch fields change.
func (r *Repo) Update(ctx context.Context, id string, p UpdatePatch) (Item, error) {
	ctx, span := r.tracer.Start(ctx, "catalog.update",
		trace.WithAttributes(attribute.String("item.id", id)))
	defer span.End()

	if err := p.Validate(); err != nil {
		return Item{}, err
	}

	set, args := buildUpdate(p)
	if len(set) == 0 {
		// nothing to change
		return r.Get(ctx, id)
	}

	set = append(set, fmt.Sprintf("updated_at=$%d", len(args)+1))
	args = append(args, time.Now().UTC())
	args = append(args, id)

	q := `UPDATE items SET ` + strings.Join(set, ", ") +
		fmt.Sprintf(` WHERE id=$%d RETURNING `, len(args)) + itemColumns

	row := r.DB.QueryRow(ctx, q, args...)
	it, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	return it, err
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ctx, span := r.tracer.Start(ctx, "catalog.delete",
		trace.WithAttributes(attribute.String("item.id", id)))
	defer span.End()

	ct, err := r.DB.Exec(ctx, `DELETE FROM items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// buildUpdate turns the non-nil patch fields into SET clauses with
// positional params, in a fixed column order.
func buildUpdate(p UpdatePatch) (set []string, args []any) {
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	if p.Kind != nil {
		add("kind", *p.Kind)
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.PriceCents != nil {
		add("price_cents", *p.PriceCents)
	}
	if p.Thumbnail != nil {
		add("thumbnail", *p.Thumbnail)
	}
	if p.Stock != nil {
		add("stock", *p.Stock)
	}
	if p.Category != nil {
		add("category", *p.Category)
	}
	if p.EventDate != nil {
		add("event_date", *p.EventDate)
	}
	if p.Location != nil {
		add("location", *p.Location)
	}
	if p.Capacity != nil {
		add("capacity", *p.Capacity)
	}
	if p.StartTime != nil {
		add("start_time", *p.StartTime)
	}
	if p.EndTime != nil {
		add("end_time", *p.EndTime)
	}
	return set, args
}

func scanItem(row pgx.Row) (Item, error) {
	var it Item
	err := row.Scan(
		&it.ID, &it.Kind, &it.Name, &it.Description, &it.PriceCents, &it.Thumbnail,
		&it.Stock, &it.Category, &it.EventDate, &it.Location, &it.Capacity,
		&it.StartTime, &it.EndTime, &it.CreatedAt, &it.UpdatedAt,
	)
	return it, err
}
