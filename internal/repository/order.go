package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dispatch-platform-go/internal/domain"
)

// OrderRepo represents order repository.
type OrderRepo struct{ db *pgxpool.Pool }

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo { return &OrderRepo{db: db} }

const orderColumns = `id, items, status, partner_id, total_amount,
       customer_name, customer_phone, address, prep_minutes,
       created_at, assigned_at, picked_at, on_route_at, delivered_at`

type orderRow interface {
	Scan(dest ...any) error
}

func scanOrder(row orderRow) (*domain.Order, error) {
	var (
		o     domain.Order
		items []byte
	)
	err := row.Scan(&o.ID, &items, &o.Status, &o.PartnerID, &o.TotalAmount,
		&o.CustomerName, &o.CustomerPhone, &o.Address, &o.PrepMinutes,
		&o.CreatedAt, &o.AssignedAt, &o.PickedAt, &o.OnRouteAt, &o.DeliveredAt)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("decode order items: %w", err)
		}
	}
	return &o, nil
}

// Create - persists a new order.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO orders (id, items, status, total_amount,
                            customer_name, customer_phone, address, prep_minutes, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, o.ID, items, string(o.Status), o.TotalAmount,
		o.CustomerName, o.CustomerPhone, o.Address, o.PrepMinutes, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("create order %q: %w", o.ID, err)
	}
	return nil
}

// Get - returns order by its ID, nil when absent.
func (r *OrderRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %q: %w", id, err)
	}
	return o, nil
}

// ListAvailable returns PREP orders with no assigned partner, oldest first.
func (r *OrderRepo) ListAvailable(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+orderColumns+`
        FROM orders
        WHERE status = $1 AND partner_id IS NULL
        ORDER BY created_at
    `, string(domain.StatusPrep))
	if err != nil {
		return nil, fmt.Errorf("list available orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	out := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}
