package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dispatch-platform-go/internal/domain"
	"dispatch-platform-go/internal/ports/dispatchtx"
)

// DispatchRepo runs order/partner mutations inside one transaction with row
// locks, so concurrent assigns on the same order or partner serialize.
type DispatchRepo struct {
	db *pgxpool.Pool
}

// NewDispatchRepo creates a new DispatchRepo.
func NewDispatchRepo(db *pgxpool.Pool) *DispatchRepo {
	return &DispatchRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *DispatchRepo) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	// roll back on panic before re-raising
	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	wrapped := &TxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// GetOrderForUpdate - load an order and take its row lock.
func (r *TxRepo) GetOrderForUpdate(ctx context.Context, orderID string) (*domain.Order, error) {
	row := r.tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1 FOR UPDATE`, orderID)
	o, err := scanOrder(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %q for update: %w", orderID, err)
	}
	return o, nil
}

// GetPartnerForUpdate - load a partner and take its row lock.
func (r *TxRepo) GetPartnerForUpdate(ctx context.Context, partnerID string) (*domain.Partner, error) {
	row := r.tx.QueryRow(ctx, `SELECT `+partnerColumns+` FROM partners WHERE id=$1 FOR UPDATE`, partnerID)
	p, err := scanPartner(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get partner %q for update: %w", partnerID, err)
	}
	return p, nil
}

// SetOrderPartner - bind a partner to an unassigned PREP order.
func (r *TxRepo) SetOrderPartner(ctx context.Context, orderID, partnerID string, at time.Time) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE orders
        SET partner_id = $2, assigned_at = $3
        WHERE id = $1 AND partner_id IS NULL AND status = $4
    `, orderID, partnerID, at, string(domain.StatusPrep))
	if err != nil {
		return fmt.Errorf("set order %q partner: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %q not bindable", orderID)
	}
	return nil
}

// UpdateOrderStatus - move the order to status and stamp the matching timestamp.
func (r *TxRepo) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, at time.Time) error {
	var column string
	switch status {
	case domain.StatusPicked:
		column = "picked_at"
	case domain.StatusOnRoute:
		column = "on_route_at"
	case domain.StatusDelivered:
		column = "delivered_at"
	default:
		return fmt.Errorf("no timestamp column for status %s", status)
	}

	ct, err := r.tx.Exec(ctx, `
        UPDATE orders
        SET status = $2, `+column+` = COALESCE(`+column+`, $3)
        WHERE id = $1
    `, orderID, string(status), at)
	if err != nil {
		return fmt.Errorf("update order %q status: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %q not found", orderID)
	}
	return nil
}

// BindPartner - mark the partner busy with orderID.
func (r *TxRepo) BindPartner(ctx context.Context, partnerID, orderID string) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE partners
        SET current_order_id = $2, available = FALSE
        WHERE id = $1 AND active AND available AND current_order_id IS NULL
    `, partnerID, orderID)
	if err != nil {
		return fmt.Errorf("bind partner %q: %w", partnerID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("partner %q not bindable", partnerID)
	}
	return nil
}

// ReleasePartner - free the partner from orderID. No-op when the partner is
// not holding orderID, which keeps delivery completion idempotent.
func (r *TxRepo) ReleasePartner(ctx context.Context, partnerID, orderID string) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE partners
        SET current_order_id = NULL, available = TRUE,
            completed_orders = completed_orders + 1
        WHERE id = $1 AND current_order_id = $2
    `, partnerID, orderID)
	if err != nil {
		return false, fmt.Errorf("release partner %q: %w", partnerID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// SetPartnerAvailability - flip the availability flag.
func (r *TxRepo) SetPartnerAvailability(ctx context.Context, partnerID string, available bool) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE partners
        SET available = $2
        WHERE id = $1
    `, partnerID, available)
	if err != nil {
		return fmt.Errorf("set partner %q availability: %w", partnerID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("partner %q not found", partnerID)
	}
	return nil
}

var _ dispatchtx.Repository = (*TxRepo)(nil)
var _ dispatchtx.Runner = (*DispatchRepo)(nil)
