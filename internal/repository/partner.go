package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"dispatch-platform-go/internal/apperr"
	"dispatch-platform-go/internal/domain"
)

// PartnerRepo represents partner repository.
type PartnerRepo struct{ db *pgxpool.Pool }

// NewPartnerRepo creates a new PartnerRepo.
func NewPartnerRepo(db *pgxpool.Pool) *PartnerRepo { return &PartnerRepo{db: db} }

const partnerColumns = `id, name, phone, available, active, current_order_id, completed_orders`

func scanPartner(row orderRow) (*domain.Partner, error) {
	var p domain.Partner
	err := row.Scan(&p.ID, &p.Name, &p.Phone, &p.Available, &p.Active,
		&p.CurrentOrderID, &p.CompletedOrders)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create - persists a new partner.
func (r *PartnerRepo) Create(ctx context.Context, p *domain.Partner) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO partners (id, name, phone, available, active, completed_orders)
        VALUES ($1, $2, $3, $4, $5, 0)
    `, p.ID, p.Name, p.Phone, p.Available, p.Active)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("create partner %q: %w", p.ID, err)
	}
	return nil
}

// Get - returns partner by its ID, nil when absent.
func (r *PartnerRepo) Get(ctx context.Context, id string) (*domain.Partner, error) {
	row := r.db.QueryRow(ctx, `SELECT `+partnerColumns+` FROM partners WHERE id=$1`, id)
	p, err := scanPartner(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get partner %q: %w", id, err)
	}
	return p, nil
}

// ListAssignable returns partners that can take a new order. The list is
// advisory: assignability is re-checked under a row lock at bind time.
func (r *PartnerRepo) ListAssignable(ctx context.Context) ([]domain.Partner, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+partnerColumns+`
        FROM partners
        WHERE active AND available AND current_order_id IS NULL
        ORDER BY completed_orders, id
    `)
	if err != nil {
		return nil, fmt.Errorf("list assignable partners: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Partner, 0)
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
