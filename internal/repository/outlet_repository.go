package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pos-backoffice/internal/domain"
)

// OutletRepository answers outlet membership questions for users.
type OutletRepository interface {
	ListActiveForUser(ctx context.Context, userID int64) ([]domain.UserOutlet, error)
	// GetMembership returns pgx.ErrNoRows when the user is not linked to an
	// active outlet with that id.
	GetMembership(ctx context.Context, userID, outletID int64) (*domain.UserOutlet, error)
}

type outletRepository struct {
	pool *pgxpool.Pool
}

// NewOutletRepository constructs repository.
func NewOutletRepository(pool *pgxpool.Pool) OutletRepository {
	return &outletRepository{pool: pool}
}

const membershipSelect = `
        SELECT uo.user_id, uo.outlet_id, uo.is_default,
               o.id, o.name, o.code, o.address, o.is_active, o.created_at, o.updated_at
        FROM user_outlets uo
        JOIN outlets o ON o.id = uo.outlet_id`

func (r *outletRepository) ListActiveForUser(ctx context.Context, userID int64) ([]domain.UserOutlet, error) {
	const query = membershipSelect + `
        WHERE uo.user_id=$1 AND o.is_active=TRUE
        ORDER BY uo.is_default DESC, o.name`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.UserOutlet{}
	for rows.Next() {
		var uo domain.UserOutlet
		if err := scanMembership(rows, &uo); err != nil {
			return nil, err
		}
		result = append(result, uo)
	}
	return result, rows.Err()
}

func (r *outletRepository) GetMembership(ctx context.Context, userID, outletID int64) (*domain.UserOutlet, error) {
	const query = membershipSelect + `
        WHERE uo.user_id=$1 AND uo.outlet_id=$2 AND o.is_active=TRUE`
	var uo domain.UserOutlet
	if err := scanMembership(r.pool.QueryRow(ctx, query, userID, outletID), &uo); err != nil {
		return nil, err
	}
	return &uo, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMembership(row rowScanner, uo *domain.UserOutlet) error {
	return row.Scan(
		&uo.UserID,
		&uo.OutletID,
		&uo.IsDefault,
		&uo.Outlet.ID,
		&uo.Outlet.Name,
		&uo.Outlet.Code,
		&uo.Outlet.Address,
		&uo.Outlet.IsActive,
		&uo.Outlet.CreatedAt,
		&uo.Outlet.UpdatedAt,
	)
}
