package repository

import (
	"context"

	"salondesk-backend/internal/db"
	"salondesk-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type StaffRepository struct {
	DB *db.Postgres
}

func (r StaffRepository) List(ctx context.Context, outletID *int64, limit int) ([]domain.Staff, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, outlet_id, name, phone, monthly_salary, current_target, active, created_at, updated_at
		FROM staff
		WHERE deleted_at IS NULL AND ($1::bigint IS NULL OR outlet_id = $1)
		ORDER BY name ASC
		LIMIT $2
	`, outletID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	return items, rows.Err()
}

func (r StaffRepository) Get(ctx context.Context, id int64) (*domain.Staff, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, outlet_id, name, phone, monthly_salary, current_target, active, created_at, updated_at
		FROM staff
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	s, err := scanStaff(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r StaffRepository) Upsert(ctx context.Context, s domain.Staff) (*domain.Staff, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO staff (id, outlet_id, name, phone, monthly_salary, active, created_at, updated_at)
		VALUES (COALESCE($1, nextval('staff_id_seq')), $2, $3, $4, $5, $6, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			outlet_id=EXCLUDED.outlet_id,
			name=EXCLUDED.name,
			phone=EXCLUDED.phone,
			monthly_salary=EXCLUDED.monthly_salary,
			active=EXCLUDED.active,
			updated_at=now(),
			deleted_at=NULL
		RETURNING id, outlet_id, name, phone, monthly_salary, current_target, active, created_at, updated_at
	`, nullableID(s.ID), s.OutletID, s.Name, s.Phone, s.MonthlySalary, s.Active)
	out, err := scanStaff(row)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r StaffRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.Pool.Exec(ctx, `UPDATE staff SET deleted_at = now() WHERE id=$1`, id)
	return err
}

// IncrementTarget adds a commission accrual to the staff sales target. The
// single UPDATE keeps the read-modify-write atomic. Returns false when the
// staff id is unknown or inactive.
func (r StaffRepository) IncrementTarget(ctx context.Context, staffID int64, delta decimal.Decimal) (bool, error) {
	tag, err := r.DB.Pool.Exec(ctx, `
		UPDATE staff SET current_target = current_target + $2, updated_at = now()
		WHERE id=$1 AND deleted_at IS NULL AND active
	`, staffID, delta)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanStaff(row pgx.Row) (*domain.Staff, error) {
	var s domain.Staff
	var outletID pgtype.Int8
	if err := row.Scan(&s.ID, &outletID, &s.Name, &s.Phone, &s.MonthlySalary, &s.CurrentTarget, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if outletID.Valid {
		s.OutletID = &outletID.Int64
	}
	return &s, nil
}
