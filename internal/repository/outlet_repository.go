package repository

import (
	"context"

	"salondesk-backend/internal/db"
	"salondesk-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

type OutletRepository struct {
	DB *db.Postgres
}

// List returns all active outlets ordered alphabetically.
func (r OutletRepository) List(ctx context.Context) ([]domain.Outlet, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, name, address, phone, created_at, updated_at
		FROM outlets
		WHERE deleted_at IS NULL
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Outlet
	for rows.Next() {
		var o domain.Outlet
		if err := rows.Scan(&o.ID, &o.Name, &o.Address, &o.Phone, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, o)
	}
	return items, rows.Err()
}

func (r OutletRepository) Get(ctx context.Context, id int64) (*domain.Outlet, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, name, address, phone, created_at, updated_at
		FROM outlets
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	var o domain.Outlet
	if err := row.Scan(&o.ID, &o.Name, &o.Address, &o.Phone, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r OutletRepository) Upsert(ctx context.Context, o domain.Outlet) (*domain.Outlet, error) {
	var out domain.Outlet
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO outlets (id, name, address, phone, created_at, updated_at)
		VALUES (COALESCE($1, nextval('outlets_id_seq')), $2, $3, $4, now(), now())
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, address=EXCLUDED.address, phone=EXCLUDED.phone, updated_at=now(), deleted_at=NULL
		RETURNING id, name, address, phone, created_at, updated_at
	`, nullableID(o.ID), o.Name, o.Address, o.Phone).Scan(&out.ID, &out.Name, &out.Address, &out.Phone, &out.CreatedAt, &out.UpdatedAt)
	return &out, err
}
