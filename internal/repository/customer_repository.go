package repository

import (
	"context"

	"salondesk-backend/internal/db"
	"salondesk-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type CustomerRepository struct {
	DB *db.Postgres
}

func (r CustomerRepository) List(ctx context.Context, outletID *int64, limit int) ([]domain.Customer, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, outlet_id, name, mobile, email, created_at, updated_at
		FROM customers
		WHERE deleted_at IS NULL AND ($1::bigint IS NULL OR outlet_id = $1)
		ORDER BY name ASC
		LIMIT $2
	`, outletID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Customer
	for rows.Next() {
		var c domain.Customer
		var oid pgtype.Int8
		if err := rows.Scan(&c.ID, &oid, &c.Name, &c.Mobile, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if oid.Valid {
			c.OutletID = &oid.Int64
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r CustomerRepository) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, outlet_id, name, mobile, email, created_at, updated_at
		FROM customers
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	var c domain.Customer
	var oid pgtype.Int8
	if err := row.Scan(&c.ID, &oid, &c.Name, &c.Mobile, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if oid.Valid {
		c.OutletID = &oid.Int64
	}
	return &c, nil
}

func (r CustomerRepository) Upsert(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	var out domain.Customer
	var oid pgtype.Int8
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO customers (id, outlet_id, name, mobile, email, created_at, updated_at)
		VALUES (COALESCE($1, nextval('customers_id_seq')), $2, $3, $4, $5, now(), now())
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, mobile=EXCLUDED.mobile, email=EXCLUDED.email, updated_at=now(), deleted_at=NULL
		RETURNING id, outlet_id, name, mobile, email, created_at, updated_at
	`, nullableID(c.ID), c.OutletID, c.Name, c.Mobile, c.Email).Scan(&out.ID, &oid, &out.Name, &out.Mobile, &out.Email, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if oid.Valid {
		out.OutletID = &oid.Int64
	}
	return &out, nil
}

func (r CustomerRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.Pool.Exec(ctx, `UPDATE customers SET deleted_at = now() WHERE id=$1`, id)
	return err
}
