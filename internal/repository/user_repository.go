package repository

import (
	"context"
	"errors"

	"salondesk-backend/internal/db"
	"salondesk-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserRepository struct {
	DB *db.Postgres
}

type CreateUserParams struct {
	Name         string
	Email        string
	Role         domain.UserRole
	OutletID     *int64
	PasswordHash *string
}

func (r UserRepository) Create(ctx context.Context, p CreateUserParams) (*domain.User, error) {
	var u domain.User
	var outletID pgtype.Int8
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO users (name, email, role, outlet_id, password_hash, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5, now(), now())
		RETURNING id, name, email, role, outlet_id, password_hash, created_at, updated_at
	`, p.Name, p.Email, string(p.Role), p.OutletID, p.PasswordHash).Scan(
		&u.ID, &u.Name, &u.Email, (*string)(&u.Role), &outletID, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if outletID.Valid {
		u.OutletID = &outletID.Int64
	}
	return &u, nil
}

func (r UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, name, email, role, outlet_id, password_hash, created_at, updated_at
		FROM users
		WHERE deleted_at IS NULL AND lower(email) = lower($1)
	`, email)
	return scanUser(row)
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, name, email, role, outlet_id, password_hash, created_at, updated_at
		FROM users
		WHERE deleted_at IS NULL AND id = $1
	`, id)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var outletID pgtype.Int8
	if err := row.Scan(&u.ID, &u.Name, &u.Email, (*string)(&u.Role), &outletID, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if outletID.Valid {
		u.OutletID = &outletID.Int64
	}
	return &u, nil
}

var ErrNotFound = errors.New("not found")

// IsDuplicate reports whether err is a unique constraint violation.
func IsDuplicate(err error) bool {
	return db.IsUniqueViolation(err)
}

func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
