package repository

import (
	"context"

	"salondesk-backend/internal/db"
	"salondesk-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type PackageRepository struct {
	DB *db.Postgres
}

// pgxQuerier is satisfied by both pgxpool.Pool and pgx.Tx.
type pgxQuerier interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// Templates

func (r PackageRepository) CreateTemplate(ctx context.Context, t domain.PackageTemplate) (*domain.PackageTemplate, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO package_templates (outlet_id, name, kind, value, total_sittings, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5, now(), now())
		RETURNING id, outlet_id, name, kind, value, total_sittings, created_at, updated_at
	`, t.OutletID, t.Name, string(t.Kind), t.Value, t.TotalSittings)
	return scanTemplate(row)
}

func (r PackageRepository) UpdateTemplate(ctx context.Context, t domain.PackageTemplate) (*domain.PackageTemplate, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE package_templates
		SET name=$2, kind=$3, value=$4, total_sittings=$5, outlet_id=$6, updated_at=now()
		WHERE id=$1 AND deleted_at IS NULL
		RETURNING id, outlet_id, name, kind, value, total_sittings, created_at, updated_at
	`, t.ID, t.Name, string(t.Kind), t.Value, t.TotalSittings, t.OutletID)
	tpl, err := scanTemplate(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tpl, nil
}

func (r PackageRepository) ListTemplates(ctx context.Context, outletID *int64) ([]domain.PackageTemplate, error) {
	// Global templates (outlet_id IS NULL) are visible to every outlet.
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, outlet_id, name, kind, value, total_sittings, created_at, updated_at
		FROM package_templates
		WHERE deleted_at IS NULL AND ($1::bigint IS NULL OR outlet_id IS NULL OR outlet_id = $1)
		ORDER BY name ASC
	`, outletID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.PackageTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

func (r PackageRepository) GetTemplateWithTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.PackageTemplate, error) {
	return r.getTemplateWith(ctx, tx, id)
}

func (r PackageRepository) GetTemplate(ctx context.Context, id int64) (*domain.PackageTemplate, error) {
	return r.getTemplateWith(ctx, r.DB.Pool, id)
}

func (r PackageRepository) getTemplateWith(ctx context.Context, q pgxQuerier, id int64) (*domain.PackageTemplate, error) {
	row := q.QueryRow(ctx, `
		SELECT id, outlet_id, name, kind, value, total_sittings, created_at, updated_at
		FROM package_templates
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	t, err := scanTemplate(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func scanTemplate(row pgx.Row) (*domain.PackageTemplate, error) {
	var t domain.PackageTemplate
	var outletID pgtype.Int8
	var kind string
	if err := row.Scan(&t.ID, &outletID, &t.Name, &kind, &t.Value, &t.TotalSittings, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Kind = domain.PackageKind(kind)
	if outletID.Valid {
		t.OutletID = &outletID.Int64
	}
	return &t, nil
}

// Customer packages

func (r PackageRepository) InsertWithTx(ctx context.Context, tx pgx.Tx, p domain.CustomerPackage) (*domain.CustomerPackage, error) {
	row := tx.QueryRow(ctx, `
		INSERT INTO customer_packages
		(template_id, outlet_id, customer_name, customer_mobile, kind, initial_value, remaining_value,
		 total_sittings, used_sittings, assigned_date, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, now(), now())
		RETURNING id, template_id, outlet_id, customer_name, customer_mobile, kind, initial_value,
		          remaining_value, total_sittings, used_sittings, assigned_date, created_at, updated_at
	`, p.TemplateID, p.OutletID, p.CustomerName, p.CustomerMobile, string(p.Kind), p.InitialValue,
		p.RemainingValue, p.TotalSittings, p.UsedSittings, p.AssignedDate.Format("2006-01-02"))
	return scanPackage(row)
}

func (r PackageRepository) Get(ctx context.Context, id int64) (*domain.CustomerPackage, error) {
	row := r.DB.Pool.QueryRow(ctx, packageSelect+` WHERE id=$1 AND deleted_at IS NULL`, id)
	p, err := scanPackage(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// GetForUpdate locks the package row for the rest of the transaction so two
// concurrent redemptions cannot both pass the balance check.
func (r PackageRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.CustomerPackage, error) {
	row := tx.QueryRow(ctx, packageSelect+` WHERE id=$1 AND deleted_at IS NULL FOR UPDATE`, id)
	p, err := scanPackage(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// UpdateBalanceWithTx persists only the final remaining value and sitting
// count; per-line progression is returned to the caller, never stored.
func (r PackageRepository) UpdateBalanceWithTx(ctx context.Context, tx pgx.Tx, id int64, remaining decimal.Decimal, usedSittings int) error {
	tag, err := tx.Exec(ctx, `
		UPDATE customer_packages
		SET remaining_value=$2, used_sittings=$3, updated_at=now()
		WHERE id=$1 AND deleted_at IS NULL
	`, id, remaining, usedSittings)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r PackageRepository) List(ctx context.Context, outletID *int64, customerMobile string, limit int) ([]domain.CustomerPackage, error) {
	rows, err := r.DB.Pool.Query(ctx, packageSelect+`
		WHERE deleted_at IS NULL
		  AND ($1::bigint IS NULL OR outlet_id = $1)
		  AND ($2 = '' OR customer_mobile = $2)
		ORDER BY assigned_date DESC, id DESC
		LIMIT $3
	`, outletID, customerMobile, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.CustomerPackage
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// HasRecords reports whether any redemption audit rows exist for the package.
func (r PackageRepository) HasRecords(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.DB.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM service_records WHERE package_id = $1
	`, id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r PackageRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `UPDATE customer_packages SET deleted_at = now() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const packageSelect = `
	SELECT id, template_id, outlet_id, customer_name, customer_mobile, kind, initial_value,
	       remaining_value, total_sittings, used_sittings, assigned_date, created_at, updated_at
	FROM customer_packages`

func scanPackage(row pgx.Row) (*domain.CustomerPackage, error) {
	var p domain.CustomerPackage
	var templateID pgtype.Int8
	var kind string
	if err := row.Scan(&p.ID, &templateID, &p.OutletID, &p.CustomerName, &p.CustomerMobile, &kind,
		&p.InitialValue, &p.RemainingValue, &p.TotalSittings, &p.UsedSittings, &p.AssignedDate,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Kind = domain.PackageKind(kind)
	if templateID.Valid {
		p.TemplateID = &templateID.Int64
	}
	return &p, nil
}
