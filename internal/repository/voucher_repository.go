package repository

import (
	"context"
	"time"

	"salondesk-backend/internal/db"
	"salondesk-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type VoucherRepository struct {
	DB *db.Postgres
}

func (r VoucherRepository) Create(ctx context.Context, v domain.Voucher) (*domain.Voucher, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO vouchers (outlet_id, recipient, discount_pct, type, issue_date, expiry_date, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7, now())
		RETURNING id, outlet_id, recipient, discount_pct, type, issue_date, expiry_date, redeemed_at, status, created_at
	`, v.OutletID, v.Recipient, v.DiscountPct, v.Type, v.IssueDate.Format("2006-01-02"), v.ExpiryDate.Format("2006-01-02"), string(domain.VoucherIssued))
	return scanVoucher(row)
}

func (r VoucherRepository) Get(ctx context.Context, id int64) (*domain.Voucher, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, outlet_id, recipient, discount_pct, type, issue_date, expiry_date, redeemed_at, status, created_at
		FROM vouchers
		WHERE id=$1 AND deleted_at IS NULL
	`, id)
	v, err := scanVoucher(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r VoucherRepository) List(ctx context.Context, outletID *int64, limit int) ([]domain.Voucher, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, outlet_id, recipient, discount_pct, type, issue_date, expiry_date, redeemed_at, status, created_at
		FROM vouchers
		WHERE deleted_at IS NULL AND ($1::bigint IS NULL OR outlet_id = $1)
		ORDER BY issue_date DESC, id DESC
		LIMIT $2
	`, outletID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Voucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *v)
	}
	return items, rows.Err()
}

// MarkRedeemed flips an Issued voucher to Redeemed. The WHERE clause makes
// the forward-only transition atomic; returns false when the voucher was
// already redeemed.
func (r VoucherRepository) MarkRedeemed(ctx context.Context, id int64, at time.Time) (bool, error) {
	tag, err := r.DB.Pool.Exec(ctx, `
		UPDATE vouchers
		SET status=$2, redeemed_at=$3
		WHERE id=$1 AND deleted_at IS NULL AND status=$4
	`, id, string(domain.VoucherRedeemed), at, string(domain.VoucherIssued))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanVoucher(row pgx.Row) (*domain.Voucher, error) {
	var v domain.Voucher
	var outletID pgtype.Int8
	var status string
	if err := row.Scan(&v.ID, &outletID, &v.Recipient, &v.DiscountPct, &v.Type, &v.IssueDate,
		&v.ExpiryDate, &v.RedeemedAt, &status, &v.CreatedAt); err != nil {
		return nil, err
	}
	v.Status = domain.VoucherStatus(status)
	if outletID.Valid {
		v.OutletID = &outletID.Int64
	}
	return &v, nil
}
