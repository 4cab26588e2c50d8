package repository

import (
	"context"

	"salondesk-backend/internal/db"
	"salondesk-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type AdjustmentRepository struct {
	DB *db.Postgres
}

// AdjustmentSums holds the per-type totals for one (staff, month). Missing
// rows sum to zero; a missing adjustment is not an error.
type AdjustmentSums struct {
	ExtraDays decimal.Decimal
	OT        decimal.Decimal
	Incentive decimal.Decimal
	Advance   decimal.Decimal
}

func (r AdjustmentRepository) SumsForMonth(ctx context.Context, staffID int64, month string) (AdjustmentSums, error) {
	sums := AdjustmentSums{
		ExtraDays: decimal.Zero,
		OT:        decimal.Zero,
		Incentive: decimal.Zero,
		Advance:   decimal.Zero,
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT type, COALESCE(SUM(amount), 0)
		FROM payroll_adjustments
		WHERE staff_id = $1 AND month = $2
		GROUP BY type
	`, staffID, month)
	if err != nil {
		return sums, err
	}
	defer rows.Close()
	for rows.Next() {
		var typ string
		var amount decimal.Decimal
		if err := rows.Scan(&typ, &amount); err != nil {
			return sums, err
		}
		switch domain.AdjustmentType(typ) {
		case domain.AdjustmentExtraDays:
			sums.ExtraDays = amount
		case domain.AdjustmentOT:
			sums.OT = amount
		case domain.AdjustmentIncentive:
			sums.Incentive = amount
		case domain.AdjustmentAdvance:
			sums.Advance = amount
		}
	}
	return sums, rows.Err()
}

// ReplaceForMonth replaces all non-OT adjustment rows for (staff, month) with
// the given amounts. OT rows accumulate and are only appended via AddOT.
func (r AdjustmentRepository) ReplaceForMonth(ctx context.Context, staffID int64, month string, extraDays, incentive, advance decimal.Decimal) error {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM payroll_adjustments
		WHERE staff_id = $1 AND month = $2 AND type <> $3
	`, staffID, month, string(domain.AdjustmentOT)); err != nil {
		return err
	}

	rows := []struct {
		typ    domain.AdjustmentType
		amount decimal.Decimal
	}{
		{domain.AdjustmentExtraDays, extraDays},
		{domain.AdjustmentIncentive, incentive},
		{domain.AdjustmentAdvance, advance},
	}
	for _, row := range rows {
		if row.amount.IsZero() {
			continue
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO payroll_adjustments (staff_id, month, type, amount, created_at)
			VALUES ($1,$2,$3,$4, now())
		`, staffID, month, string(row.typ), row.amount); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r AdjustmentRepository) AddOT(ctx context.Context, staffID int64, month string, amount decimal.Decimal) error {
	_, err := r.DB.Pool.Exec(ctx, `
		INSERT INTO payroll_adjustments (staff_id, month, type, amount, created_at)
		VALUES ($1,$2,$3,$4, now())
	`, staffID, month, string(domain.AdjustmentOT), amount)
	return err
}

func (r AdjustmentRepository) ListForMonth(ctx context.Context, staffID int64, month string) ([]domain.PayrollAdjustment, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, staff_id, month, type, amount
		FROM payroll_adjustments
		WHERE staff_id = $1 AND month = $2
		ORDER BY id ASC
	`, staffID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.PayrollAdjustment
	for rows.Next() {
		var a domain.PayrollAdjustment
		var typ string
		if err := rows.Scan(&a.ID, &a.StaffID, &a.Month, &typ, &a.Amount); err != nil {
			return nil, err
		}
		a.Type = domain.AdjustmentType(typ)
		items = append(items, a)
	}
	return items, rows.Err()
}
