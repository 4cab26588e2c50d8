package repository

import (
	"context"
	"time"

	"salondesk-backend/internal/db"
	"salondesk-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type ExpenseRepository struct {
	DB *db.Postgres
}

type CreateExpenseInput struct {
	OutletID *int64
	Title    string
	Amount   decimal.Decimal
	Category string
	Date     time.Time
	Note     string
}

func (r ExpenseRepository) Create(ctx context.Context, in CreateExpenseInput) (*domain.Expense, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO expenses (outlet_id, title, amount, category, expense_date, note, created_at)
		VALUES ($1,$2,$3,$4,$5,$6, now())
		RETURNING id, outlet_id, title, amount, category, expense_date, note, created_at
	`, in.OutletID, in.Title, in.Amount, in.Category, in.Date.Format("2006-01-02"), in.Note)
	return scanExpense(row)
}

func (r ExpenseRepository) List(ctx context.Context, outletID *int64, limit int) ([]domain.Expense, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, outlet_id, title, amount, category, expense_date, note, created_at
		FROM expenses
		WHERE deleted_at IS NULL AND ($1::bigint IS NULL OR outlet_id = $1)
		ORDER BY expense_date DESC, id DESC
		LIMIT $2
	`, outletID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExpenses(rows)
}

func (r ExpenseRepository) ListFiltered(ctx context.Context, outletID *int64, start, end *time.Time) ([]domain.Expense, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, outlet_id, title, amount, category, expense_date, note, created_at
		FROM expenses
		WHERE deleted_at IS NULL
		  AND ($1::bigint IS NULL OR outlet_id = $1)
		  AND ($2::date IS NULL OR expense_date >= $2)
		  AND ($3::date IS NULL OR expense_date <= $3)
		ORDER BY expense_date DESC, id DESC
	`, outletID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExpenses(rows)
}

func (r ExpenseRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.Pool.Exec(ctx, `UPDATE expenses SET deleted_at = now() WHERE id=$1`, id)
	return err
}

func collectExpenses(rows pgx.Rows) ([]domain.Expense, error) {
	var items []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	var outletID pgtype.Int8
	if err := row.Scan(&e.ID, &outletID, &e.Title, &e.Amount, &e.Category, &e.Date, &e.Note, &e.CreatedAt); err != nil {
		return nil, err
	}
	if outletID.Valid {
		e.OutletID = &outletID.Int64
	}
	return &e, nil
}
