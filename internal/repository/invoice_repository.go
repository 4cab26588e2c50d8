package repository

import (
	"context"

	"salondesk-backend/internal/db"
	"salondesk-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

type InvoiceRepository struct {
	DB *db.Postgres
}

func (r InvoiceRepository) InsertWithTx(ctx context.Context, tx pgx.Tx, inv domain.Invoice) (*domain.Invoice, error) {
	row := tx.QueryRow(ctx, `
		INSERT INTO invoices (number, outlet_id, customer_name, customer_mobile, amount, source, invoice_date, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7, now())
		RETURNING id, number, outlet_id, customer_name, customer_mobile, amount, source, invoice_date, created_at
	`, inv.Number, inv.OutletID, inv.CustomerName, inv.CustomerMobile, inv.Amount, inv.Source, inv.Date.Format("2006-01-02"))
	return scanInvoice(row)
}

func (r InvoiceRepository) List(ctx context.Context, outletID *int64, limit int) ([]domain.Invoice, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, number, outlet_id, customer_name, customer_mobile, amount, source, invoice_date, created_at
		FROM invoices
		WHERE $1::bigint IS NULL OR outlet_id = $1
		ORDER BY invoice_date DESC, id DESC
		LIMIT $2
	`, outletID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *inv)
	}
	return items, rows.Err()
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	if err := row.Scan(&inv.ID, &inv.Number, &inv.OutletID, &inv.CustomerName, &inv.CustomerMobile,
		&inv.Amount, &inv.Source, &inv.Date, &inv.CreatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}
