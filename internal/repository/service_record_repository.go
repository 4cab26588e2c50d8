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

type ServiceRecordRepository struct {
	DB *db.Postgres
}

// InsertWithTx writes one immutable audit row. Records are never updated or
// deleted after creation.
func (r ServiceRecordRepository) InsertWithTx(ctx context.Context, tx pgx.Tx, rec domain.ServiceRecord) (*domain.ServiceRecord, error) {
	row := tx.QueryRow(ctx, `
		INSERT INTO service_records (package_id, transaction_id, service_name, service_value, staff_id, staff_name, service_date, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7, now())
		RETURNING id, package_id, transaction_id, service_name, service_value, staff_id, staff_name, service_date, created_at
	`, rec.PackageID, rec.TransactionID, rec.ServiceName, rec.ServiceValue, rec.StaffID, rec.StaffName, rec.ServiceDate.Format("2006-01-02"))
	return scanServiceRecord(row)
}

func (r ServiceRecordRepository) ListByPackage(ctx context.Context, packageID int64) ([]domain.ServiceRecord, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, package_id, transaction_id, service_name, service_value, staff_id, staff_name, service_date, created_at
		FROM service_records
		WHERE package_id = $1
		ORDER BY service_date ASC, id ASC
	`, packageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.ServiceRecord
	for rows.Next() {
		rec, err := scanServiceRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rec)
	}
	return items, rows.Err()
}

// StaffSales is one row of the staff performance listing.
type StaffSales struct {
	StaffID      int64
	StaffName    string
	ServiceCount int
	TotalValue   decimal.Decimal
}

// SumValueByStaff aggregates redeemed service value per staff member within
// the date range. The display commission is derived from this at read time.
func (r ServiceRecordRepository) SumValueByStaff(ctx context.Context, from, to time.Time) ([]StaffSales, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT staff_id, MAX(staff_name), COUNT(*), COALESCE(SUM(service_value), 0)
		FROM service_records
		WHERE staff_id IS NOT NULL
		  AND service_date >= $1 AND service_date <= $2
		GROUP BY staff_id
		ORDER BY COALESCE(SUM(service_value), 0) DESC
	`, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []StaffSales
	for rows.Next() {
		var s StaffSales
		if err := rows.Scan(&s.StaffID, &s.StaffName, &s.ServiceCount, &s.TotalValue); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func scanServiceRecord(row pgx.Row) (*domain.ServiceRecord, error) {
	var rec domain.ServiceRecord
	var staffID pgtype.Int8
	if err := row.Scan(&rec.ID, &rec.PackageID, &rec.TransactionID, &rec.ServiceName, &rec.ServiceValue,
		&staffID, &rec.StaffName, &rec.ServiceDate, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if staffID.Valid {
		rec.StaffID = &staffID.Int64
	}
	return &rec, nil
}
