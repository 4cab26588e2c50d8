package repository

import (
	"context"
	"time"

	"salondesk-backend/internal/db"
	"salondesk-backend/internal/domain"
)

type AttendanceRepository struct {
	DB *db.Postgres
}

// Upsert records attendance for (staff, date). Re-recording the same date
// overwrites status and overtime rather than adding a second row.
func (r AttendanceRepository) Upsert(ctx context.Context, a domain.Attendance) error {
	_, err := r.DB.Pool.Exec(ctx, `
		INSERT INTO attendance (staff_id, attendance_date, status, ot_hours, created_at)
		VALUES ($1,$2,$3,$4, now())
		ON CONFLICT (staff_id, attendance_date)
		DO UPDATE SET status = EXCLUDED.status, ot_hours = EXCLUDED.ot_hours
	`, a.StaffID, a.Date.Format("2006-01-02"), string(a.Status), a.OTHours)
	return err
}

// ListMonth returns all attendance rows for the staff member within the month.
func (r AttendanceRepository) ListMonth(ctx context.Context, staffID int64, month time.Time) ([]domain.Attendance, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, staff_id, attendance_date, status, ot_hours
		FROM attendance
		WHERE staff_id = $1
		  AND attendance_date >= $2
		  AND attendance_date < $2 + interval '1 month'
		ORDER BY attendance_date ASC
	`, staffID, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Attendance
	for rows.Next() {
		var a domain.Attendance
		var status string
		if err := rows.Scan(&a.ID, &a.StaffID, &a.Date, &status, &a.OTHours); err != nil {
			return nil, err
		}
		a.Status = domain.AttendanceStatus(status)
		items = append(items, a)
	}
	return items, rows.Err()
}
