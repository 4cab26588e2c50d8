//go:build integration

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"salondesk-backend/internal/config"
	"salondesk-backend/internal/db"
	"salondesk-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/repository

func integrationDB(t *testing.T) *db.Postgres {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	pg, err := db.New(context.Background(), config.Config{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pg.Close)
	require.NoError(t, pg.Migrate(context.Background()))
	return pg
}

func TestAttendanceUpsert_SameDayOverwrites(t *testing.T) {
	// GIVEN: attendance already recorded for (staff, date)
	// WHEN: recording the same date again with a different status
	// THEN: one row remains, holding the latest status and OT hours

	pg := integrationDB(t)
	ctx := context.Background()

	var staffID int64
	require.NoError(t, pg.Pool.QueryRow(ctx, `
		INSERT INTO staff (name, monthly_salary, active) VALUES ('Asha', 30000, TRUE)
		RETURNING id
	`).Scan(&staffID))
	t.Cleanup(func() {
		_, _ = pg.Pool.Exec(ctx, `DELETE FROM attendance WHERE staff_id=$1`, staffID)
		_, _ = pg.Pool.Exec(ctx, `DELETE FROM staff WHERE id=$1`, staffID)
	})

	repo := AttendanceRepository{DB: pg}
	date := time.Date(2025, time.April, 7, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Upsert(ctx, domain.Attendance{
		StaffID: staffID, Date: date, Status: domain.AttendancePresent, OTHours: 0,
	}))
	require.NoError(t, repo.Upsert(ctx, domain.Attendance{
		StaffID: staffID, Date: date, Status: domain.AttendanceLeave, OTHours: 2,
	}))

	rows, err := repo.ListMonth(ctx, staffID, date)
	require.NoError(t, err)
	require.Len(t, rows, 1, "re-recording the same day must not create a second row")
	assert.Equal(t, domain.AttendanceLeave, rows[0].Status)
	assert.Equal(t, 2.0, rows[0].OTHours)
}
