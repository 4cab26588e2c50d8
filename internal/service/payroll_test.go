package service

import (
	"testing"
	"time"

	"salondesk-backend/internal/domain"
	"salondesk-backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStaff(salary int64) domain.Staff {
	return domain.Staff{
		ID:            7,
		Name:          "Priya",
		MonthlySalary: decimal.NewFromInt(salary),
		Active:        true,
	}
}

func presentDays(month time.Time, days ...int) []domain.Attendance {
	rows := make([]domain.Attendance, 0, len(days))
	for _, d := range days {
		rows = append(rows, domain.Attendance{
			StaffID: 7,
			Date:    time.Date(month.Year(), month.Month(), d, 0, 0, 0, 0, time.UTC),
			Status:  domain.AttendancePresent,
		})
	}
	return rows
}

func noAdjustments() repository.AdjustmentSums {
	return repository.AdjustmentSums{
		ExtraDays: decimal.Zero,
		OT:        decimal.Zero,
		Incentive: decimal.Zero,
		Advance:   decimal.Zero,
	}
}

func TestBuildStatement_AttendanceMode_FullWorkedExample(t *testing.T) {
	// GIVEN: salary 30000 in a 30-day month, 28 attendance days, one Saturday
	// leave (weight 2), 4 OT hours, incentive 500, advance 1000
	// THEN: 1000*28 + 500 + 4*50 - 1000 - 2*1000 = 25700

	april := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	days := make([]int, 0, 28)
	for d := 1; d <= 25; d++ {
		days = append(days, d)
	}
	days = append(days, 27, 28, 29)
	rows := presentDays(april, days...)
	rows[0].OTHours = 4
	// 2025-04-26 is a Saturday; weekend leave counts double.
	rows = append(rows, domain.Attendance{
		StaffID: 7,
		Date:    time.Date(2025, time.April, 26, 0, 0, 0, 0, time.UTC),
		Status:  domain.AttendanceLeave,
	})

	sums := noAdjustments()
	sums.Incentive = decimal.NewFromInt(500)
	sums.Advance = decimal.NewFromInt(1000)

	now := time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC)
	stmt := BuildStatement(testStaff(30000), april, rows, sums, domain.ProrationAttendanceMinusLeave, now)

	assert.Equal(t, 30, stmt.DaysInMonth)
	assert.Equal(t, 28, stmt.AttendanceDays)
	assert.Equal(t, 2, stmt.LeaveDays)
	assert.Equal(t, "200.00", stmt.OT.StringFixed(2))
	assert.Equal(t, "2000.00", stmt.LeaveDeduction.StringFixed(2))
	assert.Equal(t, "25700.00", stmt.SalaryToCredit.StringFixed(2))
}

func TestBuildStatement_WeekdayLeave_SingleWeight(t *testing.T) {
	april := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	rows := []domain.Attendance{
		// 2025-04-23 is a Wednesday.
		{StaffID: 7, Date: time.Date(2025, time.April, 23, 0, 0, 0, 0, time.UTC), Status: domain.AttendanceLeave},
	}

	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	stmt := BuildStatement(testStaff(30000), april, rows, noAdjustments(), domain.ProrationAttendanceMinusLeave, now)

	assert.Equal(t, 1, stmt.LeaveDays)
}

func TestBuildStatement_WeekOffCountsAsAttendance(t *testing.T) {
	april := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	rows := []domain.Attendance{
		{StaffID: 7, Date: time.Date(2025, time.April, 7, 0, 0, 0, 0, time.UTC), Status: domain.AttendancePresent},
		{StaffID: 7, Date: time.Date(2025, time.April, 8, 0, 0, 0, 0, time.UTC), Status: domain.AttendanceWeekOff},
	}

	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	stmt := BuildStatement(testStaff(30000), april, rows, noAdjustments(), domain.ProrationAttendanceMinusLeave, now)

	assert.Equal(t, 2, stmt.AttendanceDays)
	assert.Equal(t, "2000.00", stmt.SalaryToCredit.StringFixed(2))
}

func TestBuildStatement_AttendanceMode_FlooredAtZero(t *testing.T) {
	// A large advance cannot drive the credited salary negative.
	april := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	rows := presentDays(april, 1, 2)

	sums := noAdjustments()
	sums.Advance = decimal.NewFromInt(50000)

	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	stmt := BuildStatement(testStaff(30000), april, rows, sums, domain.ProrationAttendanceMinusLeave, now)

	assert.True(t, stmt.SalaryToCredit.IsZero(), "expected floor at zero, got %s", stmt.SalaryToCredit)
}

func TestBuildStatement_ElapsedMode_PastMonth_FullSalary(t *testing.T) {
	// A fully elapsed month pays the full monthly salary regardless of
	// attendance rows.
	april := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	stmt := BuildStatement(testStaff(30000), april, nil, noAdjustments(), domain.ProrationElapsedDays, now)

	assert.Equal(t, "30000.00", stmt.SalaryToCredit.StringFixed(2))
}

func TestBuildStatement_ElapsedMode_CurrentMonth_ProRata(t *testing.T) {
	// GIVEN: the statement month is the current month, 10 days elapsed
	// THEN: pay dailyRate * 10

	june := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	stmt := BuildStatement(testStaff(30000), june, nil, noAdjustments(), domain.ProrationElapsedDays, now)

	assert.Equal(t, "10000.00", stmt.SalaryToCredit.StringFixed(2))
}

func TestBuildStatement_ElapsedMode_NoFloor(t *testing.T) {
	// The elapsed-days formula keeps its historical behavior and may go
	// negative when advances exceed the pro-rata salary.
	june := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	sums := noAdjustments()
	sums.Advance = decimal.NewFromInt(20000)

	stmt := BuildStatement(testStaff(30000), june, nil, sums, domain.ProrationElapsedDays, now)

	assert.Equal(t, "-10000.00", stmt.SalaryToCredit.StringFixed(2))
}

func TestBuildStatement_OTCombinesHoursAndManualAmount(t *testing.T) {
	april := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	rows := presentDays(april, 1)
	rows[0].OTHours = 3

	sums := noAdjustments()
	sums.OT = decimal.NewFromInt(250)

	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	stmt := BuildStatement(testStaff(30000), april, rows, sums, domain.ProrationAttendanceMinusLeave, now)

	// 3 hours * 50 + 250 manual
	require.Equal(t, "400.00", stmt.OT.StringFixed(2))
}

func TestBuildStatement_FebruaryDaysInMonth(t *testing.T) {
	feb := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	stmt := BuildStatement(testStaff(29000), feb, nil, noAdjustments(), domain.ProrationElapsedDays, now)

	assert.Equal(t, 29, stmt.DaysInMonth)
	assert.Equal(t, "29000.00", stmt.SalaryToCredit.StringFixed(2))
}
