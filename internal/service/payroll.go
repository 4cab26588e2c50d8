package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"salondesk-backend/internal/domain"
	"salondesk-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// otHourlyRate is the fixed payout per overtime hour recorded on attendance.
const otHourlyRate = 50

const monthLayout = "2006-01"

// PayrollService computes per-month salary statements from attendance and
// manual adjustments.
type PayrollService struct {
	Staff       repository.StaffRepository
	Attendance  repository.AttendanceRepository
	Adjustments repository.AdjustmentRepository
	Now         func() time.Time
}

// ComputeSalary loads the inputs for (staff, month) and builds the statement
// using the requested proration mode.
func (s PayrollService) ComputeSalary(ctx context.Context, staffID int64, month string, mode domain.ProrationMode) (*domain.PayrollStatement, error) {
	monthStart, err := time.Parse(monthLayout, month)
	if err != nil {
		return nil, domain.Invalid("month", "must be in YYYY-MM format")
	}
	switch mode {
	case domain.ProrationElapsedDays, domain.ProrationAttendanceMinusLeave:
	case "":
		mode = domain.ProrationElapsedDays
	default:
		return nil, domain.Invalid("mode", "unknown proration mode")
	}

	staff, err := s.Staff.Get(ctx, staffID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("staff", strconv.FormatInt(staffID, 10))
		}
		return nil, err
	}

	rows, err := s.Attendance.ListMonth(ctx, staffID, monthStart)
	if err != nil {
		return nil, err
	}
	sums, err := s.Adjustments.SumsForMonth(ctx, staffID, month)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	stmt := BuildStatement(*staff, monthStart, rows, sums, mode, now)
	payrollComputationsTotal.Inc()
	return &stmt, nil
}

// BuildStatement is the pure payroll computation. Two formulas coexist and
// both are preserved behind explicit modes; callers choose per endpoint.
func BuildStatement(staff domain.Staff, monthStart time.Time, rows []domain.Attendance,
	sums repository.AdjustmentSums, mode domain.ProrationMode, now time.Time) domain.PayrollStatement {

	daysInMonth := time.Date(monthStart.Year(), monthStart.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()

	attendanceDays := 0
	leaveDays := 0
	otHours := 0.0
	for _, a := range rows {
		switch a.Status {
		case domain.AttendancePresent, domain.AttendanceWeekOff:
			attendanceDays++
		case domain.AttendanceLeave:
			// Weekend leave is penalized at double weight.
			if wd := a.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
				leaveDays += 2
			} else {
				leaveDays++
			}
		}
		otHours += a.OTHours
	}

	dailyRate := staff.MonthlySalary.Div(decimal.NewFromInt(int64(daysInMonth)))
	ot := decimal.NewFromFloat(otHours * otHourlyRate).Add(sums.OT)

	stmt := domain.PayrollStatement{
		StaffID:        staff.ID,
		Month:          monthStart.Format(monthLayout),
		Mode:           mode,
		DaysInMonth:    daysInMonth,
		AttendanceDays: attendanceDays,
		LeaveDays:      leaveDays,
		OTHours:        otHours,
		OT:             ot.Round(2),
		ExtraDays:      sums.ExtraDays,
		Incentive:      sums.Incentive,
		Advance:        sums.Advance,
		LeaveDeduction: decimal.Zero,
	}

	switch mode {
	case domain.ProrationAttendanceMinusLeave:
		proRata := dailyRate.Mul(decimal.NewFromInt(int64(attendanceDays)))
		leaveDeduction := dailyRate.Mul(decimal.NewFromInt(int64(leaveDays)))
		total := proRata.
			Add(sums.Incentive).
			Add(ot).
			Add(sums.ExtraDays).
			Sub(sums.Advance).
			Sub(leaveDeduction)
		// This path never credits a negative salary.
		if total.IsNegative() {
			total = decimal.Zero
		}
		stmt.LeaveDeduction = leaveDeduction.Round(2)
		stmt.SalaryToCredit = total.Round(2)
	default: // ProrationElapsedDays
		elapsed := daysInMonth
		if monthStart.Year() == now.Year() && monthStart.Month() == now.Month() && now.Day() < daysInMonth {
			elapsed = now.Day()
		}
		proRata := dailyRate.Mul(decimal.NewFromInt(int64(elapsed)))
		stmt.SalaryToCredit = proRata.
			Add(sums.Incentive).
			Add(ot).
			Add(sums.ExtraDays).
			Sub(sums.Advance).
			Round(2)
	}

	return stmt
}
