package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Enumerations
const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleStaff   UserRole = "staff"

	PackageValue    PackageKind = "value"
	PackageSittings PackageKind = "sittings"

	AttendancePresent AttendanceStatus = "Present"
	AttendanceWeekOff AttendanceStatus = "WeekOff"
	AttendanceLeave   AttendanceStatus = "Leave"

	AdjustmentExtraDays AdjustmentType = "extra_days"
	AdjustmentOT        AdjustmentType = "ot"
	AdjustmentIncentive AdjustmentType = "incentive"
	AdjustmentAdvance   AdjustmentType = "advance"

	VoucherIssued   VoucherStatus = "Issued"
	VoucherRedeemed VoucherStatus = "Redeemed"
	VoucherExpired  VoucherStatus = "Expired"
)

type UserRole string
type PackageKind string
type AttendanceStatus string
type AdjustmentType string
type VoucherStatus string

type Outlet struct {
	ID        int64
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type User struct {
	ID           int64
	Name         string
	Email        string
	Role         UserRole
	OutletID     *int64
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

type Customer struct {
	ID        int64
	OutletID  *int64
	Name      string
	Mobile    string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type Staff struct {
	ID            int64
	OutletID      *int64
	Name          string
	Phone         string
	MonthlySalary decimal.Decimal
	// CurrentTarget accumulates commission credits from redemption events.
	CurrentTarget decimal.Decimal
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// PackageTemplate is the catalogue entry customer packages are created from.
// OutletID nil means the template is available to every outlet.
type PackageTemplate struct {
	ID            int64
	OutletID      *int64
	Name          string
	Kind          PackageKind
	Value         decimal.Decimal
	TotalSittings int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// CustomerPackage tracks the remaining balance of a package sold to a customer.
// Invariant: 0 <= RemainingValue <= InitialValue and UsedSittings <= TotalSittings.
type CustomerPackage struct {
	ID             int64
	TemplateID     *int64
	OutletID       int64
	CustomerName   string
	CustomerMobile string
	Kind           PackageKind
	InitialValue   decimal.Decimal
	RemainingValue decimal.Decimal
	TotalSittings  int
	UsedSittings   int
	AssignedDate   time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// ServiceRecord is an immutable audit row, one per redeemed service line.
type ServiceRecord struct {
	ID            int64
	PackageID     int64
	TransactionID string
	ServiceName   string
	ServiceValue  decimal.Decimal
	StaffID       *int64
	StaffName     string
	ServiceDate   time.Time
	CreatedAt     time.Time
}

// Attendance is unique per (staff, date); re-recording a date overwrites it.
type Attendance struct {
	ID      int64
	StaffID int64
	Date    time.Time
	Status  AttendanceStatus
	OTHours float64
}

type PayrollAdjustment struct {
	ID      int64
	StaffID int64
	Month   string // YYYY-MM
	Type    AdjustmentType
	Amount  decimal.Decimal
}

// ProrationMode selects which of the two coexisting payroll formulas applies.
type ProrationMode string

const (
	// ProrationElapsedDays pays dailyRate * calendar days elapsed in the month.
	ProrationElapsedDays ProrationMode = "elapsed_days"
	// ProrationAttendanceMinusLeave pays dailyRate * attendance days and
	// deducts weighted leave days, floored at zero.
	ProrationAttendanceMinusLeave ProrationMode = "attendance_minus_leave"
)

// PayrollStatement is the computed salary breakdown for one staff month.
type PayrollStatement struct {
	StaffID        int64
	Month          string
	Mode           ProrationMode
	DaysInMonth    int
	AttendanceDays int
	LeaveDays      int
	OTHours        float64
	OT             decimal.Decimal
	ExtraDays      decimal.Decimal
	Incentive      decimal.Decimal
	Advance        decimal.Decimal
	LeaveDeduction decimal.Decimal
	SalaryToCredit decimal.Decimal
}

type Voucher struct {
	ID          int64
	OutletID    *int64
	Recipient   string
	DiscountPct decimal.Decimal
	Type        string
	IssueDate   time.Time
	ExpiryDate  time.Time
	RedeemedAt  *time.Time
	Status      VoucherStatus
	CreatedAt   time.Time
	DeletedAt   *time.Time
}

// EffectiveStatus derives Expired from the expiry date; expiry is never stored
// as a transition, a voucher row only ever moves Issued -> Redeemed.
func (v Voucher) EffectiveStatus(now time.Time) VoucherStatus {
	if v.Status == VoucherRedeemed {
		return VoucherRedeemed
	}
	if now.After(v.ExpiryDate) {
		return VoucherExpired
	}
	return VoucherIssued
}

type Expense struct {
	ID        int64
	OutletID  *int64
	Title     string
	Amount    decimal.Decimal
	Category  string
	Date      time.Time
	Note      string
	CreatedAt time.Time
	DeletedAt *time.Time
}

type Invoice struct {
	ID             int64
	Number         string
	OutletID       int64
	CustomerName   string
	CustomerMobile string
	Amount         decimal.Decimal
	Source         string
	Date           time.Time
	CreatedAt      time.Time
}
