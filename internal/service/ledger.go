package service

import (
	"fmt"

	"salondesk-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// ServiceLine is one requested deduction against a package balance. For
// sittings packages the value is ignored and each line costs one sitting.
type ServiceLine struct {
	Name      string
	Value     decimal.Decimal
	StaffID   *int64
	StaffName string
}

// BalanceStep records the running balance around one deducted line. Steps are
// returned for receipts and display only; they are never persisted.
type BalanceStep struct {
	Service   string
	Previous  decimal.Decimal
	Deducted  decimal.Decimal
	Remaining decimal.Decimal
}

// DeductionResult is the outcome of a successful whole-batch deduction.
type DeductionResult struct {
	NewRemaining    decimal.Decimal
	NewUsedSittings int
	Progression     []BalanceStep
}

// Deduct checks and applies a batch of service lines against the package
// balance. The batch is atomic: if the requested total exceeds the remaining
// balance nothing is deducted and a ConflictError is returned.
func Deduct(pkg domain.CustomerPackage, lines []ServiceLine) (DeductionResult, error) {
	if pkg.Kind == domain.PackageSittings {
		return deductSittings(pkg, lines)
	}
	return deductValue(pkg, lines)
}

func deductValue(pkg domain.CustomerPackage, lines []ServiceLine) (DeductionResult, error) {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Value)
	}
	if total.GreaterThan(pkg.RemainingValue) {
		return DeductionResult{}, domain.Conflict(
			fmt.Sprintf("requested %s exceeds remaining balance %s",
				total.StringFixed(2), pkg.RemainingValue.StringFixed(2)),
			domain.ErrInsufficientBalance,
		)
	}

	remaining := pkg.RemainingValue
	steps := make([]BalanceStep, 0, len(lines))
	for _, line := range lines {
		prev := remaining
		remaining = remaining.Sub(line.Value)
		steps = append(steps, BalanceStep{
			Service:   line.Name,
			Previous:  prev,
			Deducted:  line.Value,
			Remaining: remaining,
		})
	}

	return DeductionResult{
		NewRemaining:    remaining,
		NewUsedSittings: pkg.UsedSittings,
		Progression:     steps,
	}, nil
}

func deductSittings(pkg domain.CustomerPackage, lines []ServiceLine) (DeductionResult, error) {
	requested := len(lines)
	if pkg.UsedSittings+requested > pkg.TotalSittings {
		return DeductionResult{}, domain.Conflict(
			fmt.Sprintf("requested %d sittings but only %d remain",
				requested, pkg.TotalSittings-pkg.UsedSittings),
			domain.ErrInsufficientBalance,
		)
	}

	one := decimal.NewFromInt(1)
	remaining := decimal.NewFromInt(int64(pkg.TotalSittings - pkg.UsedSittings))
	steps := make([]BalanceStep, 0, len(lines))
	for _, line := range lines {
		prev := remaining
		remaining = remaining.Sub(one)
		steps = append(steps, BalanceStep{
			Service:   line.Name,
			Previous:  prev,
			Deducted:  one,
			Remaining: remaining,
		})
	}

	return DeductionResult{
		NewRemaining:    pkg.RemainingValue,
		NewUsedSittings: pkg.UsedSittings + requested,
		Progression:     steps,
	}, nil
}
