package service

import "github.com/shopspring/decimal"

// reportingCommissionPct is the fixed rate used when displaying commission in
// staff performance listings. It is recomputed from summed service records at
// read time and is independent of the accrual written at redemption time.
const reportingCommissionPct = 60

var hundred = decimal.NewFromInt(100)

// Commission returns serviceValue * targetPct / 100. The accrual stored on
// staff.current_target uses whatever percentage the caller supplied at
// redemption or assignment time (partial-credit assignments pass less than
// 100).
func Commission(serviceValue, targetPct decimal.Decimal) decimal.Decimal {
	return serviceValue.Mul(targetPct).Div(hundred).Round(2)
}

// ReportedCommission returns the display commission for a staff sales total.
func ReportedCommission(totalServiceValue decimal.Decimal) decimal.Decimal {
	return Commission(totalServiceValue, decimal.NewFromInt(reportingCommissionPct))
}

// DefaultTargetPct is used when no percentage accompanies the request.
func DefaultTargetPct() decimal.Decimal {
	return hundred
}
