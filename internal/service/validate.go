package service

import (
	"regexp"
	"time"

	"salondesk-backend/internal/domain"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Indian mobile numbers: ten digits, first digit 6-9.
var mobileRe = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// ValidMobile reports whether the value is a ten digit Indian mobile number.
func ValidMobile(mobile string) bool {
	return mobileRe.MatchString(mobile)
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, domain.Invalid(field, "must be in YYYY-MM-DD format")
	}
	return t, nil
}

func validTargetPct(pct decimal.Decimal) bool {
	return !pct.IsNegative() && !pct.GreaterThan(hundred)
}

// ServiceLineInput is the wire-facing form of a requested service line.
type ServiceLineInput struct {
	Name      string
	Value     decimal.Decimal
	StaffID   *int64
	StaffName string
}

func validateServiceLines(lines []ServiceLineInput, required bool) error {
	if required && len(lines) == 0 {
		return domain.Invalid("services", "at least one service is required")
	}
	for _, line := range lines {
		if line.Name == "" {
			return domain.Invalid("services", "service name is required")
		}
		if line.Value.IsNegative() {
			return domain.Invalid("services", "service value must not be negative")
		}
	}
	return nil
}

func toServiceLines(in []ServiceLineInput) []ServiceLine {
	out := make([]ServiceLine, 0, len(in))
	for _, line := range in {
		out = append(out, ServiceLine{
			Name:      line.Name,
			Value:     line.Value,
			StaffID:   line.StaffID,
			StaffName: line.StaffName,
		})
	}
	return out
}
