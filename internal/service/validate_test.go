package service

import (
	"context"
	"testing"

	"salondesk-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidMobile(t *testing.T) {
	cases := []struct {
		mobile string
		ok     bool
	}{
		{"9876543210", true},
		{"6000000000", true},
		{"5876543210", false}, // first digit below 6
		{"98765432", false},   // too short
		{"98765432101", false},
		{"98765abc10", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, ValidMobile(tc.mobile), "mobile %q", tc.mobile)
	}
}

func TestParseDate(t *testing.T) {
	_, err := parseDate("assignedDate", "2025-04-31")
	require.Error(t, err)
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)

	d, err := parseDate("assignedDate", "2025-04-30")
	require.NoError(t, err)
	assert.Equal(t, 30, d.Day())
}

func TestAssignPackageInput_Validation(t *testing.T) {
	valid := AssignPackageInput{
		CustomerName:   "Asha",
		CustomerMobile: "9876543210",
		TemplateID:     1,
		OutletID:       2,
		AssignedDate:   "2025-04-01",
	}
	require.NoError(t, valid.validate())

	cases := []struct {
		name   string
		mutate func(*AssignPackageInput)
	}{
		{"missing name", func(in *AssignPackageInput) { in.CustomerName = "" }},
		{"bad mobile", func(in *AssignPackageInput) { in.CustomerMobile = "12345" }},
		{"missing template", func(in *AssignPackageInput) { in.TemplateID = 0 }},
		{"missing outlet", func(in *AssignPackageInput) { in.OutletID = 0 }},
		{"bad date", func(in *AssignPackageInput) { in.AssignedDate = "01-04-2025" }},
		{"pct above 100", func(in *AssignPackageInput) {
			pct := decimal.NewFromInt(101)
			in.StaffTargetPct = &pct
		}},
		{"negative pct", func(in *AssignPackageInput) {
			pct := decimal.NewFromInt(-1)
			in.StaffTargetPct = &pct
		}},
		{"unnamed service line", func(in *AssignPackageInput) {
			in.InitialServices = []ServiceLineInput{{Name: "", Value: decimal.NewFromInt(100)}}
		}},
		{"negative service value", func(in *AssignPackageInput) {
			in.InitialServices = []ServiceLineInput{{Name: "Haircut", Value: decimal.NewFromInt(-5)}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			err := in.validate()
			require.Error(t, err)
			var validation *domain.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestRedeemServicesInput_RequiresServices(t *testing.T) {
	in := RedeemServicesInput{
		PackageID:      1,
		RedemptionDate: "2025-04-01",
	}
	err := in.validate()
	require.Error(t, err)
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestVoucherIssue_Validation(t *testing.T) {
	svc := VoucherService{}
	ctx := context.Background()

	base := IssueVoucherInput{
		Recipient:   "Asha",
		DiscountPct: decimal.NewFromInt(10),
		IssueDate:   "2025-04-01",
		ExpiryDate:  "2025-06-01",
	}

	cases := []struct {
		name   string
		mutate func(*IssueVoucherInput)
	}{
		{"missing recipient", func(in *IssueVoucherInput) { in.Recipient = "" }},
		{"pct above 100", func(in *IssueVoucherInput) { in.DiscountPct = decimal.NewFromInt(150) }},
		{"bad issue date", func(in *IssueVoucherInput) { in.IssueDate = "April 1" }},
		{"bad expiry date", func(in *IssueVoucherInput) { in.ExpiryDate = "" }},
		{"expiry before issue", func(in *IssueVoucherInput) { in.ExpiryDate = "2025-03-01" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)
			_, err := svc.Issue(ctx, in)
			require.Error(t, err)
			var validation *domain.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}
