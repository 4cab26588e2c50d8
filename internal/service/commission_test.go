package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCommission_FullCredit(t *testing.T) {
	got := Commission(decimal.NewFromInt(500), DefaultTargetPct())
	assert.True(t, got.Equal(decimal.NewFromInt(500)), "100%% credit should equal service value, got %s", got)
}

func TestCommission_PartialCredit(t *testing.T) {
	got := Commission(decimal.NewFromInt(500), decimal.NewFromInt(40))
	assert.True(t, got.Equal(decimal.NewFromInt(200)), "40%% of 500 should be 200, got %s", got)
}

func TestCommission_RoundsToTwoPlaces(t *testing.T) {
	got := Commission(decimal.NewFromFloat(333.33), decimal.NewFromInt(60))
	assert.Equal(t, "200.00", got.StringFixed(2))
}

func TestReportedCommission_UsesFixedRate(t *testing.T) {
	// The display rate is independent of whatever percentage was accrued at
	// redemption time.
	got := ReportedCommission(decimal.NewFromInt(1000))
	assert.True(t, got.Equal(decimal.NewFromInt(600)), "reported commission should be 60%% of sales, got %s", got)
}

func TestCommission_ZeroPct(t *testing.T) {
	got := Commission(decimal.NewFromInt(750), decimal.Zero)
	assert.True(t, got.IsZero())
}
