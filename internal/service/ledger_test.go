package service

import (
	"errors"
	"testing"

	"salondesk-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valuePackage(initial, remaining int64) domain.CustomerPackage {
	return domain.CustomerPackage{
		ID:             1,
		Kind:           domain.PackageValue,
		InitialValue:   decimal.NewFromInt(initial),
		RemainingValue: decimal.NewFromInt(remaining),
	}
}

func sittingsPackage(total, used int) domain.CustomerPackage {
	return domain.CustomerPackage{
		ID:            2,
		Kind:          domain.PackageSittings,
		TotalSittings: total,
		UsedSittings:  used,
	}
}

func line(name string, value int64) ServiceLine {
	return ServiceLine{Name: name, Value: decimal.NewFromInt(value)}
}

func TestDeduct_ValueBatch_ProgressionPerLine(t *testing.T) {
	// GIVEN: a value package with 1000 remaining
	// WHEN: deducting a batch of 300 and 250
	// THEN: remaining is 450 and the progression shows each step

	pkg := valuePackage(1000, 1000)

	result, err := Deduct(pkg, []ServiceLine{line("Haircut", 300), line("Facial", 250)})
	require.NoError(t, err)

	assert.True(t, result.NewRemaining.Equal(decimal.NewFromInt(450)),
		"remaining should be 450, got %s", result.NewRemaining)

	require.Len(t, result.Progression, 2)
	assert.Equal(t, "Haircut", result.Progression[0].Service)
	assert.True(t, result.Progression[0].Previous.Equal(decimal.NewFromInt(1000)))
	assert.True(t, result.Progression[0].Remaining.Equal(decimal.NewFromInt(700)))
	assert.Equal(t, "Facial", result.Progression[1].Service)
	assert.True(t, result.Progression[1].Previous.Equal(decimal.NewFromInt(700)))
	assert.True(t, result.Progression[1].Remaining.Equal(decimal.NewFromInt(450)))
}

func TestDeduct_ValueBatch_ExceedsBalance_NothingDeducted(t *testing.T) {
	// GIVEN: a value package with 500 remaining
	// WHEN: deducting a batch totalling 600
	// THEN: the whole batch is rejected, even though the first line alone fits

	pkg := valuePackage(1000, 500)

	_, err := Deduct(pkg, []ServiceLine{line("Haircut", 450), line("Facial", 150)})
	require.Error(t, err)

	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.True(t, errors.Is(err, domain.ErrInsufficientBalance))
}

func TestDeduct_ValueBatch_ExactBalance_Allowed(t *testing.T) {
	pkg := valuePackage(1000, 550)

	result, err := Deduct(pkg, []ServiceLine{line("Haircut", 300), line("Facial", 250)})
	require.NoError(t, err)
	assert.True(t, result.NewRemaining.IsZero())
}

func TestDeduct_ValueBatch_ZeroValueLine_Allowed(t *testing.T) {
	// Complimentary lines carry zero value but still appear in the progression.
	pkg := valuePackage(1000, 100)

	result, err := Deduct(pkg, []ServiceLine{line("Complimentary Threading", 0)})
	require.NoError(t, err)
	assert.True(t, result.NewRemaining.Equal(decimal.NewFromInt(100)))
	require.Len(t, result.Progression, 1)
	assert.True(t, result.Progression[0].Deducted.IsZero())
}

func TestDeduct_Sittings_OnePerLine(t *testing.T) {
	// GIVEN: a 10-sitting package with 9 used
	// WHEN: redeeming one more service
	// THEN: used becomes 10

	pkg := sittingsPackage(10, 9)

	result, err := Deduct(pkg, []ServiceLine{line("Hair Spa", 0)})
	require.NoError(t, err)
	assert.Equal(t, 10, result.NewUsedSittings)
	require.Len(t, result.Progression, 1)
	assert.True(t, result.Progression[0].Previous.Equal(decimal.NewFromInt(1)))
	assert.True(t, result.Progression[0].Remaining.IsZero())
}

func TestDeduct_Sittings_BatchExceedsRemaining_Rejected(t *testing.T) {
	// GIVEN: a 10-sitting package with 9 used
	// WHEN: redeeming a batch of two services
	// THEN: the batch is rejected and used stays unchanged

	pkg := sittingsPackage(10, 9)

	_, err := Deduct(pkg, []ServiceLine{line("Hair Spa", 0), line("Pedicure", 0)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientBalance))
}

func TestDeduct_Sittings_ValueIgnored(t *testing.T) {
	// Sittings deduction is driven by line count, not line value.
	pkg := sittingsPackage(5, 0)

	result, err := Deduct(pkg, []ServiceLine{line("Hair Spa", 99999)})
	require.NoError(t, err)
	assert.Equal(t, 1, result.NewUsedSittings)
}
