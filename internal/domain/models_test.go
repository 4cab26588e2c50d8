package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVoucherEffectiveStatus(t *testing.T) {
	issue := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	v := Voucher{Status: VoucherIssued, IssueDate: issue, ExpiryDate: expiry}

	// Before expiry the stored status stands.
	assert.Equal(t, VoucherIssued, v.EffectiveStatus(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))

	// After expiry an unredeemed voucher reads as Expired even though no
	// transition was stored.
	assert.Equal(t, VoucherExpired, v.EffectiveStatus(time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)))

	// Redemption is terminal; a redeemed voucher never reads as Expired.
	v.Status = VoucherRedeemed
	assert.Equal(t, VoucherRedeemed, v.EffectiveStatus(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestVoucherEffectiveStatus_ExpiryDayInclusive(t *testing.T) {
	expiry := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	v := Voucher{Status: VoucherIssued, ExpiryDate: expiry}

	// On the expiry instant itself the voucher is still redeemable.
	assert.Equal(t, VoucherIssued, v.EffectiveStatus(expiry))
}
