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

// VoucherService enforces the forward-only voucher lifecycle:
// Issued -> Redeemed, with Expired derived from the expiry date.
type VoucherService struct {
	Repo repository.VoucherRepository
	Now  func() time.Time
}

type IssueVoucherInput struct {
	OutletID    *int64
	Recipient   string
	DiscountPct decimal.Decimal
	Type        string
	IssueDate   string
	ExpiryDate  string
}

func (s VoucherService) Issue(ctx context.Context, in IssueVoucherInput) (*domain.Voucher, error) {
	if in.Recipient == "" {
		return nil, domain.Invalid("recipient", "is required")
	}
	if !validTargetPct(in.DiscountPct) {
		return nil, domain.Invalid("discountPct", "must be between 0 and 100")
	}
	issueDate, err := parseDate("issueDate", in.IssueDate)
	if err != nil {
		return nil, err
	}
	expiryDate, err := parseDate("expiryDate", in.ExpiryDate)
	if err != nil {
		return nil, err
	}
	if expiryDate.Before(issueDate) {
		return nil, domain.Invalid("expiryDate", "must not be before issueDate")
	}

	return s.Repo.Create(ctx, domain.Voucher{
		OutletID:    in.OutletID,
		Recipient:   in.Recipient,
		DiscountPct: in.DiscountPct,
		Type:        in.Type,
		IssueDate:   issueDate,
		ExpiryDate:  expiryDate,
	})
}

// Redeem moves a voucher to its terminal state. Redeeming twice, or after
// expiry, is a conflict.
func (s VoucherService) Redeem(ctx context.Context, id int64) (*domain.Voucher, error) {
	v, err := s.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("voucher", strconv.FormatInt(id, 10))
		}
		return nil, err
	}

	now := s.now()
	switch v.EffectiveStatus(now) {
	case domain.VoucherRedeemed:
		return nil, domain.Conflict("voucher already redeemed", nil)
	case domain.VoucherExpired:
		return nil, domain.Conflict("voucher has expired", nil)
	}

	ok, err := s.Repo.MarkRedeemed(ctx, id, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost a race with another redeem.
		return nil, domain.Conflict("voucher already redeemed", nil)
	}
	return s.Repo.Get(ctx, id)
}

func (s VoucherService) List(ctx context.Context, outletID *int64, limit int) ([]domain.Voucher, error) {
	items, err := s.Repo.List(ctx, outletID, limit)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range items {
		items[i].Status = items[i].EffectiveStatus(now)
	}
	return items, nil
}

func (s VoucherService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
