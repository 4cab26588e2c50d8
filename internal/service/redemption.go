package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"salondesk-backend/internal/db"
	"salondesk-backend/internal/domain"
	"salondesk-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RedemptionService orchestrates package assignment and service redemption.
// Each operation runs as one database transaction: ledger check, audit
// records and the balance update either all land or none do. Target accrual
// for staff is deliberately outside the transaction (best-effort, logged).
type RedemptionService struct {
	DB       *db.Postgres
	Packages repository.PackageRepository
	Records  repository.ServiceRecordRepository
	Invoices repository.InvoiceRepository
	Staff    repository.StaffRepository
	Logger   *slog.Logger
}

type AssignPackageInput struct {
	CustomerName    string
	CustomerMobile  string
	TemplateID      int64
	OutletID        int64
	AssignedDate    string
	InitialServices []ServiceLineInput
	StaffTargetPct  *decimal.Decimal
}

func (in AssignPackageInput) validate() error {
	if in.CustomerName == "" {
		return domain.Invalid("customerName", "is required")
	}
	if !ValidMobile(in.CustomerMobile) {
		return domain.Invalid("customerMobile", "must be a 10-digit mobile number starting 6-9")
	}
	if in.TemplateID <= 0 {
		return domain.Invalid("packageTemplateId", "is required")
	}
	if in.OutletID <= 0 {
		return domain.Invalid("outletId", "is required")
	}
	if _, err := parseDate("assignedDate", in.AssignedDate); err != nil {
		return err
	}
	if in.StaffTargetPct != nil && !validTargetPct(*in.StaffTargetPct) {
		return domain.Invalid("staffTargetPercentage", "must be between 0 and 100")
	}
	return validateServiceLines(in.InitialServices, false)
}

type AssignResult struct {
	Package     domain.CustomerPackage
	Records     []domain.ServiceRecord
	Invoice     *domain.Invoice
	Progression []BalanceStep
}

type RedeemServicesInput struct {
	PackageID      int64
	Services       []ServiceLineInput
	RedemptionDate string
	StaffTargetPct *decimal.Decimal
}

func (in RedeemServicesInput) validate() error {
	if in.PackageID <= 0 {
		return domain.Invalid("packageId", "is required")
	}
	if _, err := parseDate("redemptionDate", in.RedemptionDate); err != nil {
		return err
	}
	if in.StaffTargetPct != nil && !validTargetPct(*in.StaffTargetPct) {
		return domain.Invalid("staffTargetPercentage", "must be between 0 and 100")
	}
	return validateServiceLines(in.Services, true)
}

type RedeemResult struct {
	Package     domain.CustomerPackage
	Records     []domain.ServiceRecord
	Progression []BalanceStep
}

// AssignPackage creates a customer package from a template and optionally
// redeems an initial batch of services in the same transaction.
func (s RedemptionService) AssignPackage(ctx context.Context, in AssignPackageInput) (*AssignResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	assignedDate, _ := parseDate("assignedDate", in.AssignedDate)

	tx, err := s.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	template, err := s.Packages.GetTemplateWithTx(ctx, tx, in.TemplateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("package template", strconv.FormatInt(in.TemplateID, 10))
		}
		return nil, err
	}
	if template.OutletID != nil && *template.OutletID != in.OutletID {
		return nil, domain.Conflict("package template belongs to another outlet", nil)
	}

	pkg, err := s.Packages.InsertWithTx(ctx, tx, domain.CustomerPackage{
		TemplateID:     &template.ID,
		OutletID:       in.OutletID,
		CustomerName:   in.CustomerName,
		CustomerMobile: in.CustomerMobile,
		Kind:           template.Kind,
		InitialValue:   template.Value,
		RemainingValue: template.Value,
		TotalSittings:  template.TotalSittings,
		UsedSittings:   0,
		AssignedDate:   assignedDate,
	})
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, domain.NotFound("outlet", strconv.FormatInt(in.OutletID, 10))
		}
		return nil, fmt.Errorf("insert package: %w", err)
	}

	result := &AssignResult{Package: *pkg}

	if len(in.InitialServices) > 0 {
		ded, err := Deduct(*pkg, toServiceLines(in.InitialServices))
		if err != nil {
			return nil, err
		}
		txID := uuid.NewString()
		for _, line := range in.InitialServices {
			rec, err := s.Records.InsertWithTx(ctx, tx, domain.ServiceRecord{
				PackageID:     pkg.ID,
				TransactionID: txID,
				ServiceName:   line.Name,
				ServiceValue:  line.Value,
				StaffID:       line.StaffID,
				StaffName:     line.StaffName,
				ServiceDate:   assignedDate,
			})
			if err != nil {
				return nil, fmt.Errorf("insert service record: %w", err)
			}
			result.Records = append(result.Records, *rec)
		}
		if err := s.Packages.UpdateBalanceWithTx(ctx, tx, pkg.ID, ded.NewRemaining, ded.NewUsedSittings); err != nil {
			return nil, fmt.Errorf("update balance: %w", err)
		}
		result.Progression = ded.Progression
		pkg.RemainingValue = ded.NewRemaining
		pkg.UsedSittings = ded.NewUsedSittings
		result.Package = *pkg
	}

	invoice, err := s.Invoices.InsertWithTx(ctx, tx, domain.Invoice{
		Number:         "INV-" + uuid.NewString(),
		OutletID:       in.OutletID,
		CustomerName:   in.CustomerName,
		CustomerMobile: in.CustomerMobile,
		Amount:         template.Value,
		Source:         "package_assignment",
		Date:           assignedDate,
	})
	if err != nil {
		return nil, fmt.Errorf("insert invoice: %w", err)
	}
	result.Invoice = invoice

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	assignmentsTotal.Inc()

	s.accrueTargets(ctx, in.InitialServices, in.StaffTargetPct)
	return result, nil
}

// RedeemServices deducts a batch of services from a package, writing one
// immutable audit record per line. The package row stays locked from the
// balance check to the commit, so concurrent redemptions cannot over-deduct.
func (s RedemptionService) RedeemServices(ctx context.Context, in RedeemServicesInput) (*RedeemResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	redemptionDate, _ := parseDate("redemptionDate", in.RedemptionDate)

	tx, err := s.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	pkg, err := s.Packages.GetForUpdate(ctx, tx, in.PackageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("package", strconv.FormatInt(in.PackageID, 10))
		}
		return nil, err
	}

	ded, err := Deduct(*pkg, toServiceLines(in.Services))
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			redemptionConflictsTotal.Inc()
		}
		return nil, err
	}

	result := &RedeemResult{Progression: ded.Progression}
	txID := uuid.NewString()
	for _, line := range in.Services {
		rec, err := s.Records.InsertWithTx(ctx, tx, domain.ServiceRecord{
			PackageID:     pkg.ID,
			TransactionID: txID,
			ServiceName:   line.Name,
			ServiceValue:  line.Value,
			StaffID:       line.StaffID,
			StaffName:     line.StaffName,
			ServiceDate:   redemptionDate,
		})
		if err != nil {
			return nil, fmt.Errorf("insert service record: %w", err)
		}
		result.Records = append(result.Records, *rec)
	}

	if err := s.Packages.UpdateBalanceWithTx(ctx, tx, pkg.ID, ded.NewRemaining, ded.NewUsedSittings); err != nil {
		return nil, fmt.Errorf("update balance: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	redemptionsTotal.Inc()

	pkg.RemainingValue = ded.NewRemaining
	pkg.UsedSittings = ded.NewUsedSittings
	result.Package = *pkg

	s.accrueTargets(ctx, in.Services, in.StaffTargetPct)
	return result, nil
}

// DeletePackage removes a package. Deletion is refused once any redemption
// exists: audit history is immutable and must not cascade away.
func (s RedemptionService) DeletePackage(ctx context.Context, packageID int64) error {
	has, err := s.Packages.HasRecords(ctx, packageID)
	if err != nil {
		return err
	}
	if has {
		return domain.Conflict("package has redemption history and cannot be deleted", nil)
	}
	if err := s.Packages.Delete(ctx, packageID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NotFound("package", strconv.FormatInt(packageID, 10))
		}
		return err
	}
	return nil
}

// accrueTargets credits commission toward each staff sales target. Failures
// here never fail the parent operation; they are logged and skipped.
func (s RedemptionService) accrueTargets(ctx context.Context, lines []ServiceLineInput, pct *decimal.Decimal) {
	targetPct := DefaultTargetPct()
	if pct != nil {
		targetPct = *pct
	}
	for _, line := range lines {
		if line.StaffID == nil {
			continue
		}
		amount := Commission(line.Value, targetPct)
		ok, err := s.Staff.IncrementTarget(ctx, *line.StaffID, amount)
		if err != nil {
			s.Logger.Warn("target accrual failed", "staffId", *line.StaffID, "amount", amount, "err", err)
			continue
		}
		if !ok {
			s.Logger.Warn("target accrual skipped: unknown or inactive staff", "staffId", *line.StaffID)
		}
	}
}
