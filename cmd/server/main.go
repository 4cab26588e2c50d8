package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salondesk-backend/internal/config"
	"salondesk-backend/internal/db"
	"salondesk-backend/internal/handler"
	"salondesk-backend/internal/repository"
	"salondesk-backend/internal/server"
	"salondesk-backend/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	defer pg.Close()

	// repositories
	userRepo := repository.UserRepository{DB: pg}
	outletRepo := repository.OutletRepository{DB: pg}
	customerRepo := repository.CustomerRepository{DB: pg}
	staffRepo := repository.StaffRepository{DB: pg}
	packageRepo := repository.PackageRepository{DB: pg}
	recordRepo := repository.ServiceRecordRepository{DB: pg}
	attendanceRepo := repository.AttendanceRepository{DB: pg}
	adjustmentRepo := repository.AdjustmentRepository{DB: pg}
	voucherRepo := repository.VoucherRepository{DB: pg}
	expenseRepo := repository.ExpenseRepository{DB: pg}
	invoiceRepo := repository.InvoiceRepository{DB: pg}

	// services
	authSvc := service.AuthService{Config: cfg, Users: userRepo, Logger: logger}
	redemptionSvc := service.RedemptionService{
		DB:       pg,
		Packages: packageRepo,
		Records:  recordRepo,
		Invoices: invoiceRepo,
		Staff:    staffRepo,
		Logger:   logger,
	}
	payrollSvc := service.PayrollService{
		Staff:       staffRepo,
		Attendance:  attendanceRepo,
		Adjustments: adjustmentRepo,
		Now:         time.Now,
	}
	voucherSvc := service.VoucherService{Repo: voucherRepo, Now: time.Now}

	// handlers
	healthHandler := handler.HealthHandler{DB: pg}
	authHandler := handler.AuthHandler{Service: &authSvc}
	outletHandler := handler.OutletHandler{Repo: outletRepo}
	customerHandler := handler.CustomerHandler{Repo: customerRepo}
	staffHandler := handler.StaffHandler{Repo: staffRepo, Records: recordRepo}
	packageHandler := handler.PackageHandler{Repo: packageRepo, Records: recordRepo, Service: redemptionSvc}
	attendanceHandler := handler.AttendanceHandler{Repo: attendanceRepo}
	payrollHandler := handler.PayrollHandler{Service: payrollSvc, Adjustments: adjustmentRepo}
	voucherHandler := handler.VoucherHandler{Service: voucherSvc}
	expenseHandler := handler.ExpenseHandler{Repo: expenseRepo}
	invoiceHandler := handler.InvoiceHandler{Repo: invoiceRepo}

	router := server.NewRouter(cfg, logger, healthHandler, authHandler, outletHandler, customerHandler,
		staffHandler, packageHandler, attendanceHandler, payrollHandler, voucherHandler, expenseHandler, invoiceHandler)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
