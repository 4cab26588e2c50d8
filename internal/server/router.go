package server

import (
	"log/slog"
	"net/http"
	"time"

	"salondesk-backend/internal/config"
	"salondesk-backend/internal/domain"
	"salondesk-backend/internal/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP routes and middleware.
func NewRouter(cfg config.Config,
	logger *slog.Logger,
	health handler.HealthHandler,
	auth handler.AuthHandler,
	outlets handler.OutletHandler,
	customers handler.CustomerHandler,
	staff handler.StaffHandler,
	packages handler.PackageHandler,
	attendance handler.AttendanceHandler,
	payroll handler.PayrollHandler,
	vouchers handler.VoucherHandler,
	expenses handler.ExpenseHandler,
	invoices handler.InvoiceHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))

	health.RegisterRoutes(r)
	auth.RegisterRoutes(r)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(cfg.JWTSecret))
		// staff-level (staff/manager/admin)
		pr.Group(func(sr chi.Router) {
			sr.Use(RequireRole(domain.RoleAdmin, domain.RoleManager, domain.RoleStaff))
			customers.RegisterRoutes(sr)
			packages.RegisterRoutes(sr)
			attendance.RegisterRoutes(sr)
			vouchers.RegisterRoutes(sr)
		})
		// manager-level (manager/admin)
		pr.Group(func(mr chi.Router) {
			mr.Use(RequireRole(domain.RoleAdmin, domain.RoleManager))
			outlets.RegisterRoutes(mr)
			staff.RegisterRoutes(mr)
			payroll.RegisterRoutes(mr)
			expenses.RegisterRoutes(mr)
			invoices.RegisterRoutes(mr)
		})
		// admin-only
		pr.Group(func(ar chi.Router) {
			ar.Use(RequireRole(domain.RoleAdmin))
			packages.RegisterAdminRoutes(ar)
		})
	})

	return r
}
