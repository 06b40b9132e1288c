package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RoyceColton/Maintenance-Inventory-System/api/controllers"
	"github.com/RoyceColton/Maintenance-Inventory-System/api/middleware"
	auditsvc "github.com/RoyceColton/Maintenance-Inventory-System/internal/audit"
	"github.com/RoyceColton/Maintenance-Inventory-System/internal/auth"
	ordersvc "github.com/RoyceColton/Maintenance-Inventory-System/internal/orders"
	partsvc "github.com/RoyceColton/Maintenance-Inventory-System/internal/parts"
	reportsvc "github.com/RoyceColton/Maintenance-Inventory-System/internal/reports"
	tasksvc "github.com/RoyceColton/Maintenance-Inventory-System/internal/turntasks"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/auth/session"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/config"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/enums"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/logger"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/metrics"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/redis"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/sheets"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Deps bundles everything the router mounts.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	Sheets         sheets.Pinger
	SessionManager sessionManager
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler

	AuthService    auth.Service
	PartsService   partsvc.Service
	OrdersService  ordersvc.Service
	ReportsService reportsvc.Service
	TasksService   tasksvc.Service
	AuditRepo      *auditsvc.Repository
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	var redisPinger redis.Pinger
	if deps.Redis != nil {
		redisPinger = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisPinger, deps.Sheets))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))

		r.Get("/rooms", controllers.ListRooms())

		r.Route("/parts", func(r chi.Router) {
			r.Get("/", controllers.ListParts(deps.PartsService, logg))
			r.Post("/", controllers.CreatePart(deps.PartsService, logg))
			r.Route("/{partID}", func(r chi.Router) {
				r.Get("/", controllers.GetPart(deps.PartsService, logg))
				r.Patch("/", controllers.UpdatePart(deps.PartsService, logg))
				r.Delete("/", controllers.DeletePart(deps.PartsService, logg))
				r.Post("/increment", controllers.AdjustPartCount(deps.PartsService, 1, logg))
				r.Post("/decrement", controllers.AdjustPartCount(deps.PartsService, -1, logg))
				r.Post("/purchase", controllers.RecordPurchase(deps.OrdersService, logg))
				r.Get("/orders", controllers.PartOrderHistory(deps.OrdersService, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/combined", controllers.CombinedOrders(deps.OrdersService, logg))
			r.Patch("/{orderID}", controllers.EditOrder(deps.OrdersService, logg))
			r.Post("/{orderID}/deliver", controllers.DeliverOrder(deps.OrdersService, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/history", controllers.MonthlyHistoryReport(deps.ReportsService, logg))
			r.Get("/budget", controllers.BudgetReport(deps.ReportsService, logg))
			r.Get("/trends", controllers.UsageTrendsReport(deps.ReportsService, logg))
		})

		r.Route("/turn-tasks", func(r chi.Router) {
			r.Get("/", controllers.ListTurnTasks(deps.TasksService, logg))
			r.Post("/", controllers.CreateTurnTask(deps.TasksService, logg))
			r.Patch("/{taskID}", controllers.UpdateTurnTask(deps.TasksService, logg))
			r.Post("/{taskID}/complete-item", controllers.CompleteTurnTaskItem(deps.TasksService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.UserRoleWarden, logg))
			r.Get("/audit", controllers.ListAuditEntries(deps.AuditRepo, logg))
			r.Post("/users", controllers.CreateUser(deps.AuthService, logg))
		})
	})

	return r
}
