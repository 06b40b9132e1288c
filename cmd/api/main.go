package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RoyceColton/Maintenance-Inventory-System/api/routes"
	"github.com/RoyceColton/Maintenance-Inventory-System/internal/audit"
	"github.com/RoyceColton/Maintenance-Inventory-System/internal/auth"
	"github.com/RoyceColton/Maintenance-Inventory-System/internal/orders"
	"github.com/RoyceColton/Maintenance-Inventory-System/internal/parts"
	"github.com/RoyceColton/Maintenance-Inventory-System/internal/reports"
	"github.com/RoyceColton/Maintenance-Inventory-System/internal/turntasks"
	"github.com/RoyceColton/Maintenance-Inventory-System/internal/users"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/auth/session"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/config"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/db"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/logger"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/metrics"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/migrate"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/redis"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/sheets"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	sqlDB, err := dbClient.DB().DB()
	if err != nil {
		logg.Error(context.Background(), "failed to access sql connection", err)
		os.Exit(1)
	}
	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, sqlDB); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	var sheetsClient *sheets.Client
	if cfg.Budget.SpreadsheetID != "" {
		sheetsClient, err = sheets.NewClient(context.Background(), cfg.Budget, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap sheets client", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "budget spreadsheet not configured, budget reports disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.NewHTTPMetrics(registry)
	inventoryMetrics := metrics.NewInventoryMetrics(registry)

	conn := dbClient.DB()
	partsRepo := parts.NewRepository(conn)
	ordersRepo := orders.NewRepository(conn)
	auditRepo := audit.NewRepository(conn)
	usersRepo := users.NewRepository(conn)
	tasksRepo := turntasks.NewRepository(conn)
	reportsRepo := reports.NewRepository(conn)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		AuditRepo:      auditRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	partsService, err := parts.NewService(partsRepo, dbClient, auditRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create parts service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(ordersRepo, partsRepo, dbClient, auditRepo, inventoryMetrics, cfg.Budget)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	var budgetSource sheets.BudgetSource
	if sheetsClient != nil {
		budgetSource = sheetsClient
	}
	reportsService, err := reports.NewService(reportsRepo, partsRepo, budgetSource, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}

	tasksService, err := turntasks.NewService(tasksRepo, dbClient, auditRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create turn task service", err)
		os.Exit(1)
	}

	var sheetsPinger sheets.Pinger
	if sheetsClient != nil {
		sheetsPinger = sheetsClient
	}

	router := routes.NewRouter(routes.Deps{
		Config:         cfg,
		Logger:         logg,
		DB:             dbClient,
		Redis:          redisClient,
		Sheets:         sheetsPinger,
		SessionManager: sessionManager,
		HTTPMetrics:    httpMetrics,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		AuthService:    authService,
		PartsService:   partsService,
		OrdersService:  ordersService,
		ReportsService: reportsService,
		TasksService:   tasksService,
		AuditRepo:      auditRepo,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
