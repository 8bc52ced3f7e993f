package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcapi "rentaldesk-backend/internal/api/grpc"
	httpapi "rentaldesk-backend/internal/api/http"
	"rentaldesk-backend/internal/config"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/pricing"
	"rentaldesk-backend/internal/repository/postgres"
	"rentaldesk-backend/internal/security"
	"rentaldesk-backend/internal/service"
	"rentaldesk-backend/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	migrate := flag.Bool("migrate", false, "Apply the database schema before serving")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rental Desk Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "http_address", cfg.GetServerAddress(), "grpc_address", cfg.GetGRPCAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Email configuration", "provider", cfg.Email.Provider)
	logger.Info("Pricing configuration", "currency", cfg.Pricing.Currency, "invoice_number_template", cfg.Pricing.InvoiceNumberTemplate)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if *migrate {
		if err := postgres.Migrate(context.Background(), db); err != nil {
			logger.Error("Failed to migrate database", "error", err)
			log.Fatalf("Failed to migrate database: %v", err)
		}
		logger.Info("Database schema applied")
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer)

	// Initialize Pricing
	engine, err := pricing.NewEngine(cfg.Pricing.Rates())
	if err != nil {
		log.Fatalf("Failed to build pricing engine: %v", err)
	}

	// Initialize Email Service
	mailer, err := service.NewMailer(cfg.Email)
	if err != nil {
		log.Fatalf("Failed to configure email: %v", err)
	}
	emailSvc := service.NewEmailService(mailer, store.SettingsRepository)

	// Initialize Services
	catalogSvc := service.NewCatalogService(store.CategoryRepository, store.ProductRepository)
	formSvc := service.NewFormService(store.FormRepository, store.ProductRepository, store.SettingsRepository)
	orderSvc := service.NewOrderService(
		store.FormRepository,
		store.ProductRepository,
		store.CategoryRepository,
		store.OrderRepository,
		store.SettingsRepository,
		emailSvc,
		engine,
		cfg.Pricing.Currency,
		cfg.Pricing.InvoiceNumberTemplate,
	)
	settingsSvc := service.NewSettingsService(store.SettingsRepository)
	userSvc := service.NewUserService(store.UserRepository)
	dashboardSvc := service.NewDashboardService(store.StatsRepository)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Set up gRPC ops server
	grpcServer, healthServer := grpcapi.NewServer(tokenManager)
	go grpcapi.NewHealthMonitor(db, healthServer, 15*time.Second).Run(ctx)

	lis, err := net.Listen("tcp", cfg.GetGRPCAddress())
	if err != nil {
		logger.Error("Failed to listen", "error", err, "address", cfg.GetGRPCAddress())
		log.Fatalf("Failed to listen: %v", err)
	}
	go func() {
		logger.Info("gRPC ops server listening", "address", cfg.GetGRPCAddress())
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("Failed to serve gRPC", "error", err)
		}
	}()

	// Initialize upload storage
	logger.Info("Using local file storage", "dir", cfg.Storage.Dir, "base_url", cfg.Storage.BaseURL)
	files, err := storage.NewLocalStorage(cfg.Storage.BaseURL, cfg.Storage.Dir)
	if err != nil {
		logger.Error("Failed to initialize file storage", "error", err)
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	// Set up HTTP API server
	handler := httpapi.NewHandler(catalogSvc, formSvc, orderSvc, settingsSvc, userSvc, dashboardSvc).
		WithFileStorage(files, cfg.Storage.MaxUploadMB<<20)
	httpServer := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           httpapi.NewRouter(handler, httpapi.NewAuthMiddleware(tokenManager)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	logger.Info("Shutting down servers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}
	grpcServer.GracefulStop()
	logger.Info("Servers stopped. Goodbye!")
}
