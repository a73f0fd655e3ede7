package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "leaseo-backend/internal/api/http"
	"leaseo-backend/internal/config"
	"leaseo-backend/internal/database"
	"leaseo-backend/internal/logger"
	"leaseo-backend/internal/repository/postgres"
	"leaseo-backend/internal/security"
	"leaseo-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	migrationsDir := flag.String("migrations", "migrations", "Path to database migrations")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Leaseo Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Apply pending migrations
	if err := database.Migrate(*migrationsDir, cfg.GetDatabaseConnectionString()); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL(), cfg.JWT.RefreshTokenTTL())

	// Initialize Services
	emailService := newEmailService(cfg)
	authService := service.NewAuthService(store.Users, emailService, tokenManager)
	orderService := service.NewOrderService(store.Repos, store, emailService)
	fulfillmentService := service.NewFulfillmentService(store.Repos, store, emailService, cfg.Fees.MaxFeeCents, cfg.Rental.PeriodDays)
	invoiceService := service.NewInvoiceService(store.Repos, store, emailService)
	notificationService := service.NewNotificationService(store.Notifications)

	// Initialize HTTP API
	router := httpapi.NewRouter(httpapi.RouterConfig{
		TokenManager:        tokenManager,
		AuthService:         authService,
		OrderService:        orderService,
		FulfillmentService:  fulfillmentService,
		InvoiceService:      invoiceService,
		NotificationService: notificationService,
		RequestTimeout:      time.Duration(cfg.Server.RequestTimeoutSeconds) * time.Second,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: time.Duration(cfg.Server.RequestTimeoutSeconds+5) * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("HTTP server stopped: %v", err)
	}
}

// newEmailService selects the outbound mail provider from config.
func newEmailService(cfg *config.Config) service.EmailService {
	if cfg.Email.Provider == "sendgrid" {
		logger.Info("Using SendGrid email provider")
		return service.NewSendgridEmailService(cfg.Email.SendGridKey, cfg.SMTP.From, cfg.Email.FromName)
	}
	logger.Info("Using SMTP email provider", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)
	return service.NewEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
}
