package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	auditapp "github.com/goldshop/backend/internal/application/audit"
	ledgerapp "github.com/goldshop/backend/internal/application/ledger"
	partnerapp "github.com/goldshop/backend/internal/application/partner"
	reportapp "github.com/goldshop/backend/internal/application/report"
	tradeapp "github.com/goldshop/backend/internal/application/trade"
	"github.com/goldshop/backend/internal/infrastructure/auth"
	"github.com/goldshop/backend/internal/infrastructure/config"
	"github.com/goldshop/backend/internal/infrastructure/logger"
	"github.com/goldshop/backend/internal/infrastructure/persistence"
	"github.com/goldshop/backend/internal/interfaces/http/dto"
	"github.com/goldshop/backend/internal/interfaces/http/handler"
	"github.com/goldshop/backend/internal/interfaces/http/middleware"
	"github.com/goldshop/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting goldshop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	categoryRepo := persistence.NewGormInventoryCategoryRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	goldRepo := persistence.NewGormGoldLedgerRepository(db.DB)
	partyRepo := persistence.NewGormPartyRepository(db.DB)
	auditRepo := persistence.NewGormAuditLogRepository(db.DB)

	// Transactional scope shared by all finalization paths
	scope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	invoiceService := tradeapp.NewInvoiceService(scope, partyRepo, log)
	purchaseService := tradeapp.NewPurchaseService(scope, partyRepo, log)
	finalizeService := tradeapp.NewFinalizeService(scope, log, cfg.Valuation.Purity)
	paymentService := tradeapp.NewPaymentService(scope, log)
	outstandingService := reportapp.NewOutstandingService(invoiceRepo, purchaseRepo, goldRepo, partyRepo, log)
	ledgerService := ledgerapp.NewLedgerService(movementRepo, categoryRepo, transactionRepo, accountRepo, goldRepo, log)
	partyService := partnerapp.NewPartyService(partyRepo, log)
	auditService := auditapp.NewAuditService(auditRepo)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenExpiration)

	// HTTP engine and middleware
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := dto.RegisterValidators(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Recovery(log),
		middleware.Identity(middleware.IdentityConfig{
			JWTService: jwtService,
			SkipPaths: []string{
				"/api/v1/health",
				"/api/v1/ready",
			},
		}),
	)

	// Routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewInvoiceHandler(invoiceService, finalizeService, paymentService)).
		Register(handler.NewPurchaseHandler(purchaseService, finalizeService, paymentService)).
		Register(handler.NewReportHandler(outstandingService)).
		Register(handler.NewLedgerHandler(ledgerService)).
		Register(handler.NewPartyHandler(partyService)).
		Register(handler.NewAuditHandler(auditService)).
		Register(handler.NewSystemHandler(db.DB))
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
