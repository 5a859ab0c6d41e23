package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"piggy-bank/config"
	"piggy-bank/internal/adapter/http/dto"
	"piggy-bank/internal/adapter/http/handler"
	"piggy-bank/internal/adapter/storage/postgres"
	redisstore "piggy-bank/internal/adapter/storage/redis"
	"piggy-bank/internal/service"
	"piggy-bank/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load(os.Getenv("PGB_CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Server.Mode == "debug")
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := postgres.Migrate(cfg.Database.DSN(), cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	redisClient, err := redisstore.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer redisClient.Close()

	if err := dto.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("validator registration failed")
	}

	// Repositories.
	userRepo := postgres.NewUserRepo(pool)
	walletRepo := postgres.NewWalletRepo(pool)
	instRepo := postgres.NewInstrumentRepo(pool)
	vcRepo := postgres.NewValueChangeRepo(pool)
	auditRepo := postgres.NewAuditRepo(pool)
	transactor := postgres.NewTransactor(pool)

	// Services.
	hashSvc := service.NewHashService()
	tokenSvc := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	authSvc := service.NewAuthService(userRepo, hashSvc, tokenSvc)
	auditSvc := service.NewAuditService(auditRepo, log)
	walletSvc := service.NewWalletService(walletRepo, instRepo, log)
	instSvc := service.NewInstrumentService(instRepo, walletRepo, vcRepo, transactor, log)

	router := handler.NewRouter(handler.RouterDeps{
		AuthHandler:       handler.NewAuthHandler(authSvc, auditSvc),
		WalletHandler:     handler.NewWalletHandler(walletSvc, auditSvc),
		InstrumentHandler: handler.NewInstrumentHandler(instSvc, auditSvc),
		HealthHandler: handler.NewHealthHandler(
			postgres.NewHealthChecker(pool),
			redisstore.NewHealthChecker(redisClient),
		),
		TokenService:    tokenSvc,
		RateLimitStore:  redisstore.NewRateLimitStore(redisClient),
		RateLimitMax:    cfg.RateLimit.Requests,
		RateLimitWindow: cfg.RateLimit.Window,
		MaxBodyBytes:    cfg.Server.MaxBodyBytes,
		Logger:          log,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
