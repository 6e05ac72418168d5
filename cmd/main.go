package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	productapp "github.com/muhammadheryan/store/application/product"
	userapp "github.com/muhammadheryan/store/application/user"
	"github.com/muhammadheryan/store/cmd/config"
	redisclient "github.com/muhammadheryan/store/cmd/redis"
	_ "github.com/muhammadheryan/store/docs"
	productRepo "github.com/muhammadheryan/store/repository/product"
	redisRepo "github.com/muhammadheryan/store/repository/redis"
	userRepo "github.com/muhammadheryan/store/repository/user"
	"github.com/muhammadheryan/store/thirdparty/rabbitmq"
	"github.com/muhammadheryan/store/transport"
	"github.com/muhammadheryan/store/utils/logger"
	validatorx "github.com/muhammadheryan/store/utils/validator"
	"go.uber.org/zap"
)

// @title STORE API
// @version 1.0
// @description Product inventory API: listing, lookup, purchase and administration.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.basic BasicAuth
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))
	validatorx.Init()

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}
	defer db.Close()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize Redis client, nil when caching is disabled
	redisClient, err := redisclient.New(cfg)
	if err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
		logger.Info("product cache enabled", zap.Duration("ttl", cfg.Redis.ProductTTL))
	}

	var publisher rabbitmq.ProductEventPublisher
	if cfg.RabbitMQ.Enabled {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.Exchange)
		if err != nil {
			logger.Fatal("err connect rabbitmq", zap.Error(err))
		}
		defer p.Close()
		publisher = p
		logger.Info("product events enabled", zap.String("exchange", cfg.RabbitMQ.Exchange))
	}

	// Initialize repositories
	ProductRepo := productRepo.NewProductRepository(db, cfg.LogPreviewLimit)
	UserRepo := userRepo.NewUserRepository(db)
	RedisRepo := redisRepo.NewRepository(redisClient, cfg.Redis.ProductTTL)

	// Initialize application layers
	ProductApp := productapp.NewProductApp(ProductRepo, RedisRepo, publisher)
	UserApp := userapp.NewUserApp(UserRepo)

	httpTransport := transport.NewTransport(ProductApp, UserApp, cfg.Auth.Realm)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("err server shutdown", zap.Error(err))
	}
}
