package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	apiHttp "github.com/cadastro-livre/backend/internal/api/http"
	"github.com/cadastro-livre/backend/internal/cache"
	"github.com/cadastro-livre/backend/internal/config"
	"github.com/cadastro-livre/backend/internal/db"
	"github.com/cadastro-livre/backend/internal/queue/asynqserver"
	queueClient "github.com/cadastro-livre/backend/internal/queue/client"
	"github.com/cadastro-livre/backend/internal/repository"
	"github.com/cadastro-livre/backend/internal/server"
	"github.com/cadastro-livre/backend/internal/service"
	"github.com/cadastro-livre/backend/internal/worker"
	"github.com/cadastro-livre/backend/pkg/email/smtp"
	"github.com/cadastro-livre/backend/pkg/hash"
	"github.com/cadastro-livre/backend/pkg/logger"
)

func main() {
	// .env is optional; real deployments configure the environment.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading config from the environment")
	}

	cfg := config.MustLoad()

	appLogger := logger.SetupLogger(cfg.Env, cfg.LogLevel)
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("starting cadastro api", zap.String("env", cfg.Env))

	dbConn, err := db.New(cfg.Database)
	if err != nil {
		appLogger.Error("postgres connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			appLogger.Error("error when closing db", zap.Error(err))
		}
	}()
	appLogger.Info("postgres connection done")

	// Fail fast on a broken redis config before the queue starts.
	redisClient, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		appLogger.Error("redis connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			appLogger.Error("error when closing redis", zap.Error(err))
		}
	}()
	appLogger.Info("redis connection done")

	hasher := hash.NewBcryptHasher(cfg.Auth.BcryptCost)

	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		appLogger.Error("smtp sender creation failed", zap.Error(err))
		return
	}

	// Queue client used to enqueue confirmation emails.
	redisOpts := asynqserver.RedisOptions(cfg.Cache)
	asynqClient := asynq.NewClient(redisOpts)
	defer func() {
		if err := asynqClient.Close(); err != nil {
			appLogger.Error("error when closing queue client", zap.Error(err))
		}
	}()
	queueClient.SetClient(asynqClient)

	repos := repository.NewRepositories(dbConn)
	services := service.NewServices(service.Deps{
		Logger: appLogger,
		Config: cfg,
		Hasher: hasher,
		Repos:  repos,
	})
	handlers := apiHttp.NewHandlers(services, cfg)

	// Queue worker delivering confirmation emails.
	workers := worker.NewWorkers(worker.Deps{
		EmailProvider: emailSender,
		Config:        cfg,
	})
	asynqSrv, asynqMux := asynqserver.New(cfg.Cache, workers)
	go func() {
		if err := asynqSrv.Run(asynqMux); err != nil {
			appLogger.Error("error occurred while running queue server", zap.Error(err))
		}
	}()

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	appLogger.Info("server started")

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	asynqSrv.Shutdown()

	if err := srv.Stop(ctx); err != nil {
		appLogger.Error("failed to stop server", zap.Error(err))
	}

	appLogger.Info("app stopped")
}
