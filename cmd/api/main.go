package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"orcafacil/internal/adapter/http/routes"
	"orcafacil/internal/config"
	"orcafacil/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           OrçaFacil API
// @version         1.0
// @description     Proposals, signatures, PDF documents and payments.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	zap.ReplaceGlobals(zapLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zapLogger.Info("Starting orcafacil api",
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("payment_mock", cfg.Payments.MockMode),
	)
	if err := routes.Run(ctx, cfg); err != nil {
		zapLogger.Fatal("Failed to startup the application", zap.Error(err))
	}
}
