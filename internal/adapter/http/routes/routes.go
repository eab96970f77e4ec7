package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "orcafacil/docs" // swagger spec registration
	"orcafacil/internal/adapter/http/handlers"
	"orcafacil/internal/adapter/http/middleware"
	"orcafacil/internal/adapter/persistence/repository"
	"orcafacil/internal/config"
	"orcafacil/internal/infrastructure/database"
	"orcafacil/internal/infrastructure/document"
	"orcafacil/internal/infrastructure/payments"
	"orcafacil/internal/usecase"
	"orcafacil/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Repositories is the storage a router is wired to.
type Repositories struct {
	Proposals  interfaces.IProposalRepository
	Signatures interfaces.ISignatureRepository
	Payments   interfaces.IPaymentRepository
}

// Run builds the storage for cfg.Storage.Driver and serves until ctx is
// cancelled or the listener fails.
func Run(ctx context.Context, cfg *config.Config) error {
	repos, err := NewRepositories(ctx, cfg)
	if err != nil {
		return err
	}

	var gateway interfaces.IPaymentGateway
	if !cfg.Payments.MockMode {
		mpGateway, err := payments.NewMercadoPagoGateway(cfg.Payments.AccessToken)
		if err != nil {
			zap.L().Warn("[routes] mercado pago gateway not configured", zap.Error(err))
		} else {
			gateway = mpGateway
		}
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           NewRouter(cfg, repos, gateway),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		zap.L().Info("[routes] shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("[routes] shutdown failed", zap.Error(err))
		}
	}()

	zap.L().Info("[routes] listening", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage.Driver))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to startup the application: %w", err)
	}
	return nil
}

// NewRepositories connects to the configured store.
func NewRepositories(ctx context.Context, cfg *config.Config) (Repositories, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := repository.NewMemoryStore()
		return Repositories{Proposals: store.Proposals(), Signatures: store.Signatures(), Payments: store.Payments()}, nil

	case config.StoragePostgres:
		db, err := database.ConnectPostgres(cfg.Database)
		if err != nil {
			return Repositories{}, err
		}
		if cfg.Database.AutoMigrate {
			if err := repository.AutoMigrate(db); err != nil {
				return Repositories{}, fmt.Errorf("auto migrate: %w", err)
			}
		}
		return Repositories{
			Proposals:  repository.NewProposalPostgresRepository(db),
			Signatures: repository.NewSignaturePostgresRepository(db),
			Payments:   repository.NewPaymentPostgresRepository(db),
		}, nil

	default:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return Repositories{}, err
		}
		return Repositories{
			Proposals:  repository.NewProposalDynamoRepository(ddb, cfg.DynamoDB.ProposalsTable, cfg.DynamoDB.SignaturesTable),
			Signatures: repository.NewSignatureDynamoRepository(ddb, cfg.DynamoDB.SignaturesTable),
			Payments:   repository.NewPaymentDynamoRepository(ddb, cfg.DynamoDB.PaymentsTable),
		}, nil
	}
}

// NewRouter wires use cases and handlers onto a gin engine. gateway may be
// nil; payments then fail unless mock mode is on.
func NewRouter(cfg *config.Config, repos Repositories, gateway interfaces.IPaymentGateway) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	proposalUseCase := usecase.NewProposalUseCase(repos.Proposals)
	signatureUseCase := usecase.NewSignatureUseCase(repos.Signatures, repos.Proposals)
	documentUseCase := usecase.NewDocumentUseCase(repos.Proposals, repos.Signatures,
		document.NewRenderer(document.WithCompression(cfg.Render.Compress)))
	paymentUseCase := usecase.NewPaymentUseCase(repos.Payments, repos.Proposals, gateway, usecase.PaymentSettings{
		MockMode:        cfg.Payments.MockMode,
		AccessToken:     cfg.Payments.AccessToken,
		TestPayerEmail:  cfg.Payments.TestPayerEmail,
		TestPayerUserID: cfg.Payments.TestPayerUserID,
	})

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addProposalRoutes(v1,
		handlers.NewProposalHandler(proposalUseCase),
		handlers.NewDocumentHandler(documentUseCase),
	)
	addSignatureRoutes(v1, handlers.NewSignatureHandler(proposalUseCase, signatureUseCase))
	addPaymentRoutes(v1, handlers.NewPaymentHandler(paymentUseCase, cfg.Payments.MockMode))

	return router
}

func setMiddlewares(router *gin.Engine) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(zap.L()))
	router.Use(middleware.Recovery(zap.L()))
	router.Use(middleware.CORS())
}
