// Package app wires the product service together: store, service, HTTP and gRPC servers.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	pb "github.com/abgdnv/product-grpc/api/gen/go/product/v1"
	"github.com/abgdnv/product-grpc/internal/config"
	"github.com/abgdnv/product-grpc/internal/service"
	"github.com/abgdnv/product-grpc/internal/store"
	"github.com/abgdnv/product-grpc/internal/store/migrations"
	grpcImpl "github.com/abgdnv/product-grpc/internal/transport/grpc"
	"github.com/abgdnv/product-grpc/internal/transport/rest"
	"github.com/abgdnv/product-grpc/pkg/bootstrap"
	pkgconfig "github.com/abgdnv/product-grpc/pkg/config"
	"github.com/abgdnv/product-grpc/pkg/server"
	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
}

func SetupDependencies(productStore store.ProductStore, logger *slog.Logger, metricsHandler http.Handler) *Dependencies {
	return &Dependencies{
		ProductService: service.NewService(productStore),
		Logger:         logger,
		MetricsHandler: metricsHandler,
	}
}

// SetupStore opens the backend selected by the database URL scheme and applies migrations when enabled.
// The returned close function releases the backend's connections.
func SetupStore(ctx context.Context, cfg pkgconfig.DatabaseConfig, logger *slog.Logger) (store.ProductStore, func(), error) {
	switch {
	case cfg.IsPostgres():
		if cfg.Migrate {
			if err := migrations.Up(cfg.URL); err != nil {
				return nil, nil, err
			}
			logger.Info("Database migrations applied")
		}
		dbPool, err := bootstrap.NewDbPool(ctx, cfg.URL, cfg.Timeout)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Successfully connected to the database!", "backend", "postgres")
		return store.NewPgStore(dbPool), dbPool.Close, nil

	case cfg.IsSQLite():
		gdb, err := bootstrap.NewGormDB(cfg.URL, logger)
		if err != nil {
			return nil, nil, err
		}
		gormStore := store.NewGormStore(gdb)
		if cfg.Migrate {
			if err := gormStore.Migrate(ctx); err != nil {
				return nil, nil, err
			}
		}
		closeFn := func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		logger.Info("Successfully opened the database!", "backend", "sqlite")
		return gormStore, closeFn, nil

	case cfg.IsMemory():
		logger.Warn("Using in-memory store, data is lost on restart")
		return store.NewInMemoryStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database URL: %s", cfg.URL)
	}
}

// SetupHttpHandler initializes the router with the REST routes, health check and optional metrics endpoint.
// Used by tests to exercise the HTTP API without a listener.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := rest.NewHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)
	if deps.MetricsHandler != nil {
		mux.Handle("/metrics", deps.MetricsHandler)
	}
}

// SetupHttpServer creates and configures an HTTP server for the product service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux, "product-http")
}

// SetupGrpcServer initializes the gRPC server with the product and health services.
// The health server starts in SERVING state.
func SetupGrpcServer(deps *Dependencies, reflectionEnabled bool) (*grpc.Server, *health.Server) {
	healthServer := health.NewServer()

	productRegisterFunc := func(s *grpc.Server) {
		pb.RegisterProductServiceServer(s, grpcImpl.NewServer(deps.ProductService))
	}
	healthRegisterFunc := func(s *grpc.Server) {
		grpc_health_v1.RegisterHealthServer(s, healthServer)
	}
	grpcServer := server.NewGRPCServer(deps.Logger, reflectionEnabled, productRegisterFunc, healthRegisterFunc)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(pb.ProductService_ServiceDesc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	return grpcServer, healthServer
}
