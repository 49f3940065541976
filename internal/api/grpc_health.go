package api

import (
	"context"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"building-catalog-service/internal/store"
)

// CatalogHealthService is the health-check service name that tracks catalog readiness.
const CatalogHealthService = "catalog.v1.CatalogService"

// NewGRPCServer builds the gRPC server with the health checking protocol and
// reflection registered. The catalog service starts as NOT_SERVING.
func NewGRPCServer(log zerolog.Logger) (*grpc.Server, *health.Server) {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(unaryLogger(log)))

	hs := health.NewServer()
	hs.SetServingStatus(CatalogHealthService, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	grpc_health_v1.RegisterHealthServer(s, hs)
	log.Info().Msg("gRPC health check service registered")

	reflection.Register(s)
	log.Info().Msg("gRPC reflection service registered")

	return s, hs
}

// MarkCatalogLoaded flips the catalog health status to SERVING once a snapshot
// (source or fallback) is installed.
func MarkCatalogLoaded(hs *health.Server, snap *store.Snapshot) {
	if snap == nil {
		return
	}
	hs.SetServingStatus(CatalogHealthService, grpc_health_v1.HealthCheckResponse_SERVING)
}

func unaryLogger(log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		log.Debug().
			Str("method", info.FullMethod).
			Str("code", status.Code(err).String()).
			Msg("grpc request")
		return resp, err
	}
}
