package server

import (
	"github.com/fekuna/omnipos-catalog-service/internal/middleware"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is reported by the gRPC health service.
const ServiceName = "omnipos.catalog.v1.CatalogService"

// NewGRPCServer builds the gRPC server that exposes health and reflection.
// The returned health server starts in SERVING for ServiceName.
func NewGRPCServer(log logger.ZapLogger) (*grpc.Server, *health.Server) {
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(middleware.UnaryInterceptor(log)),
	)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	reflection.Register(grpcServer)
	return grpcServer, healthServer
}
