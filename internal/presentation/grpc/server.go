package grpc

import (
	"fmt"
	"log/slog"
	"net"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/phishguard/phishguard/pkg/auth"
)

// Server wraps the gRPC server with phishguard service handlers.
type Server struct {
	address    string
	grpcServer *grpc.Server
	handler    *PhishGuardServiceHandler
	logger     *slog.Logger
}

// NewServer creates a new gRPC server. jwtService may be nil, in which
// case the scoring API is served unauthenticated.
func NewServer(handler *PhishGuardServiceHandler, address string, logger *slog.Logger, jwtService *auth.JWTService) *Server {
	var serverOpts []grpc.ServerOption
	if jwtService != nil {
		// Health check methods stay reachable without a token.
		authInterceptor := auth.UnaryAuthInterceptor(jwtService, []string{
			"/grpc.health.v1.Health/Check",
			"/grpc.health.v1.Health/Watch",
		})
		serverOpts = append(serverOpts, grpc.UnaryInterceptor(authInterceptor))
	} else {
		logger.Info("gRPC auth not configured, serving unauthenticated")
	}

	grpcServer := grpc.NewServer(serverOpts...)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("phishguard", healthpb.HealthCheckResponse_SERVING)

	RegisterPhishGuardServiceServer(grpcServer, handler)

	// Only enable reflection when GRPC_REFLECTION=true.
	if os.Getenv("GRPC_REFLECTION") == "true" {
		reflection.Register(grpcServer)
	}

	return &Server{
		grpcServer: grpcServer,
		handler:    handler,
		logger:     logger,
		address:    address,
	}
}

// Start begins listening and serving gRPC requests.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.address, err)
	}

	s.logger.Info("gRPC server starting",
		slog.String("address", s.address),
	)

	return s.grpcServer.Serve(listener)
}

// Stop gracefully stops the gRPC server.
func (s *Server) Stop() {
	s.logger.Info("gRPC server shutting down")
	s.grpcServer.GracefulStop()
}
