package main

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// healthServer exposes the standard gRPC health service while the dispatcher runs.
type healthServer struct {
	log      *slog.Logger
	server   *grpc.Server
	health   *health.Server
	listener net.Listener
}

func startHealthServer(log *slog.Logger, address string) (*healthServer, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	s := grpc.NewServer()
	h := health.NewServer()
	healthpb.RegisterHealthServer(s, h)
	h.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	go func() {
		log.Info("Starting health server", "address", listener.Addr().String())
		if err := s.Serve(listener); err != nil && !stderrors.Is(err, grpc.ErrServerStopped) {
			log.Error("Health server stopped", "error", err)
		}
	}()
	return &healthServer{log: log, server: s, health: h, listener: listener}, nil
}

func (h *healthServer) addr() string {
	return h.listener.Addr().String()
}

// stop reports NOT_SERVING to watchers before closing the listener.
func (h *healthServer) stop() {
	h.health.Shutdown()
	h.server.GracefulStop()
	h.log.Debug("Health server stopped")
}
