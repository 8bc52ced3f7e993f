package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"rentaldesk-backend/internal/api/grpc/interceptor"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/security"
)

// ServiceName is the health-check service name reported next to the
// server-wide "" entry.
const ServiceName = "rentaldesk"

// NewServer builds the ops gRPC server: health checking and reflection
// behind the logging and auth interceptors.
func NewServer(tm security.TokenManager) (*grpc.Server, *health.Server) {
	auth := interceptor.NewAuthInterceptor(tm)
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(interceptor.UnaryLogging(), auth.Unary()),
		grpc.ChainStreamInterceptor(interceptor.StreamLogging(), auth.Stream()),
	)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)
	return srv, hs
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthMonitor reports the database as the readiness of the whole service.
type HealthMonitor struct {
	db       Pinger
	health   *health.Server
	interval time.Duration
	timeout  time.Duration
}

func NewHealthMonitor(db Pinger, hs *health.Server, interval time.Duration) *HealthMonitor {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &HealthMonitor{db: db, health: hs, interval: interval, timeout: 3 * time.Second}
}

// Check pings the database once and updates the serving status.
func (m *HealthMonitor) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	st := healthpb.HealthCheckResponse_SERVING
	if err := m.db.PingContext(ctx); err != nil {
		logger.Warn("Database ping failed", "error", err)
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	m.health.SetServingStatus("", st)
	m.health.SetServingStatus(ServiceName, st)
	return st
}

// Run checks on every tick until ctx is cancelled, then marks the service
// as shutting down.
func (m *HealthMonitor) Run(ctx context.Context) {
	m.Check(ctx)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.health.Shutdown()
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
