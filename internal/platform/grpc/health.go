package grpc

import (
	"context"
	"fmt"
	"time"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// RegisterHealth attaches a health server to srv and marks the whole server
// and each named service as SERVING.
func RegisterHealth(srv *gogrpc.Server, services ...string) *health.Server {
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	for _, service := range services {
		healthServer.SetServingStatus(service, grpc_health_v1.HealthCheckResponse_SERVING)
	}
	return healthServer
}

const (
	healthProbeTimeout   = time.Second
	healthInitialBackoff = 200 * time.Millisecond
	healthMaxBackoff     = time.Second
)

// WaitForHealth blocks until the named health service reports SERVING or the
// context ends. An empty service name probes the whole server.
func WaitForHealth(ctx context.Context, conn *gogrpc.ClientConn, service string, logf func(string, ...any)) error {
	if conn == nil {
		return fmt.Errorf("gRPC connection is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	label := service
	if label == "" {
		label = "server"
	}

	healthClient := grpc_health_v1.NewHealthClient(conn)
	backoff := healthInitialBackoff
	for {
		status, err := probeHealth(ctx, healthClient, service)
		if err == nil && status == grpc_health_v1.HealthCheckResponse_SERVING {
			logf("gRPC health for %s is SERVING", label)
			return nil
		}
		if err != nil {
			logf("waiting for gRPC health of %s: %v", label, err)
		} else {
			logf("waiting for gRPC health of %s: status %s", label, status)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for gRPC health of %s: %w", label, ctx.Err())
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, healthMaxBackoff)
	}
}

func probeHealth(ctx context.Context, client grpc_health_v1.HealthClient, service string) (grpc_health_v1.HealthCheckResponse_ServingStatus, error) {
	callCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()
	response, err := client.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: service})
	if err != nil {
		return grpc_health_v1.HealthCheckResponse_UNKNOWN, err
	}
	return response.GetStatus(), nil
}
