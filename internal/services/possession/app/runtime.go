package app

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/possession/internal/platform/discovery"
	platformgrpc "github.com/louisbranch/possession/internal/platform/grpc"
	"github.com/louisbranch/possession/internal/services/possession/ai"
	possessiongrpc "github.com/louisbranch/possession/internal/services/possession/api/grpc/possession"
	"github.com/louisbranch/possession/internal/services/possession/body"
	"github.com/louisbranch/possession/internal/services/possession/observability"
	possessionsqlite "github.com/louisbranch/possession/internal/services/possession/storage/sqlite"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
)

// HealthService is the named health entry reported while the runtime serves.
const HealthService = "possession.runtime"

// RuntimeConfig controls runtime startup, dependencies, and loop behavior.
type RuntimeConfig struct {
	Port         int
	DBPath       string
	CharacterID  string
	TickInterval time.Duration
	MaxTicks     int64
	JumpImpulse  float64
	Source       ai.Config
}

const defaultPossessionDB = "data/possession.db"

// Run starts the possession runtime and blocks in the game loop.
func Run(ctx context.Context, cfg RuntimeConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Port <= 0 {
		cfg.Port = discovery.DefaultGRPCPort(discovery.ServicePossession)
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = defaultPossessionDB
	}
	loopConfig := Config{
		CharacterID:  cfg.CharacterID,
		TickInterval: cfg.TickInterval,
		MaxTicks:     cfg.MaxTicks,
	}.normalized()

	source, err := ai.NewSource(cfg.Source)
	if err != nil {
		return fmt.Errorf("build decision source: %w", err)
	}
	bodyOpts := []body.Option{body.WithLogger(log.Printf)}
	if cfg.JumpImpulse > 0 {
		bodyOpts = append(bodyOpts, body.WithImpulse(cfg.JumpImpulse))
	}
	controller := body.NewController(loopConfig.CharacterID, bodyOpts...)

	host, err := NewHost(
		observability.TraceSource(source, observability.WithCharacterID(loopConfig.CharacterID)),
		observability.TraceExecutor(controller, observability.WithCharacterID(loopConfig.CharacterID)),
	)
	if err != nil {
		return fmt.Errorf("build coordinator: %w", err)
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create possession storage dir: %w", err)
		}
	}
	store, err := possessionsqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open possession sqlite store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Printf("close possession sqlite store: %v", closeErr)
		}
	}()

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on possession port %d: %w", cfg.Port, err)
	}
	defer listener.Close()

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(possessiongrpc.LocaleUnaryInterceptor()),
	)
	healthServer := platformgrpc.RegisterHealth(grpcServer, HealthService, possessiongrpc.ServiceName)
	possessiongrpc.RegisterPossessionServiceServer(grpcServer, possessiongrpc.NewService(
		host,
		possessiongrpc.WithTickJournal(store, loopConfig.CharacterID),
	))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- grpcServer.Serve(listener)
	}()
	defer func() {
		healthServer.Shutdown()
		grpcServer.GracefulStop()
		<-serveErr
	}()

	log.Printf("possession server listening at %v", listener.Addr())
	err = NewLoop(host, store, loopConfig).Run(ctx)
	log.Printf("%s stopped after %d jumps (vertical velocity %.2f)", loopConfig.CharacterID, controller.Jumps(), controller.Velocity())
	return err
}
