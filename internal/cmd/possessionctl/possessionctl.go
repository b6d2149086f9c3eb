// Package possessionctl implements the possession service command-line client.
package possessionctl

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/possession/internal/platform/cmd"
	"github.com/louisbranch/possession/internal/platform/discovery"
	platformgrpc "github.com/louisbranch/possession/internal/platform/grpc"
	"github.com/louisbranch/possession/internal/platform/timeouts"
	possessiongrpc "github.com/louisbranch/possession/internal/services/possession/api/grpc/possession"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// Commands accepted as the first positional argument.
const (
	CommandRefresh = "refresh"
	CommandPerform = "perform"
	CommandState   = "state"
	CommandTicks   = "ticks"
)

var commands = []string{CommandRefresh, CommandPerform, CommandState, CommandTicks}

// Config holds possessionctl configuration.
type Config struct {
	Addr           string        `env:"ADDR"`
	Locale         string        `env:"LOCALE" envDefault:"en-US"`
	DialTimeout    time.Duration `env:"DIAL_TIMEOUT" envDefault:"2s"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"2s"`
	TickLimit      int           `env:"TICK_LIMIT" envDefault:"20"`
	Command        string
}

// ParseConfig parses environment, flags and the command argument.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Addr = discovery.OrDefaultGRPCAddr(cfg.Addr, discovery.ServicePossession)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The possession gRPC server address")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Locale for error messages")
	fs.DurationVar(&cfg.DialTimeout, "dial-timeout", cfg.DialTimeout, "gRPC dial timeout")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "gRPC request timeout")
	fs.IntVar(&cfg.TickLimit, "limit", cfg.TickLimit, "Number of journal entries listed by ticks")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if fs.NArg() != 1 {
		return Config{}, fmt.Errorf("expected one command: %s", strings.Join(commands, ", "))
	}
	cfg.Command = strings.ToLower(strings.TrimSpace(fs.Arg(0)))
	switch cfg.Command {
	case CommandRefresh, CommandPerform, CommandState, CommandTicks:
	default:
		return Config{}, fmt.Errorf("unknown command %q", cfg.Command)
	}
	return cfg, nil
}

// Run dials the service and executes the configured command with client
// telemetry enabled.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePossessionCtl, func(ctx context.Context) error {
		return dialAndExecute(ctx, cfg, out)
	})
}

func dialAndExecute(ctx context.Context, cfg Config, out io.Writer) error {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = timeouts.GRPCDial
	}
	conn, err := platformgrpc.DialWithHealth(
		ctx,
		nil,
		cfg.Addr,
		possessiongrpc.ServiceName,
		cfg.DialTimeout,
		log.Printf,
		platformgrpc.DefaultClientDialOptions()...,
	)
	if err != nil {
		return fmt.Errorf("dial possession service: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			log.Printf("close possession connection: %v", closeErr)
		}
	}()
	return Execute(ctx, conn, cfg, out)
}

// Execute runs the configured command over an established connection.
func Execute(ctx context.Context, conn grpc.ClientConnInterface, cfg Config, out io.Writer) error {
	client, err := possessiongrpc.NewClient(conn)
	if err != nil {
		return err
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = timeouts.GRPCRequest
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()
	if locale := strings.TrimSpace(cfg.Locale); locale != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, possessiongrpc.LocaleHeader, locale)
	}

	switch cfg.Command {
	case CommandRefresh:
		if err := client.RefreshDecision(ctx); err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, "decision refreshed")
	case CommandPerform:
		dispatched, err := client.PerformAction(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "dispatched=%t\n", dispatched)
		return err
	case CommandState:
		state, err := client.GetState(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, state)
		return err
	case CommandTicks:
		ticks, err := client.ListTicks(ctx, int32(cfg.TickLimit))
		if err != nil {
			return err
		}
		for _, tick := range ticks {
			line := fmt.Sprintf("tick=%d state=%s dispatched=%t", tick.Tick, tick.CoordinatorState, tick.Dispatched)
			if tick.Error != "" {
				line += fmt.Sprintf(" error=%q", tick.Error)
			}
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q", cfg.Command)
	}
	return err
}
