// Package possession parses possession command flags and launches the runtime.
package possession

import (
	"context"
	"flag"
	"time"

	entrypoint "github.com/louisbranch/possession/internal/platform/cmd"
	"github.com/louisbranch/possession/internal/services/possession/ai"
	possessionserver "github.com/louisbranch/possession/internal/services/possession/app"
)

// Config holds possession command configuration. Environment variables carry
// the POSSESSION_ prefix.
type Config struct {
	Port         int           `env:"PORT" envDefault:"8095"`
	DBPath       string        `env:"DB_PATH" envDefault:"data/possession.db"`
	CharacterID  string        `env:"CHARACTER_ID" envDefault:"mario"`
	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"250ms"`
	MaxTicks     int64         `env:"MAX_TICKS" envDefault:"0"`
	JumpImpulse  float64       `env:"JUMP_IMPULSE" envDefault:"5"`
	SourceKind   string        `env:"SOURCE_KIND" envDefault:"scripted"`
	Pattern      string        `env:"PATTERN" envDefault:"PA"`
	PlayerShare  float64       `env:"PLAYER_SHARE" envDefault:"0.5"`
	Seed         int64         `env:"SEED" envDefault:"0"`
	ScriptPath   string        `env:"SCRIPT_PATH"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The possession gRPC server port")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "The tick journal SQLite database path")
	fs.StringVar(&cfg.CharacterID, "character", cfg.CharacterID, "The possessed character id")
	fs.DurationVar(&cfg.TickInterval, "tick-interval", cfg.TickInterval, "Game loop tick interval")
	fs.Int64Var(&cfg.MaxTicks, "max-ticks", cfg.MaxTicks, "Stop after this many ticks (0 runs until interrupted)")
	fs.Float64Var(&cfg.JumpImpulse, "jump-impulse", cfg.JumpImpulse, "Vertical velocity added per jump")
	fs.StringVar(&cfg.SourceKind, "source", cfg.SourceKind, "Decision source: scripted, random or lua")
	fs.StringVar(&cfg.Pattern, "pattern", cfg.Pattern, "Scripted source P/A pattern")
	fs.Float64Var(&cfg.PlayerShare, "player-share", cfg.PlayerShare, "Random source probability of player control")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random source seed (0 picks one)")
	fs.StringVar(&cfg.ScriptPath, "script", cfg.ScriptPath, "Lua decision script path")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RuntimeConfig maps command configuration onto the runtime.
func (c Config) RuntimeConfig() possessionserver.RuntimeConfig {
	return possessionserver.RuntimeConfig{
		Port:         c.Port,
		DBPath:       c.DBPath,
		CharacterID:  c.CharacterID,
		TickInterval: c.TickInterval,
		MaxTicks:     c.MaxTicks,
		JumpImpulse:  c.JumpImpulse,
		Source: ai.Config{
			Kind:        ai.Kind(c.SourceKind),
			Pattern:     c.Pattern,
			PlayerShare: c.PlayerShare,
			Seed:        c.Seed,
			ScriptPath:  c.ScriptPath,
		},
	}
}

// Run starts the possession runtime.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePossession, func(ctx context.Context) error {
		return possessionserver.Run(ctx, cfg.RuntimeConfig())
	})
}
