package ai

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/possession/internal/platform/errors"
	"github.com/louisbranch/possession/internal/services/possession/domain"
)

// Kind names a decision source implementation.
type Kind string

const (
	// KindScripted cycles a fixed P/A pattern.
	KindScripted Kind = "scripted"
	// KindRandom grants player control with a fixed probability.
	KindRandom Kind = "random"
	// KindLua asks a Lua script's next_decision function.
	KindLua Kind = "lua"
)

// Config selects and configures a decision source.
type Config struct {
	Kind        Kind
	Pattern     string
	PlayerShare float64
	Seed        int64
	ScriptPath  string
}

// NewSource builds the decision source named by cfg.Kind.
func NewSource(cfg Config) (domain.DecisionSource, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(string(cfg.Kind)))) {
	case KindScripted:
		source, err := NewScriptedSource(cfg.Pattern)
		if err != nil {
			return nil, fmt.Errorf("scripted source: %w", err)
		}
		return source, nil
	case KindRandom:
		source, err := NewRandomSource(cfg.PlayerShare, cfg.Seed)
		if err != nil {
			return nil, fmt.Errorf("random source: %w", err)
		}
		return source, nil
	case KindLua:
		source, err := NewLuaSourceFromFile(cfg.ScriptPath)
		if err != nil {
			return nil, fmt.Errorf("lua source: %w", err)
		}
		return source, nil
	default:
		return nil, apperrors.WithMetadata(
			apperrors.CodeDecisionSourceKind,
			fmt.Sprintf("unknown decision source kind %q", cfg.Kind),
			map[string]string{"Kind": string(cfg.Kind)},
		)
	}
}
