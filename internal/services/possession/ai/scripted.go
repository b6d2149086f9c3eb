package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/possession/internal/services/possession/domain"
)

const (
	patternPlayer = 'P'
	patternAI     = 'A'
)

// ScriptedSource cycles through a fixed control pattern. "P" grants the player
// control for one decision and "A" keeps it with the AI.
type ScriptedSource struct {
	steps []bool
	next  int
}

// NewScriptedSource parses pattern, ignoring whitespace and case.
func NewScriptedSource(pattern string) (*ScriptedSource, error) {
	var steps []bool
	for _, r := range strings.ToUpper(pattern) {
		switch r {
		case patternPlayer:
			steps = append(steps, true)
		case patternAI:
			steps = append(steps, false)
		case ' ', '\t', '\n', ',':
		default:
			return nil, fmt.Errorf("pattern step %q must be P or A", r)
		}
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("pattern is required")
	}
	return &ScriptedSource{steps: steps}, nil
}

// NextDecision implements domain.DecisionSource.
func (s *ScriptedSource) NextDecision(ctx context.Context) (domain.Decision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	control := s.steps[s.next]
	s.next = (s.next + 1) % len(s.steps)
	return domain.StaticDecision{PlayerControl: control}, nil
}
