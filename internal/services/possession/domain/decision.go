package domain

import "context"

// Decision reports whether the player currently holds control of the character.
//
// Implementations are immutable; a new decision replaces the old one. Evaluation
// may fail (for example when the flag is computed lazily) and that error must
// reach the caller.
type Decision interface {
	HasPlayerControl() (bool, error)
}

// IdleDecision is the decision in force before any AI input exists. It always
// grants control to the player.
type IdleDecision struct{}

// HasPlayerControl implements Decision.
func (IdleDecision) HasPlayerControl() (bool, error) { return true, nil }

// DefaultDecision is the initial active decision of every coordinator.
var DefaultDecision Decision = IdleDecision{}

// StaticDecision is a precomputed decision.
type StaticDecision struct {
	PlayerControl bool
}

// HasPlayerControl implements Decision.
func (d StaticDecision) HasPlayerControl() (bool, error) { return d.PlayerControl, nil }

// DecisionFunc adapts a lazily evaluated control query to Decision.
type DecisionFunc func() (bool, error)

// HasPlayerControl implements Decision.
func (fn DecisionFunc) HasPlayerControl() (bool, error) { return fn() }

// DecisionSource produces the next decision on demand.
type DecisionSource interface {
	NextDecision(ctx context.Context) (Decision, error)
}

// DecisionSourceFunc adapts a function to DecisionSource.
type DecisionSourceFunc func(ctx context.Context) (Decision, error)

// NextDecision implements DecisionSource.
func (fn DecisionSourceFunc) NextDecision(ctx context.Context) (Decision, error) { return fn(ctx) }

// ActionExecutor performs the physical effect of an allowed action.
type ActionExecutor interface {
	Execute(ctx context.Context) error
}

// ActionExecutorFunc adapts a function to ActionExecutor.
type ActionExecutorFunc func(ctx context.Context) error

// Execute implements ActionExecutor.
func (fn ActionExecutorFunc) Execute(ctx context.Context) error { return fn(ctx) }
