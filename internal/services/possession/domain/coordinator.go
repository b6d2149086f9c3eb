package domain

import "context"

// State names the coordinator's conceptual state.
type State string

const (
	// StateIdleControlled means no decision has been fetched yet and the
	// default decision is active.
	StateIdleControlled State = "idle_controlled"
	// StateDecided means the active decision came from the decision source.
	StateDecided State = "decided"
)

// Coordinator holds the active decision for one possessed character and gates
// actions on it.
//
// A Coordinator is not safe for concurrent use; hosts must confine calls to a
// single game-update goroutine or serialize them.
type Coordinator struct {
	source   DecisionSource
	executor ActionExecutor

	active Decision
	state  State
}

// NewCoordinator returns a coordinator that starts under player control.
//
// The decision source is checked before the action executor, so only the first
// missing argument is reported.
func NewCoordinator(decisionSource DecisionSource, actionExecutor ActionExecutor) (*Coordinator, error) {
	if decisionSource == nil {
		return nil, missingArgument(ParamDecisionSource)
	}
	if actionExecutor == nil {
		return nil, missingArgument(ParamActionExecutor)
	}
	return &Coordinator{
		source:   decisionSource,
		executor: actionExecutor,
		active:   DefaultDecision,
		state:    StateIdleControlled,
	}, nil
}

// RefreshDecision replaces the active decision with the next one from the
// decision source. Source errors are returned unchanged and leave the active
// decision as it was.
func (c *Coordinator) RefreshDecision(ctx context.Context) error {
	next, err := c.source.NextDecision(ctx)
	if err != nil {
		return err
	}
	if next == nil {
		return ErrDecisionMissing
	}
	c.active = next
	c.state = StateDecided
	return nil
}

// PerformAction forwards the action to the executor when the active decision
// grants the player control.
func (c *Coordinator) PerformAction(ctx context.Context) error {
	_, err := c.Dispatch(ctx, c.executor)
	return err
}

// Dispatch applies the same control gate as PerformAction to an arbitrary
// action and reports whether it ran. The control flag is read exactly once and
// strictly before the action.
func (c *Coordinator) Dispatch(ctx context.Context, actionExecutor ActionExecutor) (bool, error) {
	if actionExecutor == nil {
		return false, missingArgument(ParamActionExecutor)
	}
	allowed, err := c.active.HasPlayerControl()
	if err != nil {
		return false, err
	}
	if !allowed {
		return false, nil
	}
	if err := actionExecutor.Execute(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// State reports whether a decision has been fetched yet. It never evaluates the
// active decision.
func (c *Coordinator) State() State {
	return c.state
}
