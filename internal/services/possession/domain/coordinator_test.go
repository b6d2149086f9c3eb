package domain

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeSource struct {
	decisions []Decision
	err       error
	calls     int
}

func (s *fakeSource) NextDecision(context.Context) (Decision, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if len(s.decisions) == 0 {
		return nil, nil
	}
	next := s.decisions[0]
	if len(s.decisions) > 1 {
		s.decisions = s.decisions[1:]
	}
	return next, nil
}

type fakeExecutor struct {
	err   error
	calls int
}

func (e *fakeExecutor) Execute(context.Context) error {
	e.calls++
	return e.err
}

type countingDecision struct {
	control bool
	err     error
	reads   int
}

func (d *countingDecision) HasPlayerControl() (bool, error) {
	d.reads++
	return d.control, d.err
}

func newTestCoordinator(t *testing.T, source *fakeSource, executor *fakeExecutor) *Coordinator {
	t.Helper()
	coordinator, err := NewCoordinator(source, executor)
	if err != nil {
		t.Fatalf("new coordinator: %v", err)
	}
	return coordinator
}

func TestNewCoordinatorRejectsMissingDecisionSource(t *testing.T) {
	coordinator, err := NewCoordinator(nil, nil)
	if err == nil {
		t.Fatal("expected error for missing decision source")
	}
	if coordinator != nil {
		t.Fatalf("coordinator = %v, want nil", coordinator)
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("error = %v, want invalid argument", err)
	}
	if got := MissingParam(err); got != ParamDecisionSource {
		t.Fatalf("missing param = %q, want %q", got, ParamDecisionSource)
	}
	if !strings.Contains(err.Error(), "decisionSource") {
		t.Fatalf("expected message to name decisionSource, got %q", err.Error())
	}
}

func TestNewCoordinatorRejectsMissingActionExecutor(t *testing.T) {
	coordinator, err := NewCoordinator(&fakeSource{}, nil)
	if err == nil {
		t.Fatal("expected error for missing action executor")
	}
	if coordinator != nil {
		t.Fatalf("coordinator = %v, want nil", coordinator)
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("error = %v, want invalid argument", err)
	}
	if got := MissingParam(err); got != ParamActionExecutor {
		t.Fatalf("missing param = %q, want %q", got, ParamActionExecutor)
	}
	if !strings.Contains(err.Error(), "actionExecutor") {
		t.Fatalf("expected message to name actionExecutor, got %q", err.Error())
	}
}

func TestNewCoordinatorStartsIdleControlled(t *testing.T) {
	source := &fakeSource{}
	coordinator := newTestCoordinator(t, source, &fakeExecutor{})

	if coordinator.State() != StateIdleControlled {
		t.Fatalf("state = %q, want %q", coordinator.State(), StateIdleControlled)
	}
	if source.calls != 0 {
		t.Fatalf("source calls = %d, want 0", source.calls)
	}
}

func TestPerformActionBeforeRefreshExecutesOnce(t *testing.T) {
	executor := &fakeExecutor{}
	coordinator := newTestCoordinator(t, &fakeSource{}, executor)

	if err := coordinator.PerformAction(context.Background()); err != nil {
		t.Fatalf("perform action: %v", err)
	}
	if executor.calls != 1 {
		t.Fatalf("execute calls = %d, want 1", executor.calls)
	}
}

func TestPerformActionAfterRefresh(t *testing.T) {
	tests := []struct {
		name      string
		control   bool
		wantCalls int
	}{
		{name: "player has control", control: true, wantCalls: 1},
		{name: "player has no control", control: false, wantCalls: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := &countingDecision{control: tt.control}
			executor := &fakeExecutor{}
			coordinator := newTestCoordinator(t, &fakeSource{decisions: []Decision{decision}}, executor)

			if err := coordinator.RefreshDecision(context.Background()); err != nil {
				t.Fatalf("refresh decision: %v", err)
			}
			if err := coordinator.PerformAction(context.Background()); err != nil {
				t.Fatalf("perform action: %v", err)
			}
			if executor.calls != tt.wantCalls {
				t.Fatalf("execute calls = %d, want %d", executor.calls, tt.wantCalls)
			}
			if decision.reads != 1 {
				t.Fatalf("control reads = %d, want 1", decision.reads)
			}
		})
	}
}

func TestPerformActionPropagatesControlError(t *testing.T) {
	controlErr := errors.New("Player control exception.")
	decision := &countingDecision{err: controlErr}
	executor := &fakeExecutor{}
	coordinator := newTestCoordinator(t, &fakeSource{decisions: []Decision{decision}}, executor)

	if err := coordinator.RefreshDecision(context.Background()); err != nil {
		t.Fatalf("refresh decision: %v", err)
	}
	err := coordinator.PerformAction(context.Background())
	if err != controlErr {
		t.Fatalf("perform action error = %v, want %v", err, controlErr)
	}
	if err.Error() != "Player control exception." {
		t.Fatalf("error message = %q, want %q", err.Error(), "Player control exception.")
	}
	if executor.calls != 0 {
		t.Fatalf("execute calls = %d, want 0", executor.calls)
	}
}

func TestPerformActionPropagatesExecutorError(t *testing.T) {
	execErr := errors.New("body offline")
	executor := &fakeExecutor{err: execErr}
	coordinator := newTestCoordinator(t, &fakeSource{}, executor)

	if err := coordinator.PerformAction(context.Background()); err != execErr {
		t.Fatalf("perform action error = %v, want %v", err, execErr)
	}
	if executor.calls != 1 {
		t.Fatalf("execute calls = %d, want 1", executor.calls)
	}
}

func TestRefreshDecisionAlwaysFetchesAndOverwrites(t *testing.T) {
	source := &fakeSource{decisions: []Decision{
		StaticDecision{PlayerControl: false},
		StaticDecision{PlayerControl: true},
		StaticDecision{PlayerControl: false},
	}}
	executor := &fakeExecutor{}
	coordinator := newTestCoordinator(t, source, executor)
	ctx := context.Background()

	wantCalls := []int{0, 1, 1}
	for i, want := range wantCalls {
		if err := coordinator.RefreshDecision(ctx); err != nil {
			t.Fatalf("refresh %d: %v", i, err)
		}
		if err := coordinator.PerformAction(ctx); err != nil {
			t.Fatalf("perform %d: %v", i, err)
		}
		if executor.calls != want {
			t.Fatalf("after refresh %d execute calls = %d, want %d", i, executor.calls, want)
		}
	}
	if source.calls != 3 {
		t.Fatalf("source calls = %d, want 3", source.calls)
	}
	if coordinator.State() != StateDecided {
		t.Fatalf("state = %q, want %q", coordinator.State(), StateDecided)
	}
}

func TestRefreshDecisionPropagatesSourceError(t *testing.T) {
	sourceErr := errors.New("planner crashed")
	executor := &fakeExecutor{}
	coordinator := newTestCoordinator(t, &fakeSource{err: sourceErr}, executor)

	if err := coordinator.RefreshDecision(context.Background()); err != sourceErr {
		t.Fatalf("refresh error = %v, want %v", err, sourceErr)
	}
	if coordinator.State() != StateIdleControlled {
		t.Fatalf("state = %q, want %q", coordinator.State(), StateIdleControlled)
	}
	if err := coordinator.PerformAction(context.Background()); err != nil {
		t.Fatalf("perform action: %v", err)
	}
	if executor.calls != 1 {
		t.Fatalf("execute calls = %d, want 1", executor.calls)
	}
}

func TestRefreshDecisionRejectsNilDecision(t *testing.T) {
	coordinator := newTestCoordinator(t, &fakeSource{}, &fakeExecutor{})

	err := coordinator.RefreshDecision(context.Background())
	if !errors.Is(err, ErrDecisionMissing) {
		t.Fatalf("refresh error = %v, want %v", err, ErrDecisionMissing)
	}
	if coordinator.State() != StateIdleControlled {
		t.Fatalf("state = %q, want %q", coordinator.State(), StateIdleControlled)
	}
}

func TestDispatchReportsWhetherActionRan(t *testing.T) {
	coordinator := newTestCoordinator(t, &fakeSource{decisions: []Decision{StaticDecision{}}}, &fakeExecutor{})
	other := &fakeExecutor{}

	dispatched, err := coordinator.Dispatch(context.Background(), other)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !dispatched || other.calls != 1 {
		t.Fatalf("dispatched = %v calls = %d, want true 1", dispatched, other.calls)
	}

	if err := coordinator.RefreshDecision(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	dispatched, err = coordinator.Dispatch(context.Background(), other)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if dispatched || other.calls != 1 {
		t.Fatalf("dispatched = %v calls = %d, want false 1", dispatched, other.calls)
	}
}

func TestDispatchRejectsNilAction(t *testing.T) {
	coordinator := newTestCoordinator(t, &fakeSource{}, &fakeExecutor{})

	_, err := coordinator.Dispatch(context.Background(), nil)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("dispatch error = %v, want invalid argument", err)
	}
	if got := MissingParam(err); got != ParamActionExecutor {
		t.Fatalf("missing param = %q, want %q", got, ParamActionExecutor)
	}
}
