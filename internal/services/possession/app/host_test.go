package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	apperrors "github.com/louisbranch/possession/internal/platform/errors"
	"github.com/louisbranch/possession/internal/services/possession/ai"
	"github.com/louisbranch/possession/internal/services/possession/domain"
)

func staticSource(control bool) domain.DecisionSource {
	return domain.DecisionSourceFunc(func(context.Context) (domain.Decision, error) {
		return domain.StaticDecision{PlayerControl: control}, nil
	})
}

type countingExecutor struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (e *countingExecutor) Execute(context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	return e.err
}

func (e *countingExecutor) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func TestNewHostRejectsMissingCollaborators(t *testing.T) {
	tests := []struct {
		name     string
		source   domain.DecisionSource
		executor domain.ActionExecutor
		param    string
	}{
		{name: "missing source", executor: &countingExecutor{}, param: domain.ParamDecisionSource},
		{name: "missing executor", source: staticSource(true), param: domain.ParamActionExecutor},
		{name: "missing both", param: domain.ParamDecisionSource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, err := NewHost(tt.source, tt.executor)
			if host != nil {
				t.Fatal("expected nil host")
			}
			if apperrors.GetCode(err) != apperrors.CodeInvalidArgument {
				t.Fatalf("code = %q, want %q", apperrors.GetCode(err), apperrors.CodeInvalidArgument)
			}
			if got := domain.MissingParam(err); got != tt.param {
				t.Fatalf("param = %q, want %q", got, tt.param)
			}
		})
	}
}

func TestHostGatesOnActiveDecision(t *testing.T) {
	executor := &countingExecutor{}
	host, err := NewHost(staticSource(false), executor)
	if err != nil {
		t.Fatalf("new host: %v", err)
	}
	ctx := context.Background()

	if host.State() != domain.StateIdleControlled {
		t.Fatalf("state = %q, want %q", host.State(), domain.StateIdleControlled)
	}
	dispatched, err := host.PerformAction(ctx)
	if err != nil || !dispatched {
		t.Fatalf("perform before refresh = %v, %v; want true, nil", dispatched, err)
	}
	if err := host.RefreshDecision(ctx); err != nil {
		t.Fatalf("refresh decision: %v", err)
	}
	dispatched, err = host.PerformAction(ctx)
	if err != nil || dispatched {
		t.Fatalf("perform after refresh = %v, %v; want false, nil", dispatched, err)
	}
	if executor.Calls() != 1 {
		t.Fatalf("executor calls = %d, want 1", executor.Calls())
	}
	if host.State() != domain.StateDecided {
		t.Fatalf("state = %q, want %q", host.State(), domain.StateDecided)
	}
}

func TestHostPropagatesExecutorError(t *testing.T) {
	want := errors.New("Player control exception.")
	host, err := NewHost(staticSource(true), &countingExecutor{err: want})
	if err != nil {
		t.Fatalf("new host: %v", err)
	}
	dispatched, err := host.PerformAction(context.Background())
	if err != want {
		t.Fatalf("err = %v, want %v", err, want)
	}
	if !dispatched {
		t.Fatal("expected dispatch attempt to be reported")
	}
}

func TestHostSerializesConcurrentCalls(t *testing.T) {
	executor := &countingExecutor{}
	host, err := NewHost(staticSource(true), executor)
	if err != nil {
		t.Fatalf("new host: %v", err)
	}
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = host.RefreshDecision(ctx)
			_, _ = host.PerformAction(ctx)
			_ = host.State()
		}()
	}
	wg.Wait()
	if executor.Calls() != 16 {
		t.Fatalf("executor calls = %d, want 16", executor.Calls())
	}
}

func TestHostKeepsLuaDecisionAfterFailedRefresh(t *testing.T) {
	source, err := ai.NewLuaSource(`
function next_decision(tick)
  if tick == 1 then
    return function() return true end
  end
  error("planner crashed")
end
`)
	if err != nil {
		t.Fatalf("new lua source: %v", err)
	}
	executor := &countingExecutor{}
	host, err := NewHost(source, executor)
	if err != nil {
		t.Fatalf("new host: %v", err)
	}
	ctx := context.Background()

	if err := host.RefreshDecision(ctx); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	if err := host.RefreshDecision(ctx); apperrors.GetCode(err) != apperrors.CodeDecisionScriptFailed {
		t.Fatalf("second refresh error = %v, want script failure", err)
	}
	dispatched, err := host.PerformAction(ctx)
	if err != nil {
		t.Fatalf("perform after failed refresh: %v", err)
	}
	if !dispatched || executor.Calls() != 1 {
		t.Fatalf("dispatched = %v calls = %d, want true 1", dispatched, executor.Calls())
	}
}
