package app

import (
	"context"
	"sync"

	"github.com/louisbranch/possession/internal/services/possession/domain"
)

// Host is the single caller of a coordinator. It serializes the game loop and
// gRPC requests so the coordinator never sees concurrent calls.
type Host struct {
	mu          sync.Mutex
	coordinator *domain.Coordinator
	executor    domain.ActionExecutor
}

// NewHost builds the coordinator for source and executor.
func NewHost(source domain.DecisionSource, executor domain.ActionExecutor) (*Host, error) {
	coordinator, err := domain.NewCoordinator(source, executor)
	if err != nil {
		return nil, err
	}
	return &Host{coordinator: coordinator, executor: executor}, nil
}

// RefreshDecision pulls the next decision.
func (h *Host) RefreshDecision(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.coordinator.RefreshDecision(ctx)
}

// PerformAction runs the executor when the active decision grants control and
// reports whether it ran.
func (h *Host) PerformAction(ctx context.Context) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.coordinator.Dispatch(ctx, h.executor)
}

// State reports the coordinator state.
func (h *Host) State() domain.State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.coordinator.State()
}
