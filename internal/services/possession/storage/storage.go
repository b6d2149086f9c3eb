// Package storage defines persistence contracts for the possession tick journal.
package storage

import (
	"context"
	"time"
)

// TickRecord is one durable game loop tick outcome for a possessed character.
type TickRecord struct {
	ID          string
	CharacterID string
	Tick        int64
	// CoordinatorState is the coordinator state after the refresh step:
	// "idle_controlled" or "decided".
	CoordinatorState string
	Dispatched       bool
	Error            string
	CreatedAt        time.Time
}

// TickStore persists and lists tick records.
type TickStore interface {
	RecordTick(ctx context.Context, record TickRecord) error
	ListTicks(ctx context.Context, characterID string, limit int) ([]TickRecord, error)
}
