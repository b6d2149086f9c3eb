package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/possession/internal/platform/id"
	"github.com/louisbranch/possession/internal/platform/timeouts"
	"github.com/louisbranch/possession/internal/services/possession/domain"
	"github.com/louisbranch/possession/internal/services/possession/storage"
)

const defaultCharacterID = "mario"

// Config controls the game loop cadence.
type Config struct {
	CharacterID  string
	TickInterval time.Duration
	// MaxTicks stops the loop after that many ticks; zero runs until the
	// context is done.
	MaxTicks int64
}

func (c Config) normalized() Config {
	c.CharacterID = strings.TrimSpace(c.CharacterID)
	if c.CharacterID == "" {
		c.CharacterID = defaultCharacterID
	}
	if c.TickInterval <= 0 {
		c.TickInterval = timeouts.Tick
	}
	if c.MaxTicks < 0 {
		c.MaxTicks = 0
	}
	return c
}

// TickRecorder persists tick outcomes.
type TickRecorder interface {
	RecordTick(ctx context.Context, record storage.TickRecord) error
}

// Controller is the part of the host the loop drives.
type Controller interface {
	RefreshDecision(ctx context.Context) error
	PerformAction(ctx context.Context) (bool, error)
	State() domain.State
}

// Loop drives one possessed character at a fixed cadence.
type Loop struct {
	controller Controller
	recorder   TickRecorder
	config     Config
	now        func() time.Time
	newID      func() (string, error)
	logf       func(string, ...any)
}

// NewLoop builds a game loop. A nil recorder disables the tick journal.
func NewLoop(controller Controller, recorder TickRecorder, cfg Config) *Loop {
	return &Loop{
		controller: controller,
		recorder:   recorder,
		config:     cfg.normalized(),
		now:        time.Now,
		newID:      id.NewID,
		logf:       log.Printf,
	}
}

// Run ticks until the context is done or MaxTicks is reached.
func (l *Loop) Run(ctx context.Context) error {
	if l == nil || l.controller == nil {
		return fmt.Errorf("game loop controller is required")
	}
	ticker := time.NewTicker(l.config.TickInterval)
	defer ticker.Stop()

	var tick int64
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		tick++
		l.RunTick(ctx, tick)
		if l.config.MaxTicks > 0 && tick >= l.config.MaxTicks {
			return nil
		}
	}
}

// RunTick refreshes the decision and performs the action once. A refresh
// failure skips the action for that tick. The returned record carries the ID
// it was journaled under; the ID is empty only if generating it failed.
func (l *Loop) RunTick(ctx context.Context, tick int64) storage.TickRecord {
	record := storage.TickRecord{
		CharacterID: l.config.CharacterID,
		Tick:        tick,
	}

	if err := l.controller.RefreshDecision(ctx); err != nil {
		record.Error = fmt.Sprintf("refresh decision: %v", err)
	} else {
		dispatched, err := l.controller.PerformAction(ctx)
		record.Dispatched = dispatched
		if err != nil {
			record.Error = fmt.Sprintf("perform action: %v", err)
		}
	}
	record.CoordinatorState = string(l.controller.State())
	record.CreatedAt = l.now().UTC()

	if record.Error != "" && !errors.Is(ctx.Err(), context.Canceled) {
		l.logf("possession tick %d for %s: %s", tick, record.CharacterID, record.Error)
	}
	tickID, err := l.newID()
	if err != nil {
		l.logf("generate tick id: %v", err)
		return record
	}
	record.ID = tickID
	l.record(ctx, record)
	return record
}

func (l *Loop) record(ctx context.Context, record storage.TickRecord) {
	if l.recorder == nil || ctx.Err() != nil {
		return
	}
	if err := l.recorder.RecordTick(ctx, record); err != nil {
		l.logf("record tick %d: %v", record.Tick, err)
	}
}
