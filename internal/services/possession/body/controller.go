// Package body implements the physical side of a possessed character.
package body

import (
	"context"
	"fmt"
	"sync"
)

// DefaultJumpImpulse is the vertical velocity added by one jump.
const DefaultJumpImpulse = 5.0

// Controller applies jump impulses to a character body. It implements
// domain.ActionExecutor.
type Controller struct {
	characterID string
	impulse     float64
	logf        func(string, ...any)

	mu       sync.Mutex
	jumps    int64
	velocity float64
	fault    error
}

// Option configures a Controller.
type Option func(*Controller)

// WithImpulse overrides the jump impulse.
func WithImpulse(impulse float64) Option {
	return func(c *Controller) {
		c.impulse = impulse
	}
}

// WithLogger reports each jump through logf.
func WithLogger(logf func(string, ...any)) Option {
	return func(c *Controller) {
		c.logf = logf
	}
}

// NewController returns a grounded body for characterID.
func NewController(characterID string, opts ...Option) *Controller {
	c := &Controller{
		characterID: characterID,
		impulse:     DefaultJumpImpulse,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute performs one jump.
func (c *Controller) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fault != nil {
		return fmt.Errorf("body %s: %w", c.characterID, c.fault)
	}
	c.jumps++
	c.velocity += c.impulse
	if c.logf != nil {
		c.logf("%s jumped (jump %d, vertical velocity %.2f)", c.characterID, c.jumps, c.velocity)
	}
	return nil
}

// Land resets vertical velocity, as when the character touches the ground.
func (c *Controller) Land() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.velocity = 0
}

// SetFault makes subsequent jumps fail with err until cleared with nil.
func (c *Controller) SetFault(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fault = err
}

// Jumps returns how many jumps have been performed.
func (c *Controller) Jumps() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.jumps
}

// Velocity returns the current vertical velocity.
func (c *Controller) Velocity() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.velocity
}
