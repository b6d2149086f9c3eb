package ai

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/louisbranch/possession/internal/platform/random"
	"github.com/louisbranch/possession/internal/services/possession/domain"
)

// RandomSource grants the player control with a fixed probability.
type RandomSource struct {
	playerShare float64
	seed        int64
	rng         *rand.Rand
}

// NewRandomSource returns a source that yields player control with probability
// playerShare. A zero seed draws a fresh one.
func NewRandomSource(playerShare float64, seed int64) (*RandomSource, error) {
	if playerShare < 0 || playerShare > 1 {
		return nil, fmt.Errorf("player share must be between 0 and 1, got %v", playerShare)
	}
	rng, used, err := random.NewRand(seed)
	if err != nil {
		return nil, err
	}
	return &RandomSource{playerShare: playerShare, seed: used, rng: rng}, nil
}

// Seed returns the seed in use, for replaying a run.
func (s *RandomSource) Seed() int64 {
	return s.seed
}

// NextDecision implements domain.DecisionSource.
func (s *RandomSource) NextDecision(ctx context.Context) (domain.Decision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return domain.StaticDecision{PlayerControl: s.rng.Float64() < s.playerShare}, nil
}
