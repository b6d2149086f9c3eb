// Package random provides seed helpers for deterministic decision sources.
//
// It uses crypto/rand to generate high-entropy seeds suitable for
// initializing pseudo-random number generators in deterministic systems.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewRand returns a PRNG seeded with seed, drawing a fresh seed when seed is
// zero. The seed actually used is returned so runs can be replayed.
func NewRand(seed int64) (*rand.Rand, int64, error) {
	if seed == 0 {
		drawn, err := NewSeed()
		if err != nil {
			return nil, 0, err
		}
		seed = drawn
	}
	return rand.New(rand.NewSource(seed)), seed, nil
}
