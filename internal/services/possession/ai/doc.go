// Package ai provides decision sources that stand in for a character's AI.
//
// Sources are deterministic where possible so game loops can be replayed: the
// scripted source follows a fixed pattern, the random source reports its seed,
// and the Lua source delegates to a user script.
package ai
