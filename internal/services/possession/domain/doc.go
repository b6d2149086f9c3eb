// Package domain arbitrates control of a possessed character between an AI
// decision source and the player.
//
// A Coordinator keeps exactly one active Decision. The game loop refreshes it
// from a DecisionSource and, when the player asks for an action, the
// coordinator consults the active decision before letting the action reach the
// body controller. Call sites never need to know which authority is active.
//
// The package performs no recovery: collaborator errors are returned to the
// caller as the same error value, and the control check always completes
// before an action is dispatched.
package domain
