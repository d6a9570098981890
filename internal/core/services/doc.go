// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// State here is single-owner: the registry and the chat session are only
// ever mutated through their operations, and derived state (the active
// selection) is recomputed by a pure reconciler after every registry
// mutation rather than maintained as an independent side-channel.
package services
