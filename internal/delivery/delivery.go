// Package delivery defines the contract every transport-facing server
// implements, so the entrypoint can start them uniformly.
package delivery

import "context"

// Delivery is a long-running server owned by the fx lifecycle. Serve blocks
// until the server stops; shutdown happens through lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
