// Package lifecycle holds shared process lifecycle constants.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown steps (pings, drains).
const DefaultTimeout = 10 * time.Second
