// Package lifecycle tracks whether the backend is shutting down so the
// readiness probe can pull it out of rotation before in-flight chat and
// voice traffic is cut off.
package lifecycle

import "sync/atomic"

// Lifecycle is the draining flag shared between main and the readiness
// handler. The zero value is ready to use.
type Lifecycle struct {
	draining atomic.Bool
}

// SetDraining marks the process as shutting down. Main flips this before
// calling http.Server.Shutdown so /readyz fails during the grace period.
func (l *Lifecycle) SetDraining(draining bool) {
	if l == nil {
		return
	}
	l.draining.Store(draining)
}

func (l *Lifecycle) IsDraining() bool {
	if l == nil {
		return false
	}
	return l.draining.Load()
}
