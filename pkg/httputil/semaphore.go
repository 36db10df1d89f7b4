package httputil

import "sync/atomic"

// Semaphore bounds concurrent outbound analyzer calls. The engine treats a
// full semaphore as a skip signal, not a queue: crisis verdicts must never
// wait behind other sessions' estimator traffic.
type Semaphore struct {
	slots   chan struct{}
	skipped atomic.Int64
}

// NewSemaphore creates a semaphore with the given capacity.
func NewSemaphore(capacity int) *Semaphore {
	if capacity <= 0 {
		capacity = 32
	}
	return &Semaphore{slots: make(chan struct{}, capacity)}
}

// TryAcquire takes a slot without blocking. A false return means the caller
// should skip its external call and rely on local detection.
func (s *Semaphore) TryAcquire() bool {
	select {
	case s.slots <- struct{}{}:
		return true
	default:
		s.skipped.Add(1)
		return false
	}
}

// Release returns a slot. Only call after a successful TryAcquire.
func (s *Semaphore) Release() {
	select {
	case <-s.slots:
	default:
	}
}

// Skipped returns how many calls were shed due to saturation. Useful for
// spotting undersized capacity in production.
func (s *Semaphore) Skipped() int64 {
	return s.skipped.Load()
}

// InUse returns the number of slots currently held.
func (s *Semaphore) InUse() int {
	return len(s.slots)
}
