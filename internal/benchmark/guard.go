package benchmark

import "sync/atomic"

// Guard is the single-flight token shared by the scheduled and manual
// recalculation paths. It only serializes within one process; the
// database unique key covers cross-process writers.
type Guard struct {
	running atomic.Bool
}

func NewGuard() *Guard {
	return &Guard{}
}

// TryAcquire claims the token. It returns false when a pass already
// holds it; callers must not queue behind a running pass.
func (g *Guard) TryAcquire() bool {
	return g.running.CompareAndSwap(false, true)
}

func (g *Guard) Release() {
	g.running.Store(false)
}
