// Package scheduler drives the periodic benchmark recalculation. The
// manual admin route and this ticker share one single-flight guard, so
// overlapping triggers collapse to a single running pass.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/CONFENGE/etp-express-sub002/internal/benchmark"
)

const DefaultInterval = 24 * time.Hour

type Scheduler struct {
	aggregator *benchmark.Aggregator
	interval   time.Duration
	stop       chan struct{}
}

func New(aggregator *benchmark.Aggregator, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		aggregator: aggregator,
		interval:   interval,
		stop:       make(chan struct{}),
	}
}

// Start launches the recalculation loop in the background. Errors from
// a scheduled pass are logged, never fatal; the next tick is the retry.
func (s *Scheduler) Start() {
	go func() {
		log.Printf("[SCHEDULER] Benchmark recalculation every %s", s.interval)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runOnce()
			case <-s.stop:
				log.Println("[SCHEDULER] Stopped")
				return
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) runOnce() {
	written, err := s.aggregator.Calculate(context.Background(), benchmark.CalcOptions{})
	if err != nil {
		log.Printf("[SCHEDULER] Scheduled recalculation failed: %v", err)
		return
	}
	log.Printf("[SCHEDULER] Scheduled recalculation wrote %d benchmarks", written)
}
