package game

import "context"

// SweepJob adapts the growth sweep to the worker pool's Job interface so
// the scheduler can run it on a fixed interval.
type SweepJob struct {
	svc Service
}

// NewSweepJob creates a sweep job for the scheduler
func NewSweepJob(svc Service) *SweepJob {
	return &SweepJob{svc: svc}
}

// Process runs one growth sweep
func (j *SweepJob) Process(ctx context.Context) error {
	return j.svc.SweepGrowth(ctx)
}
