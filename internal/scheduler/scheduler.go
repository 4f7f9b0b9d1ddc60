// Package scheduler builds batch submission requests and hands them to the
// cluster's submit command. The Scheduler interface is the seam between the
// driver and the real cluster; tests substitute a recording fake.
package scheduler

import "context"

// JobID is the scheduler's identifier for an accepted job.
type JobID string

// Scheduler accepts fully built submission requests.
type Scheduler interface {
	// Submit hands req to the scheduler and returns the job ID it was
	// accepted under. A rejected or failed submission returns an error
	// carrying the scheduler's own diagnostic verbatim.
	Submit(ctx context.Context, req *Request) (JobID, error)
}
