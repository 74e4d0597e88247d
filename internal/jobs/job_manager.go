package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	stateReportJob *StateReportJob
	riskProbeJob   *RiskProbeJob
}

// NewJobManager creates a job manager. A nil job is skipped.
func NewJobManager(stateReportJob *StateReportJob, riskProbeJob *RiskProbeJob) *JobManager {
	return &JobManager{
		stateReportJob: stateReportJob,
		riskProbeJob:   riskProbeJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.stateReportJob != nil {
		if err := jm.stateReportJob.Start(); err != nil {
			return fmt.Errorf("failed to start state report job: %w", err)
		}
	}

	if jm.riskProbeJob != nil {
		if err := jm.riskProbeJob.Start(); err != nil {
			// Stop already started jobs if this one fails
			if jm.stateReportJob != nil {
				jm.stateReportJob.Stop()
			}
			return fmt.Errorf("failed to start risk probe job: %w", err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.riskProbeJob != nil {
		jm.riskProbeJob.Stop()
	}
	if jm.stateReportJob != nil {
		jm.stateReportJob.Stop()
	}
}
