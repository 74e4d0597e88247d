// Package jobs provides scheduled background tasks for the logistics backend.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Neither job mutates the store: they only export what they observe.
//
// # Available Jobs
//
// 1. StateReportJob - reads one snapshot and publishes driver and order
// gauges by status plus the size of the processed event ledger
// 2. RiskProbeJob - calls the risk scorer root and publishes risk_service_up
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewStateReportJob(stateHandler, m, "*/10 * * * * *", logger),
//		jobs.NewRiskProbeJob(riskClient, m, "*/30 * * * * *", logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron syntax with a leading seconds field.
// StateReportJob also runs once on start so the gauges are populated
// before the first tick.
package jobs
