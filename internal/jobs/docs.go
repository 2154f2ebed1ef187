// Package jobs provides scheduled background tasks for the shipment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the stock ledger.
//
// # Available Jobs
//
// 1. LowStockJob - Runs every minute to report products whose stock dropped
// below the replenishment threshold
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(lowStockHandler, threshold, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The low stock sweep logs query failures and keeps running; a failed sweep
// never takes the service down.
package jobs
