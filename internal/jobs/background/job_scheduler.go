package background

import (
	"context"
	"log"
	"sync"
	"time"

	"boardsuite/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler keeps the report and dashboard caches warm so the first
// page load of the day does not pay the aggregation cost.
type JobScheduler struct {
	scheduler gocron.Scheduler
	reportSvc services.ReportService
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

func NewJobScheduler(reportSvc services.ReportService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler: scheduler,
		reportSvc: reportSvc,
		jobs:      make(map[string]gocron.Job),
	}

	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	reportJob, err := js.scheduler.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(js.warmMonthlyReport, context.Background()),
		gocron.WithName("monthly-report-cache-warm"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create report warm job: %v", err)
	} else {
		js.setJob("report", reportJob)
	}

	statsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.warmDashboardStats, context.Background()),
		gocron.WithName("dashboard-stats-cache-warm"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create stats warm job: %v", err)
	} else {
		js.setJob("stats", statsJob)
	}
}

func (js *JobScheduler) setJob(name string, job gocron.Job) {
	js.mu.Lock()
	defer js.mu.Unlock()
	js.jobs[name] = job
}

func (js *JobScheduler) warmMonthlyReport(ctx context.Context) {
	now := time.Now()
	if _, err := js.reportSvc.RefreshMonthlyReport(ctx, now.Year(), int(now.Month())); err != nil {
		log.Printf("Monthly report cache warm failed: %v", err)
	}
}

func (js *JobScheduler) warmDashboardStats(ctx context.Context) {
	if _, err := js.reportSvc.RefreshDashboardStats(ctx); err != nil {
		log.Printf("Dashboard stats cache warm failed: %v", err)
	}
}
