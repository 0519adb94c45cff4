package background

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"github.com/geraud82/NeoPay-sub000/internal/services"
)

const (
	extractionDelay = 3 * time.Second
	stuckReceiptAge = 10 * time.Minute
	sweepInterval   = 5 * time.Minute
)

// JobScheduler runs the receipt extraction tasks and periodic sweeps.
type JobScheduler struct {
	scheduler  gocron.Scheduler
	receiptSvc services.ReceiptService
	jobs       map[string]gocron.Job
	mu         sync.RWMutex
}

func NewJobScheduler(receiptSvc services.ReceiptService) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		receiptSvc: receiptSvc,
		jobs:       make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
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
	// Stuck receipt sweep - receipts still Processing past the deadline are
	// failed so they never hang forever.
	sweepJob, err := js.scheduler.NewJob(
		gocron.DurationJob(sweepInterval),
		gocron.NewTask(js.sweepStuckReceipts),
		gocron.WithName("stuck-receipt-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create stuck receipt sweep job: %v", err)
	} else {
		js.jobs["stuck-receipt-sweep"] = sweepJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// EnqueueReceiptExtraction schedules a one-shot extraction task shortly after
// upload, mimicking the latency of a real extraction provider.
func (js *JobScheduler) EnqueueReceiptExtraction(receiptID uuid.UUID) {
	js.mu.Lock()
	defer js.mu.Unlock()

	name := "receipt-extraction-" + receiptID.String()
	job, err := js.scheduler.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(time.Now().Add(extractionDelay))),
		gocron.NewTask(func() {
			js.receiptSvc.ProcessExtraction(context.Background(), receiptID)

			js.mu.Lock()
			delete(js.jobs, name)
			js.mu.Unlock()
		}),
		gocron.WithName(name),
	)
	if err != nil {
		log.Printf("Failed to schedule extraction for receipt %s: %v", receiptID, err)
		return
	}
	js.jobs[name] = job
}

func (js *JobScheduler) sweepStuckReceipts() {
	failed, err := js.receiptSvc.FailStuck(context.Background(), time.Now().Add(-stuckReceiptAge))
	if err != nil {
		log.Printf("Stuck receipt sweep failed: %v", err)
		return
	}
	if failed > 0 {
		log.Printf("Stuck receipt sweep failed %d receipts", failed)
	}
}

// GetJobStatus reports the scheduled job names, used by the health endpoint.
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	jobs := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		jobs = append(jobs, name)
	}

	return map[string]interface{}{
		"total_jobs": len(js.jobs),
		"jobs":       jobs,
	}
}
