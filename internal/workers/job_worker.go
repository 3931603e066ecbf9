package workers

import (
	"context"
	"time"

	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/repositories"
)

type JobWorker struct {
	jobRepo       repositories.JobRepository
	sweepInterval time.Duration
}

func NewJobWorker(jobRepo repositories.JobRepository, sweepInterval time.Duration) *JobWorker {
	if sweepInterval <= 0 {
		sweepInterval = time.Hour
	}
	return &JobWorker{
		jobRepo:       jobRepo,
		sweepInterval: sweepInterval,
	}
}

// Start запускает фоновые задачи для jobs
func (w *JobWorker) Start(ctx context.Context) {
	// Автозакрытие просроченных jobs
	go w.cancelExpiredJobs(ctx)
}

// cancelExpiredJobs переводит OPEN jobs с прошедшим due_date в CANCELLED
func (w *JobWorker) cancelExpiredJobs(ctx context.Context) {
	ticker := time.NewTicker(w.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("job worker stopped")
			return
		case <-ticker.C:
			affected, err := w.jobRepo.CancelExpired(ctx, time.Now())
			if err != nil {
				logger.WorkerLog("job_worker", "cancel_expired", err)
				continue
			}
			if affected > 0 {
				logger.Info("cancelled expired jobs", "count", affected)
			}
		}
	}
}
