package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"resumely/resume-analyzer/internal/models"
	"resumely/resume-analyzer/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(resumeID uuid.UUID)
}

type worker struct {
	resumeRepo     repositories.ResumeRepository
	indexerService IndexerService
	jobQueue       chan uuid.UUID
	concurrency    int
	wg             sync.WaitGroup
	stopChan       chan struct{}
}

func NewWorker(
	resumeRepo repositories.ResumeRepository,
	indexerService IndexerService,
	concurrency int,
) Worker {
	return &worker{
		resumeRepo:     resumeRepo,
		indexerService: indexerService,
		jobQueue:       make(chan uuid.UUID, 100),
		concurrency:    concurrency,
		stopChan:       make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting index worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	// Poller picks up rows left index_pending by a crashed or restarted
	// process.
	w.wg.Add(1)
	go w.pollPendingJobs(ctx)

	log.Println("✅ Index worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping index worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Index worker stopped")
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(resumeID uuid.UUID) {
	select {
	case w.jobQueue <- resumeID:
		log.Printf("📥 Index job %s enqueued\n", resumeID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue job %s\n", resumeID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Worker %d started processing index jobs\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case resumeID := <-w.jobQueue:
			log.Printf("👷 Worker #%d indexing resume %s\n", workerID, resumeID)
			if err := w.indexerService.IndexResume(ctx, resumeID); err != nil {
				log.Printf("❌ Worker #%d failed to index resume %s: %v\n", workerID, resumeID, err)
			} else {
				log.Printf("✅ Worker #%d finished resume %s\n", workerID, resumeID)
			}
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	log.Println("🔄 Starting pending index jobs poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending index jobs poller stopped")
			return
		case <-ticker.C:
			pending, err := w.resumeRepo.FindByIndexStatus(models.IndexPending, 10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending index jobs: %v\n", err)
				continue
			}

			if len(pending) > 0 {
				log.Printf("📋 Found %d pending index jobs\n", len(pending))
			}

			for _, resume := range pending {
				w.EnqueueJob(resume.ID)
			}
		}
	}
}
