package extract

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JobStatus is the lifecycle state of an async extraction.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Job tracks one async extraction and, once finished, its result.
type Job struct {
	ID           string
	Status       JobStatus
	Transactions []Transaction
	Err          string
	CreatedAt    time.Time
}

// JobStore manages in-memory async extraction jobs. The creator owns the
// lifecycle and must call Stop to end background cleanup.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
	ttl  time.Duration
	done chan struct{}
}

// NewJobStore creates a job store with background TTL cleanup.
func NewJobStore(ttl time.Duration) *JobStore {
	js := &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
		done: make(chan struct{}),
	}
	go js.cleanup()
	return js
}

// Get retrieves a snapshot of a job by ID. A copy is returned so callers
// never observe a job mid-update.
func (js *JobStore) Get(id string) (Job, error) {
	js.mu.RLock()
	defer js.mu.RUnlock()
	job, ok := js.jobs[id]
	if !ok {
		return Job{}, fmt.Errorf("job not found: %s", id)
	}
	return *job, nil
}

// Stop signals the background cleanup goroutine to exit.
func (js *JobStore) Stop() {
	close(js.done)
}

func (js *JobStore) create(job *Job) {
	js.mu.Lock()
	defer js.mu.Unlock()
	js.jobs[job.ID] = job
}

func (js *JobStore) finish(id string, txs []Transaction, err error) {
	js.mu.Lock()
	defer js.mu.Unlock()
	job, ok := js.jobs[id]
	if !ok {
		return
	}
	if err != nil {
		job.Status = JobFailed
		job.Err = err.Error()
		return
	}
	job.Status = JobCompleted
	job.Transactions = txs
}

func (js *JobStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-js.done:
			return
		case <-ticker.C:
			js.mu.Lock()
			now := time.Now()
			for id, job := range js.jobs {
				if now.Sub(job.CreatedAt) > js.ttl {
					delete(js.jobs, id)
				}
			}
			js.mu.Unlock()
		}
	}
}

// ExtractAsync starts an extraction in the background and returns the job ID
// to poll. Each invocation owns its byte buffer; callers must not mutate data
// until the job settles.
func (s *Service) ExtractAsync(data []byte, password string, jobs *JobStore) string {
	id := uuid.NewString()
	jobs.create(&Job{ID: id, Status: JobPending, CreatedAt: time.Now()})

	go func() {
		txs, err := s.Extract(context.Background(), data, password)
		if err != nil {
			s.logger.Warn("async extraction failed", zap.String("job", id), zap.Error(err))
		}
		jobs.finish(id, txs, err)
	}()
	return id
}
