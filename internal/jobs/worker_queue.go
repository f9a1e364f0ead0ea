package jobs

import (
	"github.com/vytor/funzone/internal/models"
	"github.com/vytor/funzone/internal/repository"
	"github.com/vytor/funzone/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool    *worker.Pool
	results repository.ResultRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, results repository.ResultRepository) JobQueue {
	return &WorkerQueue{pool: pool, results: results}
}

func (q *WorkerQueue) EnqueueResult(result models.GameResult) error {
	return q.pool.Submit(&worker.RecordResultJob{
		Results: q.results,
		Result:  result,
	})
}
