package worker_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/funzone/internal/models"
	"github.com/vytor/funzone/internal/testutil/mocks"
	"github.com/vytor/funzone/internal/worker"
)

type funcJob struct {
	name string
	fn   func(context.Context) error
}

func (j funcJob) Name() string { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

func TestPool_RunsJobs(t *testing.T) {
	pool := worker.NewPool(2, 8)
	pool.Start(context.Background())

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		require.NoError(t, pool.Submit(funcJob{name: "count", fn: func(context.Context) error {
			ran.Add(1)
			return nil
		}}))
	}

	require.Eventually(t, func() bool { return ran.Load() == 5 }, time.Second, 5*time.Millisecond)
	pool.Stop()
}

func TestPool_StopDrainsQueue(t *testing.T) {
	pool := worker.NewPool(1, 8)
	release := make(chan struct{})
	var ran atomic.Int32
	job := funcJob{name: "slow", fn: func(context.Context) error {
		<-release
		ran.Add(1)
		return nil
	}}
	pool.Start(context.Background())
	for i := 0; i < 3; i++ {
		require.NoError(t, pool.Submit(job))
	}

	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()
	close(release)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
	assert.Equal(t, int32(3), ran.Load())
	assert.ErrorIs(t, pool.Submit(job), worker.ErrPoolStopped)
	pool.Stop()
}

func TestPool_SubmitWhenFull(t *testing.T) {
	pool := worker.NewPool(1, 1)
	noop := funcJob{name: "noop", fn: func(context.Context) error { return nil }}

	// not started, so nothing drains the single slot
	require.NoError(t, pool.Submit(noop))
	assert.ErrorIs(t, pool.Submit(noop), worker.ErrQueueFull)
	assert.Equal(t, 1, pool.QueueSize())
}

func TestPool_SurvivesFailingJobs(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	defer pool.Stop()

	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, pool.Submit(funcJob{name: "boom", fn: func(context.Context) error { panic("boom") }}))
	require.NoError(t, pool.Submit(funcJob{name: "err", fn: func(context.Context) error { return errors.New("nope") }}))
	require.NoError(t, pool.Submit(funcJob{name: "ok", fn: func(context.Context) error {
		wg.Done()
		return nil
	}}))

	waitCh := make(chan struct{})
	go func() { wg.Wait(); close(waitCh) }()
	select {
	case <-waitCh:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive")
	}
}

func TestRecordResultJob(t *testing.T) {
	repo := new(mocks.MockResultRepository)
	result := models.GameResult{SessionID: "s1", GameID: "quiz", Score: 700}
	repo.On("Insert", mock.Anything, result).Return(int64(7), nil).Once()

	job := &worker.RecordResultJob{Results: repo, Result: result}
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, "record_result", job.Name())

	repo.On("Insert", mock.Anything, result).Return(int64(0), errors.New("disk full")).Once()
	assert.ErrorContains(t, job.Run(context.Background()), "disk full")
	repo.AssertExpectations(t)
}
