package queue_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shringarlabs/shringar/pkg/queue"
)

var processed atomic.Int32

type mailJob struct {
	OrderID uint `json:"order_id"`
}

func (j *mailJob) Handle() error {
	processed.Add(1)
	return nil
}

type brokenJob struct{}

func (j *brokenJob) Handle() error {
	return errors.New("smtp unreachable")
}

func init() {
	queue.Register("*queue_test.mailJob", func() queue.Job { return &mailJob{} })
	queue.Register("*queue_test.brokenJob", func() queue.Job { return &brokenJob{} })
	queue.StartWorkers(context.Background(), 2)
}

func TestDispatchAndProcess(t *testing.T) {
	before := processed.Load()
	require.NoError(t, queue.Dispatch(&mailJob{OrderID: 7}))

	assert.Eventually(t, func() bool {
		return processed.Load() > before
	}, 2*time.Second, 20*time.Millisecond)
}

func TestFailedJobRecorded(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	require.NoError(t, queue.Dispatch(&brokenJob{}))

	assert.Eventually(t, func() bool {
		return len(queue.FailedJobs()) > 0
	}, 3*time.Second, 50*time.Millisecond)
}

func TestDispatchConcurrent(t *testing.T) {
	for i := 0; i < 20; i++ {
		go func() {
			_ = queue.Dispatch(&mailJob{OrderID: 1})
		}()
	}
	// No assertion beyond "does not race or deadlock"; run with -race.
}
