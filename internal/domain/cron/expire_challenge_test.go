package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/docthru/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type mockExpirer struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
}

func (m *mockExpirer) ExpireSweep(ctx context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, now)
	return len(m.calls), m.err
}

func (m *mockExpirer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.calls)
}

func TestExpireChallengeCronJob_Do(t *testing.T) {
	ctx := testutil.NewMockContext()
	expirer := &mockExpirer{}

	job := NewExpireChallengeCronJob(ctx, expirer, nil)
	job.now = func() time.Time { return testutil.Now }

	job.Do(ctx)
	require.Equal(t, []time.Time{testutil.Now}, expirer.calls)
	require.Equal(t, testutil.Now.Add(time.Minute), job.Next())
	require.True(t, job.RunNow())
}

func TestExpireChallengeCronJob_Lock(t *testing.T) {
	ctx := testutil.NewMockContext()
	expirer := &mockExpirer{}
	redisClient := &testutil.MockRedisClient{}

	job := NewExpireChallengeCronJob(ctx, expirer, redisClient)

	// Held by another replica.
	ok, err := redisClient.SetNX(ctx, expireChallengeLockKey, "1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	job.Do(ctx)
	require.Equal(t, 0, expirer.count())

	require.NoError(t, redisClient.Del(ctx, expireChallengeLockKey))
	job.Do(ctx)
	require.Equal(t, 1, expirer.count())

	// The lock is released after a sweep.
	job.Do(ctx)
	require.Equal(t, 2, expirer.count())
}

func TestExpireChallengeCronJob_LockError(t *testing.T) {
	ctx := testutil.NewMockContext()
	expirer := &mockExpirer{}
	redisClient := &testutil.MockRedisClient{
		SetNXFunc: func(context.Context, string, string, time.Duration) (bool, error) {
			return false, errors.New("connection refused")
		},
	}

	NewExpireChallengeCronJob(ctx, expirer, redisClient).Do(ctx)
	require.Equal(t, 0, expirer.count())
}

type countingJob struct {
	mu    sync.Mutex
	runs  int
	ready chan struct{}
}

func (j *countingJob) Do(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.runs++
	if j.runs == 3 {
		close(j.ready)
	}
}

func (j *countingJob) RunNow() bool {
	return true
}

func (j *countingJob) Next() time.Time {
	return time.Now().Add(time.Millisecond)
}

func TestCronJobManager(t *testing.T) {
	ctx, cancel := context.WithCancel(testutil.NewMockContext())
	defer cancel()

	job := &countingJob{ready: make(chan struct{})}
	m := NewCronJobManager()
	m.Register(job)

	done := make(chan struct{})
	go func() {
		m.Start(ctx)
		close(done)
	}()

	select {
	case <-job.ready:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run three times")
	}

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("manager did not stop")
	}
}
