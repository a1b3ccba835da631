package client

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestTaskRegistry_RunsAndForgetsTask(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	registry := NewTaskRegistry()

	var ran atomic.Bool
	require.NoError(t, registry.Start("item-1", func(ctx context.Context, task *Task) error {
		return task.Commit(func() error {
			ran.Store(true)
			return nil
		})
	}))

	require.NoError(t, registry.Wait(context.Background()))
	assert.True(t, ran.Load())
	assert.Equal(t, 0, registry.Pending())
	assert.False(t, registry.Cancel("item-1"))
}

func TestTaskRegistry_OneTaskPerItem(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	registry := NewTaskRegistry()
	release := make(chan struct{})

	require.NoError(t, registry.Start("item-1", func(ctx context.Context, task *Task) error {
		<-release
		return nil
	}))
	assert.ErrorIs(t, registry.Start("item-1", func(ctx context.Context, task *Task) error { return nil }), ErrTaskExists)
	assert.True(t, registry.IsPending("item-1"))
	assert.Equal(t, 1, registry.Pending())

	close(release)
	require.NoError(t, registry.Wait(context.Background()))
}

func TestTaskRegistry_CancelDropsCommit(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	registry := NewTaskRegistry()
	started := make(chan struct{})

	var committed atomic.Bool
	var commitErr atomic.Value
	require.NoError(t, registry.Start("item-1", func(ctx context.Context, task *Task) error {
		close(started)
		<-ctx.Done()
		err := task.Commit(func() error {
			committed.Store(true)
			return nil
		})
		commitErr.Store(err)
		return err
	}))

	<-started
	assert.True(t, registry.Cancel("item-1"))
	assert.False(t, committed.Load())
	assert.ErrorIs(t, commitErr.Load().(error), ErrTaskCancelled)
	assert.Equal(t, 0, registry.Pending())
}

func TestTaskRegistry_CancelWaitsForRunningCommit(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	registry := NewTaskRegistry()
	inCommit := make(chan struct{})

	var finished atomic.Bool
	require.NoError(t, registry.Start("item-1", func(ctx context.Context, task *Task) error {
		return task.Commit(func() error {
			close(inCommit)
			time.Sleep(50 * time.Millisecond)
			finished.Store(true)
			return nil
		})
	}))

	<-inCommit
	registry.Cancel("item-1")
	assert.True(t, finished.Load())
}

func TestTaskRegistry_WaitHonoursContext(t *testing.T) {
	registry := NewTaskRegistry()
	release := make(chan struct{})
	require.NoError(t, registry.Start("item-1", func(ctx context.Context, task *Task) error {
		<-release
		return nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, registry.Wait(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, registry.Wait(context.Background()))
}
