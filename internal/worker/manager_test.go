package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type blockingWorker struct {
	*BaseWorker
	ignoreStop bool
}

func (w *blockingWorker) Start(ctx context.Context) error {
	if w.ignoreStop {
		<-ctx.Done()
		return nil
	}
	select {
	case <-ctx.Done():
	case <-w.StopChan():
	}
	return nil
}

func TestManager_NoWorkers(t *testing.T) {
	m := NewManager(zap.NewNop(), 0)
	assert.Error(t, m.Start(context.Background()))
}

func TestManager_StartStop(t *testing.T) {
	m := NewManager(zap.NewNop(), time.Second)
	w := &blockingWorker{BaseWorker: NewBaseWorker("blocking", time.Minute, zap.NewNop())}
	require.NoError(t, m.Register(w))

	require.NoError(t, m.Start(context.Background()))
	assert.Error(t, m.Start(context.Background()))

	require.NoError(t, m.Stop())
	assert.True(t, w.IsStopped())
	// повторная остановка безопасна
	require.NoError(t, w.Stop())
}

func TestManager_StopTimeout(t *testing.T) {
	m := NewManager(zap.NewNop(), 20*time.Millisecond)
	w := &blockingWorker{BaseWorker: NewBaseWorker("stuck", time.Minute, zap.NewNop()), ignoreStop: true}
	require.NoError(t, m.Register(w))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Start(ctx))

	assert.Error(t, m.Stop())
}

func TestBaseWorker_RunEvery(t *testing.T) {
	w := NewBaseWorker("ticker", 5*time.Millisecond, zap.NewNop())

	calls := 0
	go func() {
		time.Sleep(30 * time.Millisecond)
		_ = w.Stop()
	}()

	err := w.RunEvery(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, calls, 2)
}
