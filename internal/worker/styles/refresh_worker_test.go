package styles

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/map-service/internal/domain"
	"github.com/map-service/internal/worker"
)

type fakeRefresher struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]bool
}

func newFakeRefresher() *fakeRefresher {
	return &fakeRefresher{calls: map[string]int{}, fail: map[string]bool{}}
}

func (f *fakeRefresher) RefreshStyles(ctx context.Context, slug string) (domain.StyleCatalog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[slug]++
	if f.fail[slug] {
		return nil, errors.New("vendor down")
	}
	return domain.StyleCatalog{"streets-v11": "Streets"}, nil
}

func (f *fakeRefresher) count(slug string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[slug]
}

func TestRefreshWorker_RefreshesOnStartAndTick(t *testing.T) {
	refresher := newFakeRefresher()
	w := NewRefreshWorker(refresher, []string{"mapbox"}, 10*time.Millisecond, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()

	assert.Eventually(t, func() bool { return refresher.count("mapbox") >= 3 }, time.Second, 5*time.Millisecond)

	require.NoError(t, w.Stop())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	assert.True(t, w.IsStopped())
}

func TestRefreshWorker_FailureDoesNotStopOthers(t *testing.T) {
	refresher := newFakeRefresher()
	refresher.fail["broken"] = true
	w := NewRefreshWorker(refresher, []string{"broken", "mapbox"}, time.Hour, zap.NewNop())

	err := w.refreshAll(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken: vendor down")
	assert.Equal(t, 1, refresher.count("mapbox"))
}

func TestRefreshWorker_ContextCancel(t *testing.T) {
	refresher := newFakeRefresher()
	w := NewRefreshWorker(refresher, []string{"mapbox"}, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	assert.Eventually(t, func() bool { return refresher.count("mapbox") == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on context cancel")
	}
}

func TestRefreshWorker_NoProviders(t *testing.T) {
	w := NewRefreshWorker(newFakeRefresher(), nil, time.Minute, zap.NewNop())
	assert.Error(t, w.Start(context.Background()))
}

func TestManager_RunsRefreshWorker(t *testing.T) {
	refresher := newFakeRefresher()
	m := worker.NewManager(zap.NewNop(), time.Second)
	require.NoError(t, m.Register(NewRefreshWorker(refresher, []string{"mapbox"}, time.Hour, zap.NewNop())))
	assert.Equal(t, []string{"styles-refresh"}, m.Names())

	require.NoError(t, m.Start(context.Background()))
	assert.Eventually(t, func() bool { return refresher.count("mapbox") == 1 }, time.Second, 5*time.Millisecond)

	assert.Error(t, m.Register(NewRefreshWorker(refresher, []string{"x"}, time.Hour, zap.NewNop())))
	require.NoError(t, m.Stop())
}
