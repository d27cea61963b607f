package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// BaseWorker содержит общую логику периодических воркеров
type BaseWorker struct {
	name     string
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewBaseWorker создает новый BaseWorker
func NewBaseWorker(name string, interval time.Duration, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:     name,
		interval: interval,
		logger:   logger.With(zap.String("worker", name)),
		stopChan: make(chan struct{}),
	}
}

// Name возвращает имя воркера
func (w *BaseWorker) Name() string {
	return w.name
}

// Interval возвращает период запуска
func (w *BaseWorker) Interval() time.Duration {
	return w.interval
}

// Stop останавливает воркер; повторный вызов ничего не делает
func (w *BaseWorker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}

	w.logger.Info("Stopping worker")
	close(w.stopChan)
	w.stopped = true

	return nil
}

// IsStopped проверяет, остановлен ли воркер
func (w *BaseWorker) IsStopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}

// StopChan возвращает канал остановки
func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

// Logger возвращает логгер с именем воркера
func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}

// RunEvery вызывает tick сразу и затем каждый interval, пока не отменен ctx
// или не вызван Stop. Ошибка tick логируется и не прерывает цикл.
func (w *BaseWorker) RunEvery(ctx context.Context, tick func(ctx context.Context) error) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := tick(ctx); err != nil {
			w.logger.Warn("Worker iteration failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			w.logger.Info("Worker context cancelled")
			return nil
		case <-w.stopChan:
			return nil
		case <-ticker.C:
		}
	}
}
