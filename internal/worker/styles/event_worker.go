package styles

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/map-service/internal/domain"
	"github.com/map-service/internal/domain/repository"
	"github.com/map-service/internal/worker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// ConsumerGroup - группа воркеров, обрабатывающих StreamStylesRefresh
	ConsumerGroup = "map-styles-workers"

	maxBatchSize    = 20                     // максимум сообщений за раз
	emptyQueueSleep = 500 * time.Millisecond // пауза если очередь пуста

	// не чаще одного обновления провайдера за refreshEvery по событиям
	refreshEvery = 10 * time.Second
)

// EventWorker обновляет каталоги стилей по событиям из Redis Stream
type EventWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	refresher    Refresher
	consumerName string
	idleSleep    time.Duration
	refreshEvery time.Duration
	limiters     map[string]*rate.Limiter
}

// NewEventWorker создает новый EventWorker
func NewEventWorker(streamRepo repository.StreamRepository, refresher Refresher, logger *zap.Logger) *EventWorker {
	hostname, _ := os.Hostname()

	return &EventWorker{
		BaseWorker:   worker.NewBaseWorker("styles-events", emptyQueueSleep, logger),
		streamRepo:   streamRepo,
		refresher:    refresher,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		idleSleep:    emptyQueueSleep,
		refreshEvery: refreshEvery,
		limiters:     make(map[string]*rate.Limiter),
	}
}

// Start запускает воркер
func (w *EventWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting styles event worker",
		zap.String("consumer_group", ConsumerGroup),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamStylesRefresh, ConsumerGroup); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		processed, err := w.processBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
		}

		if processed > 0 && err == nil {
			continue
		}

		// Очередь пуста или ошибка - короткая пауза
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return nil
		case <-time.After(w.idleSleep):
		}
	}
}

// processBatch читает и обрабатывает batch сообщений.
// Каждый провайдер обновляется один раз на batch, все сообщения подтверждаются:
// упавшее обновление повторит периодический воркер.
func (w *EventWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(ctx, domain.StreamStylesRefresh, ConsumerGroup, w.consumerName, maxBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(messages))
	providers := make([]string, 0, 1)
	seen := make(map[string]struct{})

	for _, msg := range messages {
		ids = append(ids, msg.ID)

		var event domain.StyleRefreshEvent
		if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			continue
		}
		if err := event.Validate(); err != nil {
			logger.Warn("Invalid refresh event, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			continue
		}

		if _, dup := seen[event.Provider]; dup {
			continue
		}
		seen[event.Provider] = struct{}{}
		providers = append(providers, event.Provider)
	}

	for _, slug := range providers {
		if !w.limiter(slug).Allow() {
			logger.Debug("Style refresh throttled", zap.String("provider", slug))
			continue
		}

		styles, err := w.refresher.RefreshStyles(ctx, slug)
		if err != nil {
			logger.Error("Style refresh failed",
				zap.String("provider", slug),
				zap.Error(err))
			continue
		}
		logger.Info("Styles refreshed on request",
			zap.String("provider", slug),
			zap.Int("count", len(styles)))
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamStylesRefresh, ConsumerGroup, ids); err != nil {
		// Не критично - сообщения будут переобработаны
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	return len(messages), nil
}

// limiter возвращает ограничитель частоты для провайдера; вызывается только
// из горутины воркера
func (w *EventWorker) limiter(slug string) *rate.Limiter {
	l, ok := w.limiters[slug]
	if !ok {
		l = rate.NewLimiter(rate.Every(w.refreshEvery), 1)
		w.limiters[slug] = l
	}
	return l
}
