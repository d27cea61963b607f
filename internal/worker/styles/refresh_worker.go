package styles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/map-service/internal/domain"
	"github.com/map-service/internal/worker"
	"go.uber.org/zap"
)

// Refresher обновляет каталог стилей провайдера в кеше
type Refresher interface {
	RefreshStyles(ctx context.Context, slug string) (domain.StyleCatalog, error)
}

// RefreshWorker периодически обновляет каталоги стилей, чтобы запросы
// к /styles обслуживались из кеша
type RefreshWorker struct {
	*worker.BaseWorker
	refresher Refresher
	providers []string
	timeout   time.Duration
}

// NewRefreshWorker создает воркер обновления стилей
func NewRefreshWorker(refresher Refresher, providers []string, interval time.Duration, logger *zap.Logger) *RefreshWorker {
	return &RefreshWorker{
		BaseWorker: worker.NewBaseWorker("styles-refresh", interval, logger),
		refresher:  refresher,
		providers:  providers,
		timeout:    30 * time.Second,
	}
}

// Start запускает цикл обновления
func (w *RefreshWorker) Start(ctx context.Context) error {
	if len(w.providers) == 0 {
		return fmt.Errorf("no providers to refresh")
	}

	w.Logger().Info("Styles refresh worker started",
		zap.Strings("providers", w.providers),
		zap.Duration("interval", w.Interval()))

	return w.RunEvery(ctx, w.refreshAll)
}

// refreshAll обновляет всех провайдеров; сбой одного не мешает остальным
func (w *RefreshWorker) refreshAll(ctx context.Context) error {
	var errs []error
	for _, slug := range w.providers {
		if w.IsStopped() || ctx.Err() != nil {
			break
		}

		callCtx, cancel := context.WithTimeout(ctx, w.timeout)
		styles, err := w.refresher.RefreshStyles(callCtx, slug)
		cancel()

		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", slug, err))
			continue
		}
		w.Logger().Debug("Provider styles refreshed",
			zap.String("provider", slug),
			zap.Int("count", len(styles)))
	}
	return errors.Join(errs...)
}
