package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamStylesRefresh = "stream:maps:styles:refresh"
)

// StyleRefreshEvent - запрос на обновление каталога стилей провайдера.
// Публикуется при смене аккаунта или ключа в настройках.
type StyleRefreshEvent struct {
	EventID     uuid.UUID `json:"event_id"`
	Provider    string    `json:"provider"`
	Reason      string    `json:"reason,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// NewStyleRefreshEvent создает событие с новым идентификатором
func NewStyleRefreshEvent(provider, reason string) StyleRefreshEvent {
	return StyleRefreshEvent{
		EventID:     uuid.New(),
		Provider:    provider,
		Reason:      reason,
		RequestedAt: time.Now().UTC(),
	}
}

// Validate проверяет обязательные поля
func (e *StyleRefreshEvent) Validate() error {
	if e.Provider == "" {
		return fmt.Errorf("style refresh event %s: empty provider", e.EventID)
	}
	return nil
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
