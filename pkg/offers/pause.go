package offers

import (
	"fmt"
	"time"

	"cpv_go/models"
)

// pause.go - пер-канальная приостановка автоматического создания
// предложений. Пауза проверяется при создании до резервирования слота;
// истёкшие паузы снимает свиппер, отправляя ровно одно уведомление.

// Pause приостанавливает канал на days суток. Доступно только в режиме
// precheck: пауза защищает от автономных публикаций, а в режиме
// manual_approval без явного согласия и так ничего не публикуется.
func (e *Engine) Pause(channelID, days int) (*models.Channel, error) {
	if days < 1 {
		return nil, fmt.Errorf("%w: длительность паузы должна быть не меньше суток", ErrValidation)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	channel, err := e.store.GetChannel(channelID)
	if err != nil {
		return nil, err
	}
	if channel.PostingMode != models.ModePrecheck {
		return nil, fmt.Errorf("%w: пауза недоступна в режиме %s", ErrIllegalState, channel.PostingMode)
	}
	until := e.clock.Now().Add(time.Duration(days) * 24 * time.Hour)
	channel.PauseUntil = &until
	if err := e.store.UpdateChannel(channel); err != nil {
		return nil, err
	}
	return channel, nil
}

// Resume снимает паузу немедленно.
func (e *Engine) Resume(channelID int) (*models.Channel, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	channel, err := e.store.GetChannel(channelID)
	if err != nil {
		return nil, err
	}
	channel.PauseUntil = nil
	if err := e.store.UpdateChannel(channel); err != nil {
		return nil, err
	}
	return channel, nil
}

// IsPaused сообщает, приостановлен ли канал сейчас.
func (e *Engine) IsPaused(channelID int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	channel, err := e.store.GetChannel(channelID)
	if err != nil {
		return false, err
	}
	return channel.IsPaused(e.clock.Now()), nil
}
