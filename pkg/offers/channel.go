package offers

import (
	"fmt"

	"cpv_go/models"
)

// channel.go - операции над настройками канала. Изменение режима
// не трогает уже созданные предложения: их режим зафиксирован при создании.

// SetChannelMode переключает политику публикации канала.
func (e *Engine) SetChannelMode(channelID int, mode models.PostingMode) (*models.Channel, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: неизвестный режим %q", ErrValidation, mode)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	channel, err := e.store.GetChannel(channelID)
	if err != nil {
		return nil, err
	}
	channel.PostingMode = mode
	if err := e.store.UpdateChannel(channel); err != nil {
		return nil, err
	}
	return channel, nil
}

// SetChannelSchedule заменяет расписание и недельный лимит канала.
// Слоты нормализуются (мусор отбрасывается, пустота заменяется расписанием
// по умолчанию), лимит приводится к диапазону 1..28.
func (e *Engine) SetChannelSchedule(channelID int, slots []models.ScheduleSlot, weeklyLimit int) (*models.Channel, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	channel, err := e.store.GetChannel(channelID)
	if err != nil {
		return nil, err
	}
	channel.ScheduleSlots = models.NormalizeScheduleSlots(slots)
	channel.WeeklyPostLimit = models.NormalizeWeeklyLimit(weeklyLimit)
	if err := e.store.UpdateChannel(channel); err != nil {
		return nil, err
	}
	return channel, nil
}
