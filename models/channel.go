package models

import (
	"sort"
	"time"
)

// PostingMode определяет политику публикации канала.
// precheck: молчание владельца считается согласием, система публикует сама.
// manual_approval: без явного согласия владельца ничего не публикуется.
type PostingMode string

const (
	ModePrecheck       PostingMode = "precheck"
	ModeManualApproval PostingMode = "manual_approval"
)

// Valid проверяет, что режим входит в допустимый набор.
func (m PostingMode) Valid() bool {
	return m == ModePrecheck || m == ModeManualApproval
}

// ScheduleSlot - повторяющийся еженедельный слот публикации.
// day: 1 (понедельник) .. 7 (воскресенье), hour: 0..23.
type ScheduleSlot struct {
	Day  int `json:"day"`
	Hour int `json:"hour"`
}

// Границы недельного лимита публикаций, как в админке канала.
const (
	WeeklyLimitMin     = 1
	WeeklyLimitMax     = 28
	WeeklyLimitDefault = 7
)

// Channel описывает канал блогера с расписанием размещений
// schedule_slots - набор (день, час) еженедельных слотов, после нормализации никогда не пуст
// weekly_post_limit - максимум активных размещений блогера, 1..28
// pause_until - до какого момента канал приостановлен (nil - не приостановлен)
// tg_channel_id - чат Telegram, в который публикуются размещения
//
// Комментарии в коде на русском языке по требованию пользователя

type Channel struct {
	ID              int            `json:"id"`
	BloggerID       int            `json:"blogger_id"`
	Title           string         `json:"title"`
	TGChannelID     int64          `json:"tg_channel_id"`
	PostingMode     PostingMode    `json:"posting_mode"`
	WeeklyPostLimit int            `json:"weekly_post_limit"`
	ScheduleSlots   []ScheduleSlot `json:"schedule_slots"`
	PauseUntil      *time.Time     `json:"pause_until,omitempty"`
}

// DefaultScheduleSlots возвращает расписание по умолчанию:
// каждый день с 10:00 до 19:00, как в демо-канале.
func DefaultScheduleSlots() []ScheduleSlot {
	var slots []ScheduleSlot
	for day := 1; day <= 7; day++ {
		for hour := 10; hour <= 19; hour++ {
			slots = append(slots, ScheduleSlot{Day: day, Hour: hour})
		}
	}
	return slots
}

// NormalizeScheduleSlots отбрасывает некорректные пары, убирает дубликаты
// и сортирует слоты по дню и часу. Пустой результат заменяется расписанием
// по умолчанию, чтобы расписание канала никогда не оказалось пустым.
func NormalizeScheduleSlots(input []ScheduleSlot) []ScheduleSlot {
	seen := make(map[ScheduleSlot]bool)
	var out []ScheduleSlot
	for _, s := range input {
		if s.Day < 1 || s.Day > 7 || s.Hour < 0 || s.Hour > 23 {
			continue
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	if len(out) == 0 {
		return DefaultScheduleSlots()
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Hour < out[j].Hour
	})
	return out
}

// NormalizeWeeklyLimit приводит лимит к допустимому диапазону.
// Значение вне диапазона заменяется лимитом по умолчанию.
func NormalizeWeeklyLimit(limit int) int {
	if limit < WeeklyLimitMin || limit > WeeklyLimitMax {
		return WeeklyLimitDefault
	}
	return limit
}

// IsPaused сообщает, приостановлен ли канал в указанный момент.
func (c *Channel) IsPaused(now time.Time) bool {
	return c.PauseUntil != nil && c.PauseUntil.After(now)
}
