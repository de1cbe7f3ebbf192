package schedule

import (
	"sort"
	"time"

	"cpv_go/models"
)

// Пакет schedule разворачивает еженедельное расписание канала в конкретные
// моменты публикации. Функция чистая: одинаковые аргументы всегда дают
// одинаковый результат, поэтому календарь тестируется отдельно от движка.
//
// Комментарии в коде на русском языке по требованию пользователя

// SafetyMargin - минимальный запас до момента публикации.
// Слоты ближе этого запаса к текущему времени не предлагаются.
const SafetyMargin = 30 * time.Second

// isoWeekday переводит time.Weekday в номер дня 1 (понедельник) .. 7 (воскресенье).
func isoWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

// Expand разворачивает слоты расписания в упорядоченный список моментов
// внутри окна [from, to]. Моменты не позже now+SafetyMargin отбрасываются,
// дубликаты удаляются.
func Expand(slots []models.ScheduleSlot, from, to, now time.Time) []time.Time {
	if to.Before(from) {
		return nil
	}

	hoursByDay := make(map[int][]int)
	for _, s := range slots {
		if s.Day < 1 || s.Day > 7 || s.Hour < 0 || s.Hour > 23 {
			continue
		}
		hoursByDay[s.Day] = append(hoursByDay[s.Day], s.Hour)
	}

	earliest := now.Add(SafetyMargin)
	seen := make(map[time.Time]bool)
	var out []time.Time

	// Идём по календарным дням окна и применяем часы подходящего дня недели.
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	for !day.After(to) {
		for _, hour := range hoursByDay[isoWeekday(day.Weekday())] {
			instant := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
			if !instant.After(earliest) {
				continue
			}
			if instant.Before(from) || instant.After(to) {
				continue
			}
			if seen[instant] {
				continue
			}
			seen[instant] = true
			out = append(out, instant)
		}
		day = day.AddDate(0, 0, 1)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
