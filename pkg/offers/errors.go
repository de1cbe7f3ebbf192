package offers

import "errors"

// Ошибки движка. Хендлеры переводят их в HTTP-статусы:
// ErrNotFound -> 404, ErrIllegalState -> 409, ErrValidation -> 400.
var (
	ErrNotFound     = errors.New("объект не найден")
	ErrIllegalState = errors.New("действие недопустимо в текущем статусе")
	ErrValidation   = errors.New("некорректные данные")
)

// SkipReason - причина, по которой создание предложения пропущено.
// Пропуск не ошибка: он возвращается в составе частичного результата
// пакетного создания.
type SkipReason string

const (
	SkipNone       SkipReason = ""
	SkipPaused     SkipReason = "paused"
	SkipLimit      SkipReason = "limit filled"
	SkipNoSlot     SkipReason = "no slot in window"
	SkipNoDelivery SkipReason = "no delivery address"
)
