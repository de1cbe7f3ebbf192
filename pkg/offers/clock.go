package offers

import "time"

// Clock абстрагирует доступ к текущему времени, чтобы дедлайны считались
// в одном месте, а свиппер тестировался с подставным временем.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock возвращает часы, читающие настоящее время.
func SystemClock() Clock { return systemClock{} }
