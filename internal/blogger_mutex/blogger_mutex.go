package blogger_mutex

import (
	"fmt"
	"log"
	"sync"
)

// Пакет blogger_mutex сериализует пакетное создание предложений для одного
// блогера: два одновременных пакета не должны перемежаться при выборе
// слотов. Блокировка берётся без ожидания - занятый блогер означает,
// что конкурирующий запрос уже работает, и второй отклоняется.
//
// Комментарии в коде на русском языке по требованию пользователя

var (
	globalMu     sync.Mutex
	bloggerLocks = make(map[int]*sync.Mutex)
)

// LockBlogger пытается захватить мьютекс для указанного блогера.
// Если блогер уже занят другим пакетом, возвращается ошибка.
func LockBlogger(bloggerID int) error {
	globalMu.Lock()
	lock, ok := bloggerLocks[bloggerID]
	if !ok {
		lock = &sync.Mutex{}
		bloggerLocks[bloggerID] = lock
	}
	globalMu.Unlock()

	if !lock.TryLock() {
		log.Printf("[MUTEX] блогер %d занят другим пакетом", bloggerID)
		return fmt.Errorf("блогер %d уже обрабатывается", bloggerID)
	}
	return nil
}

// UnlockBlogger освобождает мьютекс для указанного блогера.
func UnlockBlogger(bloggerID int) {
	globalMu.Lock()
	lock := bloggerLocks[bloggerID]
	globalMu.Unlock()
	if lock != nil {
		lock.Unlock()
	}
}
