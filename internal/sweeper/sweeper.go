package sweeper

import (
	"log"
	"time"

	"cpv_go/pkg/offers"

	"github.com/robfig/cron/v3"
)

// Пакет sweeper запускает периодический проход движка. Наложение проходов
// исключает цепочка SkipIfStillRunning: тик, пришедший во время работы
// предыдущего, просто отбрасывается, очередь не копится.
//
// Комментарии в коде на русском языке по требованию пользователя

type Sweeper struct {
	engine *offers.Engine
	cron   *cron.Cron
}

// New создаёт свиппер с фиксированным интервалом тика.
func New(engine *offers.Engine, interval time.Duration) *Sweeper {
	c := cron.New(
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	if _, err := c.AddFunc("@every "+interval.String(), engine.Tick); err != nil {
		// Интервал собирается из конфигурации и проходит валидацию,
		// сюда можно попасть только из-за ошибки программиста.
		log.Fatalf("[SWEEPER] регистрация тика: %v", err)
	}
	return &Sweeper{engine: engine, cron: c}
}

// Start запускает периодические тики в фоне.
func (s *Sweeper) Start() {
	s.cron.Start()
	log.Printf("[SWEEPER] периодический проход запущен")
}

// Stop останавливает тики и дожидается завершения текущего прохода.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
