package offers

import (
	"log"
	"strconv"
	"time"

	"cpv_go/models"
)

// sweeper.go - периодический проход по всем предложениям и каналам,
// применяющий переходы по времени. Проход идемпотентен: терминальные
// предложения не трогаются, повторный запуск сразу после первого ничего
// не меняет. Защиту от наложения проходов обеспечивает вызывающая сторона
// (internal/sweeper запускает Tick через cron с цепочкой SkipIfStillRunning).

// Tick выполняет один проход свиппера.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()

	all, err := e.store.ListOffers()
	if err != nil {
		log.Printf("[SWEEPER] не удалось получить предложения: %v", err)
		return
	}
	for i := range all {
		e.sweepOffer(&all[i], now)
	}

	channels, err := e.store.ListChannels()
	if err != nil {
		log.Printf("[SWEEPER] не удалось получить каналы: %v", err)
		return
	}
	for i := range channels {
		e.sweepChannelPause(&channels[i], now)
	}
}

// sweepOffer применяет к предложению переход, положенный ему по времени.
func (e *Engine) sweepOffer(o *models.Offer, now time.Time) {
	switch o.Status {
	case models.StatusPendingPrecheck:
		// Молчание - согласие: дедлайн прошёл, публикация остаётся в плане.
		if o.DecisionDeadline != nil && !now.Before(*o.DecisionDeadline) {
			o.Status = models.StatusScheduled
			o.DecisionDeadline = nil
			if err := e.store.UpdateOffer(o); err != nil {
				log.Printf("[SWEEPER] автосогласие предложения %d: %v", o.ID, err)
				return
			}
			e.notifyBlogger(o, NotifyAutoApproved)
			// Момент публикации мог уже наступить, пока шло окно решения.
			e.sweepOffer(o, now)
		}
	case models.StatusPendingApproval:
		// Молчание - отказ: без явного согласия ничего не публикуется.
		if now.After(o.ScheduledAt) {
			o.Status = models.StatusArchivedNotPublished
			if err := e.store.UpdateOffer(o); err != nil {
				log.Printf("[SWEEPER] архивирование предложения %d: %v", o.ID, err)
				return
			}
			e.notifyBlogger(o, NotifyArchived)
		}
	case models.StatusScheduled:
		if now.After(o.ScheduledAt) {
			e.publishAtDeadline(o)
		}
	}
}

// publishAtDeadline выполняет автономную публикацию. Неудача терминальна:
// повторная попытка грозит двойным платным размещением.
func (e *Engine) publishAtDeadline(o *models.Offer) {
	channel, err := e.store.GetChannel(o.ChannelID)
	if err != nil {
		log.Printf("[SWEEPER] канал предложения %d не найден: %v", o.ID, err)
		return
	}

	url, err := e.pub.Publish(channel.TGChannelID, markedText(o.Text))
	if err != nil {
		log.Printf("[SWEEPER] публикация предложения %d не удалась: %v", o.ID, err)
		o.Status = models.StatusPublishFailed
		if uerr := e.store.UpdateOffer(o); uerr != nil {
			log.Printf("[SWEEPER] фиксация publish_failed для %d: %v", o.ID, uerr)
			return
		}
		e.notifyBlogger(o, NotifyPublishFailed)
		return
	}

	o.Status = models.StatusRewarded
	o.DeliveryURL = url
	if err := e.store.UpdateOffer(o); err != nil {
		log.Printf("[SWEEPER] фиксация rewarded для %d: %v", o.ID, err)
		return
	}
	log.Printf("[SWEEPER] предложение %d опубликовано: %s", o.ID, url)
	e.notifyBlogger(o, NotifyPublished)
}

// sweepChannelPause снимает истёкшую паузу и отправляет ровно одно
// уведомление: после очистки pause_until повторного срабатывания не будет.
func (e *Engine) sweepChannelPause(ch *models.Channel, now time.Time) {
	if ch.PauseUntil == nil || ch.PauseUntil.After(now) {
		return
	}
	ch.PauseUntil = nil
	if err := e.store.UpdateChannel(ch); err != nil {
		log.Printf("[SWEEPER] снятие паузы канала %d: %v", ch.ID, err)
		return
	}
	if blogger, err := e.store.GetBlogger(ch.BloggerID); err == nil {
		e.notify(blogger.TGChatID, NotifyPauseResumed, map[string]string{
			"channel_id": strconv.Itoa(ch.ID),
			"title":      ch.Title,
		})
	}
}

func (e *Engine) notifyBlogger(o *models.Offer, kind NotificationKind) {
	blogger, err := e.store.GetBlogger(o.BloggerID)
	if err != nil {
		return
	}
	data := map[string]string{
		"offer_id":     strconv.Itoa(o.ID),
		"scheduled_at": o.ScheduledAt.Format(time.RFC3339),
	}
	if o.DeliveryURL != "" {
		data["url"] = o.DeliveryURL
	}
	e.notify(blogger.TGChatID, kind, data)
}

// markedText добавляет к тексту обязательную рекламную пометку.
func markedText(text string) string {
	return text + "\n\n#реклама"
}
