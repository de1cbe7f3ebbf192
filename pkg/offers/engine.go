package offers

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"cpv_go/models"
)

// Engine - движок жизненного цикла предложений. Все мутации состояния
// выполняются под одним мьютексом: каждая операция видит целостный снимок
// и завершает переход до того, как уйдут внешние вызовы. Блокирующих
// ожиданий внутри движка нет, всё время приходит через Clock.
//
// Комментарии в коде на русском языке по требованию пользователя

type Engine struct {
	mu             sync.Mutex
	store          Store
	msg            Messenger
	pub            Publisher
	clock          Clock
	precheckWindow time.Duration
}

// DefaultPrecheckWindow - окно решения по умолчанию для режима precheck.
const DefaultPrecheckWindow = 10 * time.Minute

// NewEngine создаёт движок. Нулевое окно precheck заменяется значением
// по умолчанию, nil-часы - системными.
func NewEngine(store Store, msg Messenger, pub Publisher, clock Clock, precheckWindow time.Duration) *Engine {
	if clock == nil {
		clock = SystemClock()
	}
	if precheckWindow <= 0 {
		precheckWindow = DefaultPrecheckWindow
	}
	return &Engine{
		store:          store,
		msg:            msg,
		pub:            pub,
		clock:          clock,
		precheckWindow: precheckWindow,
	}
}

// CreateParams - параметры создания одного предложения.
// SlotIndex выбирает порядковый свободный слот: при пакетном создании
// нескольких предложений для одного блогера вызывающая сторона передаёт
// индекс, чтобы предложения не претендовали на один и тот же момент.
type CreateParams struct {
	BloggerID int
	ChannelID int
	From      time.Time
	To        time.Time
	Price     int
	Text      string
	SlotIndex int
}

// Create создаёт предложение либо мягко пропускает создание с причиной.
// Пропуск (канал на паузе, лимит выбран, нет слотов, блогер недостижим)
// не считается ошибкой и не повторяется автоматически.
func (e *Engine) Create(p CreateParams) (*models.Offer, SkipReason, error) {
	if !p.To.After(p.From) {
		return nil, SkipNone, fmt.Errorf("%w: окно размещения пустое", ErrValidation)
	}
	if p.Price <= 0 {
		return nil, SkipNone, fmt.Errorf("%w: цена должна быть положительной", ErrValidation)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	blogger, err := e.store.GetBlogger(p.BloggerID)
	if err != nil {
		return nil, SkipNone, err
	}
	channel, err := e.store.GetChannel(p.ChannelID)
	if err != nil {
		return nil, SkipNone, err
	}

	now := e.clock.Now()

	if !blogger.Reachable() {
		return nil, SkipNoDelivery, nil
	}
	if channel.IsPaused(now) {
		return nil, SkipPaused, nil
	}

	active, err := e.activeOffers(p.BloggerID, 0)
	if err != nil {
		return nil, SkipNone, err
	}
	if len(active) >= channel.WeeklyPostLimit {
		return nil, SkipLimit, nil
	}

	free, err := e.freeInstants(channel, p.From, p.To, p.BloggerID, 0, now)
	if err != nil {
		return nil, SkipNone, err
	}
	if p.SlotIndex < 0 || p.SlotIndex >= len(free) {
		return nil, SkipNoSlot, nil
	}
	instant := free[p.SlotIndex]

	// Режим публикации фиксируется на момент создания: смена режима канала
	// не меняет политику уже созданных предложений.
	offer := models.Offer{
		BloggerID:       p.BloggerID,
		ChannelID:       p.ChannelID,
		ScheduledAt:     instant,
		WindowFrom:      p.From,
		WindowTo:        p.To,
		Price:           p.Price,
		EstimatedIncome: models.EstimateIncome(p.Price),
		PostingMode:     channel.PostingMode,
		Text:            p.Text,
		CreatedAt:       now,
	}
	if channel.PostingMode == models.ModeManualApproval {
		offer.Status = models.StatusPendingApproval
	} else {
		offer.Status = models.StatusPendingPrecheck
		deadline := e.decisionDeadline(instant, now)
		offer.DecisionDeadline = &deadline
	}

	created, err := e.store.CreateOffer(offer)
	if err != nil {
		return nil, SkipNone, err
	}

	e.notify(blogger.TGChatID, NotifyDecisionPrompt, map[string]string{
		"offer_id":     strconv.Itoa(created.ID),
		"scheduled_at": created.ScheduledAt.Format(time.RFC3339),
		"price":        strconv.Itoa(created.Price),
		"income":       strconv.Itoa(created.EstimatedIncome),
		"mode":         string(created.PostingMode),
	})

	return created, SkipNone, nil
}

// decisionDeadline считает дедлайн решения: now+окно, но не позже момента
// публикации. То же правило применяется при переносе времени.
func (e *Engine) decisionDeadline(scheduledAt, now time.Time) time.Time {
	deadline := now.Add(e.precheckWindow)
	if deadline.After(scheduledAt) {
		return scheduledAt
	}
	return deadline
}

// notify отправляет уведомление и только логирует неудачу:
// судьба предложения от доставки уведомления не зависит.
func (e *Engine) notify(chatID int64, kind NotificationKind, data map[string]string) {
	if e.msg == nil || chatID == 0 {
		return
	}
	if err := e.msg.Notify(chatID, kind, data); err != nil {
		log.Printf("[OFFERS] уведомление %s не доставлено: %v", kind, err)
	}
}
