package offers

import (
	"fmt"
	"strconv"
	"time"

	"cpv_go/models"
)

// decisions.go - переходы, запускаемые решениями владельца канала
// и действиями рекламодателя. Переходы монотонны: терминальный статус
// никогда не покидается и не переназначается.

// Approve переводит предложение в scheduled. Допустимо только пока
// предложение ждёт решения. Дедлайн решения сбрасывается.
func (e *Engine) Approve(offerID int) (*models.Offer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	offer, err := e.store.GetOffer(offerID)
	if err != nil {
		return nil, err
	}
	if !offer.Status.AwaitingDecision() {
		return nil, fmt.Errorf("%w: approve из статуса %s", ErrIllegalState, offer.Status)
	}
	offer.Status = models.StatusScheduled
	offer.DecisionDeadline = nil
	if err := e.store.UpdateOffer(offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// Decline фиксирует отказ владельца. Допустимо только пока предложение
// ждёт решения.
func (e *Engine) Decline(offerID int) (*models.Offer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	offer, err := e.store.GetOffer(offerID)
	if err != nil {
		return nil, err
	}
	if !offer.Status.AwaitingDecision() {
		return nil, fmt.Errorf("%w: decline из статуса %s", ErrIllegalState, offer.Status)
	}
	offer.Status = models.StatusDeclinedByOwner
	offer.DecisionDeadline = nil
	if err := e.store.UpdateOffer(offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// Reschedule переносит публикацию на newInstant. Момент обязан входить
// в AvailableSlots предложения. Если предложение всё ещё в pending_precheck,
// дедлайн решения пересчитывается от нового момента тем же правилом,
// что и при создании (полный сброс, не пропорциональное продление).
func (e *Engine) Reschedule(offerID int, newInstant time.Time) (*models.Offer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	offer, err := e.store.GetOffer(offerID)
	if err != nil {
		return nil, err
	}
	if !offer.Status.AwaitingDecision() {
		return nil, fmt.Errorf("%w: перенос из статуса %s", ErrIllegalState, offer.Status)
	}

	slots, err := e.availableSlots(offer)
	if err != nil {
		return nil, err
	}
	allowed := false
	for _, t := range slots {
		if t.Equal(newInstant) {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: момент %s недоступен для переноса", ErrValidation, newInstant.Format(time.RFC3339))
	}

	offer.ScheduledAt = newInstant
	if offer.Status == models.StatusPendingPrecheck {
		deadline := e.decisionDeadline(newInstant, e.clock.Now())
		offer.DecisionDeadline = &deadline
	}
	if err := e.store.UpdateOffer(offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// CancelByOwner отменяет предложение по инициативе владельца канала.
// Допустимо из любого нетерминального статуса.
func (e *Engine) CancelByOwner(offerID int) (*models.Offer, error) {
	return e.cancel(offerID, models.StatusCancelledByOwner, false)
}

// CancelByAdvertiser отменяет предложение по инициативе рекламодателя.
// Владельцу уходит уведомление об отмене.
func (e *Engine) CancelByAdvertiser(offerID int) (*models.Offer, error) {
	return e.cancel(offerID, models.StatusCancelledByAdvertiser, true)
}

func (e *Engine) cancel(offerID int, to models.OfferStatus, notifyOwner bool) (*models.Offer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	offer, err := e.store.GetOffer(offerID)
	if err != nil {
		return nil, err
	}
	if offer.Status.Terminal() {
		return nil, fmt.Errorf("%w: отмена из статуса %s", ErrIllegalState, offer.Status)
	}
	offer.Status = to
	offer.DecisionDeadline = nil
	if err := e.store.UpdateOffer(offer); err != nil {
		return nil, err
	}
	if notifyOwner {
		if blogger, berr := e.store.GetBlogger(offer.BloggerID); berr == nil {
			e.notify(blogger.TGChatID, NotifyCancelled, map[string]string{
				"offer_id": strconv.Itoa(offer.ID),
			})
		}
	}
	return offer, nil
}
