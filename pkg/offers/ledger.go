package offers

import (
	"sort"
	"time"

	"cpv_go/models"
	"cpv_go/pkg/schedule"
)

// ledger.go - учёт занятых моментов публикации. Гарантирует, что у одного
// блогера никакие два активных предложения не делят момент публикации,
// и что недельный лимит канала не превышается.

// activeOffers возвращает активные (нетерминальные) предложения блогера,
// кроме предложения excludeID.
func (e *Engine) activeOffers(bloggerID, excludeID int) ([]models.Offer, error) {
	all, err := e.store.ListOffersByBlogger(bloggerID)
	if err != nil {
		return nil, err
	}
	var out []models.Offer
	for _, o := range all {
		if o.ID == excludeID || o.Status.Terminal() {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// reservedInstants возвращает моменты, уже занятые активными предложениями
// блогера, кроме предложения excludeID.
func (e *Engine) reservedInstants(bloggerID, excludeID int) (map[time.Time]bool, error) {
	active, err := e.activeOffers(bloggerID, excludeID)
	if err != nil {
		return nil, err
	}
	reserved := make(map[time.Time]bool, len(active))
	for _, o := range active {
		reserved[o.ScheduledAt] = true
	}
	return reserved, nil
}

// freeInstants разворачивает расписание канала в окне и убирает занятые
// блогером моменты.
func (e *Engine) freeInstants(ch *models.Channel, from, to time.Time, bloggerID, excludeID int, now time.Time) ([]time.Time, error) {
	reserved, err := e.reservedInstants(bloggerID, excludeID)
	if err != nil {
		return nil, err
	}
	var out []time.Time
	for _, t := range schedule.Expand(ch.ScheduleSlots, from, to, now) {
		if reserved[t] {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// AvailableSlots возвращает моменты, на которые предложение можно перенести:
// свободные слоты расписания внутри окна предложения плюс его собственный
// текущий момент, если он ещё в будущем. Так в списке вариантов всегда есть
// "оставить как есть", хотя формально момент занят самим предложением.
func (e *Engine) AvailableSlots(offerID int) ([]time.Time, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	offer, err := e.store.GetOffer(offerID)
	if err != nil {
		return nil, err
	}
	return e.availableSlots(offer)
}

func (e *Engine) availableSlots(offer *models.Offer) ([]time.Time, error) {
	channel, err := e.store.GetChannel(offer.ChannelID)
	if err != nil {
		return nil, err
	}
	now := e.clock.Now()
	out, err := e.freeInstants(channel, offer.WindowFrom, offer.WindowTo, offer.BloggerID, offer.ID, now)
	if err != nil {
		return nil, err
	}
	if offer.ScheduledAt.After(now) {
		found := false
		for _, t := range out {
			if t.Equal(offer.ScheduledAt) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, offer.ScheduledAt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}
