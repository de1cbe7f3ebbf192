package models

import "time"

// OfferStatus - статус предложения о размещении.
// Переходы монотонны: терминальный статус никогда не покидается.
type OfferStatus string

const (
	StatusPendingPrecheck       OfferStatus = "pending_precheck"
	StatusPendingApproval       OfferStatus = "pending_approval"
	StatusScheduled             OfferStatus = "scheduled"
	StatusRewarded              OfferStatus = "rewarded"
	StatusDeclinedByOwner       OfferStatus = "declined_by_owner"
	StatusCancelledByAdvertiser OfferStatus = "cancelled_by_advertiser"
	StatusCancelledByOwner      OfferStatus = "cancelled_by_owner"
	StatusArchivedNotPublished  OfferStatus = "archived_not_published"
	StatusPublishFailed         OfferStatus = "publish_failed"
)

// Terminal сообщает, достигло ли предложение конечного статуса.
// Активными считаются только pending_precheck, pending_approval и scheduled.
func (s OfferStatus) Terminal() bool {
	switch s {
	case StatusPendingPrecheck, StatusPendingApproval, StatusScheduled:
		return false
	}
	return true
}

// AwaitingDecision сообщает, ждёт ли предложение решения владельца.
func (s OfferStatus) AwaitingDecision() bool {
	return s == StatusPendingPrecheck || s == StatusPendingApproval
}

// Комиссия площадки, удерживаемая с цены размещения.
const payoutCommissionPercent = 20

// Offer описывает одно предложение платного размещения
// blogger_id и channel_id связывают предложение с владельцем и каналом
// scheduled_at - выбранный момент публикации
// window_from/window_to - окно доступности, заданное при создании; из него
// берутся варианты при переносе времени
// price - цена размещения (CPV, руб.), estimated_income - ожидаемый доход блогера
// posting_mode фиксируется при создании и не меняется вместе с каналом
// decision_deadline имеет смысл только в статусе pending_precheck
// delivery_url - ссылка на опубликованный пост, заполняется после публикации
// Предложения никогда не удаляются: терминальные записи остаются историей
//
// Комментарии в коде на русском языке по требованию пользователя

type Offer struct {
	ID               int         `json:"id"`
	BloggerID        int         `json:"blogger_id"`
	ChannelID        int         `json:"channel_id"`
	Status           OfferStatus `json:"status"`
	ScheduledAt      time.Time   `json:"scheduled_at"`
	WindowFrom       time.Time   `json:"window_from"`
	WindowTo         time.Time   `json:"window_to"`
	Price            int         `json:"price"`
	EstimatedIncome  int         `json:"estimated_income"`
	PostingMode      PostingMode `json:"posting_mode"`
	DecisionDeadline *time.Time  `json:"decision_deadline,omitempty"`
	Text             string      `json:"text"`
	DeliveryURL      string      `json:"delivery_url,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}

// EstimateIncome вычисляет ожидаемый доход блогера: цена минус комиссия
// площадки, округление вниз до целого рубля.
func EstimateIncome(price int) int {
	return price * (100 - payoutCommissionPercent) / 100
}
