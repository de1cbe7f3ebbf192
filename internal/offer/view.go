package offer

import (
	"time"

	"cpv_go/models"
)

// view.go - представление предложения для API. Подсказка "что спросить
// у владельца дальше" не хранится в домене, а выводится из статуса здесь,
// на границе.

// Экранные подсказки для клиента (бот или дашборд).
const (
	PromptMain        = "main"         // показать предложение и кнопки решения
	PromptPickingTime = "picking-time" // показать выбор нового времени
	PromptNone        = ""             // решений больше не требуется
)

// Summary - ответ API по одному предложению.
type Summary struct {
	ID               int        `json:"id"`
	BloggerID        int        `json:"blogger_id"`
	ChannelID        int        `json:"channel_id"`
	Status           string     `json:"status"`
	ScheduledAt      time.Time  `json:"scheduled_at"`
	Price            int        `json:"price"`
	EstimatedIncome  int        `json:"estimated_income"`
	PostingMode      string     `json:"posting_mode"`
	DecisionDeadline *time.Time `json:"decision_deadline,omitempty"`
	DeliveryURL      string     `json:"delivery_url,omitempty"`
	NextPrompt       string     `json:"next_prompt,omitempty"`
}

// NextPrompt выводит подсказку из статуса: пока предложение ждёт решения,
// владельцу показывается основной экран, иначе спрашивать нечего.
func NextPrompt(status models.OfferStatus) string {
	if status.AwaitingDecision() {
		return PromptMain
	}
	return PromptNone
}

// Summarize собирает ответ API из доменной записи.
func Summarize(o *models.Offer) Summary {
	return Summary{
		ID:               o.ID,
		BloggerID:        o.BloggerID,
		ChannelID:        o.ChannelID,
		Status:           string(o.Status),
		ScheduledAt:      o.ScheduledAt,
		Price:            o.Price,
		EstimatedIncome:  o.EstimatedIncome,
		PostingMode:      string(o.PostingMode),
		DecisionDeadline: o.DecisionDeadline,
		DeliveryURL:      o.DeliveryURL,
		NextPrompt:       NextPrompt(o.Status),
	}
}
