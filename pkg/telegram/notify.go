package telegram

import (
	"fmt"

	"cpv_go/pkg/offers"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Messenger отправляет блогерам служебные уведомления через Bot API.
type Messenger struct {
	api *tgbotapi.BotAPI
}

func NewMessenger(api *tgbotapi.BotAPI) *Messenger {
	return &Messenger{api: api}
}

// Notify собирает текст по виду уведомления и отправляет его в личный чат.
func (m *Messenger) Notify(chatID int64, kind offers.NotificationKind, data map[string]string) error {
	msg := tgbotapi.NewMessage(chatID, renderNotification(kind, data))
	_, err := m.api.Send(msg)
	return err
}

// renderNotification - тексты уведомлений. Следующий вопрос владельцу
// выводится из вида уведомления, отдельное состояние диалога не хранится.
func renderNotification(kind offers.NotificationKind, data map[string]string) string {
	switch kind {
	case offers.NotifyDecisionPrompt:
		return fmt.Sprintf(
			"Новое предложение размещения #%s на %s.\nЦена: %s ₽, ваш доход: %s ₽.\nОтветьте: принять, отказаться или перенести время.",
			data["offer_id"], data["scheduled_at"], data["price"], data["income"],
		)
	case offers.NotifyAutoApproved:
		return fmt.Sprintf("Предложение #%s принято автоматически: окно решения истекло. Публикация в %s.", data["offer_id"], data["scheduled_at"])
	case offers.NotifyArchived:
		return fmt.Sprintf("Предложение #%s не подтверждено вовремя и снято с публикации.", data["offer_id"])
	case offers.NotifyPublished:
		return fmt.Sprintf("Размещение #%s опубликовано: %s", data["offer_id"], data["url"])
	case offers.NotifyPublishFailed:
		return fmt.Sprintf("Размещение #%s не удалось опубликовать. Повторной попытки не будет.", data["offer_id"])
	case offers.NotifyCancelled:
		return fmt.Sprintf("Рекламодатель отменил размещение #%s.", data["offer_id"])
	case offers.NotifyPauseResumed:
		return fmt.Sprintf("Пауза канала «%s» завершена, приём предложений возобновлён.", data["title"])
	}
	return fmt.Sprintf("Уведомление %s по предложению #%s.", kind, data["offer_id"])
}
