package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Publisher публикует рекламный текст в канал. Одна попытка на размещение:
// решение не повторять неудачные публикации принимает движок.
type Publisher struct {
	api *tgbotapi.BotAPI
}

func NewPublisher(api *tgbotapi.BotAPI) *Publisher {
	return &Publisher{api: api}
}

// Publish отправляет пост и возвращает ссылку на него.
// Для каналов с username ссылка вида t.me/<username>/<id>,
// для приватных - t.me/c/<внутренний id>/<id>.
func (p *Publisher) Publish(destination int64, text string) (string, error) {
	msg := tgbotapi.NewMessage(destination, text)
	sent, err := p.api.Send(msg)
	if err != nil {
		return "", err
	}
	username := ""
	if sent.Chat != nil {
		username = sent.Chat.UserName
	}
	return postLink(username, destination, sent.MessageID), nil
}

// postLink строит публичную ссылку на пост. Для каналов без username
// внутренний ID получается отбрасыванием префикса -100.
func postLink(username string, destination int64, messageID int) string {
	if username != "" {
		return fmt.Sprintf("https://t.me/%s/%d", username, messageID)
	}
	internal := destination
	if internal < 0 {
		internal = -internal
		if internal > 1000000000000 {
			internal -= 1000000000000
		}
	}
	return fmt.Sprintf("https://t.me/c/%d/%d", internal, messageID)
}
