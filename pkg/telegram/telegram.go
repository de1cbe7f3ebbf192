package telegram

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Пакет telegram - исходящая граница движка: уведомления блогерам
// и публикация размещений через Bot API.
//
// Комментарии в коде на русском языке по требованию пользователя

// NewBot подключается к Bot API и логирует имя бота.
func NewBot(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Printf("[TELEGRAM] бот @%s подключён", api.Self.UserName)
	return api, nil
}
