package models

// Blogger описывает владельца канала, которому отправляются предложения
// tg_chat_id - личный чат блогера с ботом, туда уходят уведомления
// username - имя в Telegram для отображения в админке
//
// Комментарии в коде на русском языке по требованию пользователя

type Blogger struct {
	ID       int    `json:"id"`
	TGChatID int64  `json:"tg_chat_id"`
	Username string `json:"username"`
}

// Reachable сообщает, можно ли доставить блогеру уведомление.
// Блогер без чата с ботом считается недостижимым.
func (b *Blogger) Reachable() bool {
	return b != nil && b.TGChatID != 0
}
