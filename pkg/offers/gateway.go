package offers

// NotificationKind - вид уведомления, отправляемого блогеру.
// Конкретный текст собирает реализация Messenger, движок передаёт только
// вид и данные.
type NotificationKind string

const (
	NotifyDecisionPrompt NotificationKind = "decision_prompt" // новое предложение, нужно решение
	NotifyAutoApproved   NotificationKind = "auto_approved"   // молчание засчитано как согласие
	NotifyArchived       NotificationKind = "archived"        // время вышло без явного согласия
	NotifyPublished      NotificationKind = "published"       // размещение опубликовано
	NotifyPublishFailed  NotificationKind = "publish_failed"  // публикация не удалась
	NotifyCancelled      NotificationKind = "cancelled"       // рекламодатель отменил размещение
	NotifyPauseResumed   NotificationKind = "pause_resumed"   // пауза канала истекла
)

// Messenger отправляет блогеру служебные уведомления.
// Ошибка отправки не меняет состояние движка и только логируется.
type Messenger interface {
	Notify(chatID int64, kind NotificationKind, data map[string]string) error
}

// Publisher публикует рекламный текст в канал и возвращает ссылку на пост.
// Ошибка публикации терминальна: повторная попытка грозит двойным платным
// размещением, поэтому движок её не делает.
type Publisher interface {
	Publish(destination int64, text string) (string, error)
}
