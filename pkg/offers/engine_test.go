package offers_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"cpv_go/models"
	"cpv_go/pkg/offers"
	"cpv_go/pkg/storage"
)

// Тесты движка работают на хранилище в памяти, подставных часах
// и шлюзах-заглушках: внешних зависимостей нет.

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// recorderMessenger запоминает отправленные уведомления.
type recorderMessenger struct {
	mu    sync.Mutex
	kinds []offers.NotificationKind
}

func (m *recorderMessenger) Notify(chatID int64, kind offers.NotificationKind, data map[string]string) error {
	m.mu.Lock()
	m.kinds = append(m.kinds, kind)
	m.mu.Unlock()
	return nil
}

func (m *recorderMessenger) count(kind offers.NotificationKind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, k := range m.kinds {
		if k == kind {
			n++
		}
	}
	return n
}

// stubPublisher считает попытки публикации и по желанию отказывает.
type stubPublisher struct {
	fail  bool
	calls int
}

func (p *stubPublisher) Publish(destination int64, text string) (string, error) {
	p.calls++
	if p.fail {
		return "", errors.New("публикация отклонена")
	}
	return "https://t.me/c/1/1", nil
}

// env - собранный движок с окружением одного блогера и одного канала.
type env struct {
	store   *storage.Memory
	clock   *fakeClock
	msg     *recorderMessenger
	pub     *stubPublisher
	engine  *offers.Engine
	blogger *models.Blogger
	channel *models.Channel
}

// mondayMorning - понедельник 5 января 2026, 08:00 UTC.
var mondayMorning = time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

func newEnv(t *testing.T, mode models.PostingMode, weeklyLimit int, precheckWindow time.Duration) *env {
	t.Helper()
	store := storage.NewMemory()
	blogger, err := store.CreateBlogger(models.Blogger{TGChatID: 100, Username: "demo_admin"})
	if err != nil {
		t.Fatalf("создание блогера: %v", err)
	}
	channel, err := store.CreateChannel(models.Channel{
		BloggerID:       blogger.ID,
		Title:           "Демо канал",
		TGChannelID:     -1001234567890,
		PostingMode:     mode,
		WeeklyPostLimit: weeklyLimit,
	})
	if err != nil {
		t.Fatalf("создание канала: %v", err)
	}
	clock := &fakeClock{now: mondayMorning}
	msg := &recorderMessenger{}
	pub := &stubPublisher{}
	engine := offers.NewEngine(store, msg, pub, clock, precheckWindow)
	return &env{store: store, clock: clock, msg: msg, pub: pub, engine: engine, blogger: blogger, channel: channel}
}

func (e *env) create(t *testing.T, slotIndex int) (*models.Offer, offers.SkipReason) {
	t.Helper()
	o, reason, err := e.engine.Create(offers.CreateParams{
		BloggerID: e.blogger.ID,
		ChannelID: e.channel.ID,
		From:      e.clock.Now(),
		To:        e.clock.Now().Add(48 * time.Hour),
		Price:     1000,
		Text:      "Рекламный пост",
		SlotIndex: slotIndex,
	})
	if err != nil {
		t.Fatalf("создание предложения: %v", err)
	}
	return o, reason
}

func (e *env) offerStatus(t *testing.T, id int) models.OfferStatus {
	t.Helper()
	o, err := e.store.GetOffer(id)
	if err != nil {
		t.Fatalf("чтение предложения %d: %v", id, err)
	}
	return o.Status
}

// TestCreate_LimitFilled - сценарий A: при недельном лимите 1 второе
// предложение того же блогера пропускается с причиной "limit filled".
func TestCreate_LimitFilled(t *testing.T) {
	e := newEnv(t, models.ModePrecheck, 1, time.Hour)

	first, reason := e.create(t, 0)
	if reason != offers.SkipNone {
		t.Fatalf("первое предложение пропущено: %s", reason)
	}
	if first.Status != models.StatusPendingPrecheck {
		t.Fatalf("ожидался pending_precheck, получено %s", first.Status)
	}

	second, reason := e.create(t, 1)
	if second != nil || reason != offers.SkipLimit {
		t.Fatalf("ожидался пропуск limit filled, получено %v / %s", second, reason)
	}
}

// TestCreate_DistinctInstants проверяет, что активные предложения одного
// блогера никогда не делят момент публикации.
func TestCreate_DistinctInstants(t *testing.T) {
	e := newEnv(t, models.ModePrecheck, 5, time.Hour)

	first, _ := e.create(t, 0)
	second, reason := e.create(t, 0)
	if reason != offers.SkipNone {
		t.Fatalf("второе предложение пропущено: %s", reason)
	}
	if first.ScheduledAt.Equal(second.ScheduledAt) {
		t.Fatalf("два активных предложения получили один момент: %v", first.ScheduledAt)
	}
}

// TestCreate_NoDeliveryAddress проверяет пропуск для блогера без чата с ботом.
func TestCreate_NoDeliveryAddress(t *testing.T) {
	e := newEnv(t, models.ModePrecheck, 5, time.Hour)
	silent, err := e.store.CreateBlogger(models.Blogger{Username: "unreachable"})
	if err != nil {
		t.Fatalf("создание блогера: %v", err)
	}
	ch, err := e.store.CreateChannel(models.Channel{BloggerID: silent.ID, PostingMode: models.ModePrecheck, WeeklyPostLimit: 5})
	if err != nil {
		t.Fatalf("создание канала: %v", err)
	}
	_, reason, err := e.engine.Create(offers.CreateParams{
		BloggerID: silent.ID,
		ChannelID: ch.ID,
		From:      e.clock.Now(),
		To:        e.clock.Now().Add(24 * time.Hour),
		Price:     500,
		Text:      "текст",
	})
	if err != nil {
		t.Fatalf("создание предложения: %v", err)
	}
	if reason != offers.SkipNoDelivery {
		t.Fatalf("ожидался пропуск no delivery address, получено %s", reason)
	}
}

// TestCreate_NoSlotInWindow проверяет пропуск, когда индекс слота выходит
// за пределы свободных моментов окна.
func TestCreate_NoSlotInWindow(t *testing.T) {
	e := newEnv(t, models.ModePrecheck, 28, time.Hour)
	_, reason, err := e.engine.Create(offers.CreateParams{
		BloggerID: e.blogger.ID,
		ChannelID: e.channel.ID,
		From:      e.clock.Now(),
		To:        e.clock.Now().Add(time.Hour),
		Price:     1000,
		Text:      "текст",
		SlotIndex: 50,
	})
	if err != nil {
		t.Fatalf("создание предложения: %v", err)
	}
	if reason != offers.SkipNoSlot {
		t.Fatalf("ожидался пропуск no slot in window, получено %s", reason)
	}
}

// TestCreate_ValidationBeforeMutation проверяет отказ до любых изменений
// при пустом окне.
func TestCreate_ValidationBeforeMutation(t *testing.T) {
	e := newEnv(t, models.ModePrecheck, 5, time.Hour)
	_, _, err := e.engine.Create(offers.CreateParams{
		BloggerID: e.blogger.ID,
		ChannelID: e.channel.ID,
		From:      e.clock.Now(),
		To:        e.clock.Now(),
		Price:     1000,
		Text:      "текст",
	})
	if !errors.Is(err, offers.ErrValidation) {
		t.Fatalf("ожидалась ошибка валидации, получено %v", err)
	}
	all, _ := e.store.ListOffers()
	if len(all) != 0 {
		t.Fatalf("состояние изменилось при ошибке валидации: %v", all)
	}
}

// TestSweeper_PrecheckAutoApprove - сценарий B: в режиме precheck молчание
// в течение окна решения означает согласие.
func TestSweeper_PrecheckAutoApprove(t *testing.T) {
	e := newEnv(t, models.ModePrecheck, 5, 60*time.Second)

	o, _ := e.create(t, 0)
	if o.DecisionDeadline == nil {
		t.Fatalf("у precheck-предложения нет дедлайна решения")
	}
	wantDeadline := mondayMorning.Add(60 * time.Second)
	if !o.DecisionDeadline.Equal(wantDeadline) {
		t.Fatalf("дедлайн: ожидалось %v, получено %v", wantDeadline, o.DecisionDeadline)
	}

	e.clock.Advance(61 * time.Second)
	e.engine.Tick()

	if got := e.offerStatus(t, o.ID); got != models.StatusScheduled {
		t.Fatalf("ожидался scheduled, получено %s", got)
	}
	if e.msg.count(offers.NotifyAutoApproved) != 1 {
		t.Fatalf("ожидалось одно уведомление об автосогласии")
	}
}

// TestSweeper_ManualApprovalArchived - сценарий C: в режиме manual_approval
// молчание до момента публикации снимает размещение.
func TestSweeper_ManualApprovalArchived(t *testing.T) {
	e := newEnv(t, models.ModeManualApproval, 5, time.Hour)

	o, reason := e.create(t, 0)
	if reason != offers.SkipNone {
		t.Fatalf("предложение пропущено: %s", reason)
	}
	if o.Status != models.StatusPendingApproval {
		t.Fatalf("ожидался pending_approval, получено %s", o.Status)
	}
	if o.DecisionDeadline != nil {
		t.Fatalf("у manual_approval не должно быть дедлайна решения")
	}

	e.clock.Advance(o.ScheduledAt.Sub(e.clock.Now()) + time.Minute)
	e.engine.Tick()

	if got := e.offerStatus(t, o.ID); got != models.StatusArchivedNotPublished {
		t.Fatalf("ожидался archived_not_published, получено %s", got)
	}
	if e.pub.calls != 0 {
		t.Fatalf("без согласия публикации быть не должно, попыток: %d", e.pub.calls)
	}
}

// TestSweeper_PublishFailureTerminal - сценарий D: неудачная публикация
// терминальна, второй тик не делает повторной попытки.
func TestSweeper_PublishFailureTerminal(t *testing.T) {
	e := newEnv(t, models.ModePrecheck, 5, time.Hour)
	e.pub.fail = true

	o, _ := e.create(t, 0)
	if _, err := e.engine.Approve(o.ID); err != nil {
		t.Fatalf("подтверждение: %v", err)
	}

	e.clock.Advance(o.ScheduledAt.Sub(e.clock.Now()) + time.Minute)
	e.engine.Tick()

	if got := e.offerStatus(t, o.ID); got != models.StatusPublishFailed {
		t.Fatalf("ожидался publish_failed, получено %s", got)
	}
	if e.pub.calls != 1 {
		t.Fatalf("ожидалась одна попытка публикации, было %d", e.pub.calls)
	}

	e.engine.Tick()
	if e.pub.calls != 1 {
		t.Fatalf("повторный тик сделал вторую попытку публикации")
	}
}

// TestSweeper_PublishSuccess проверяет переход scheduled -> rewarded
// с сохранением ссылки на пост.
func TestSweeper_PublishSuccess(t *testing.T) {
	e := newEnv(t, models.ModePrecheck, 5, time.Hour)

	o, _ := e.create(t, 0)
	if _, err := e.engine.Approve(o.ID); err != nil {
		t.Fatalf("подтверждение: %v", err)
	}
	e.clock.Advance(o.ScheduledAt.Sub(e.clock.Now()) + time.Minute)
	e.engine.Tick()

	got, err := e.store.GetOffer(o.ID)
	if err != nil {
		t.Fatalf("чтение предложения: %v", err)
	}
	if got.Status != models.StatusRewarded {
		t.Fatalf("ожидался rewarded, получено %s", got.Status)
	}
	if got.DeliveryURL == "" {
		t.Fatalf("ссылка на публикацию не сохранена")
	}
	if e.msg.count(offers.NotifyPublished) != 1 {
		t.Fatalf("ожидалось одно уведомление о публикации")
	}
}

// TestSweeper_PauseSkipAndResume - сценарий E: создание на паузе
// пропускается, истёкшая пауза снимается с одним уведомлением.
func TestSweeper_PauseSkipAndResume(t *testing.T) {
	e := newEnv(t, models.ModePrecheck, 5, time.Hour)

	if _, err := e.engine.Pause(e.channel.ID, 1); err != nil {
		t.Fatalf("пауза: %v", err)
	}

	_, reason := e.create(t, 0)
	if reason != offers.SkipPaused {
		t.Fatalf("ожидался пропуск paused, получено %s", reason)
	}

	e.clock.Advance(25 * time.Hour)
	e.engine.Tick()

	paused, err := e.engine.IsPaused(e.channel.ID)
	if err != nil {
		t.Fatalf("проверка паузы: %v", err)
	}
	if paused {
		t.Fatalf("пауза должна была истечь")
	}
	if e.msg.count(offers.NotifyPauseResumed) != 1 {
		t.Fatalf("ожидалось ровно одно уведомление о возобновлении, получено %d", e.msg.count(offers.NotifyPauseResumed))
	}

	e.engine.Tick()
	if e.msg.count(offers.NotifyPauseResumed) != 1 {
		t.Fatalf("повторный тик отправил лишнее уведомление о возобновлении")
	}
}

// TestPause_IllegalInManualApproval проверяет, что пауза доступна
// только в режиме precheck.
func TestPause_IllegalInManualApproval(t *testing.T) {
	e := newEnv(t, models.ModeManualApproval, 5, time.Hour)
	if _, err := e.engine.Pause(e.channel.ID, 1); !errors.Is(err, offers.ErrIllegalState) {
		t.Fatalf("ожидалась ошибка недопустимого состояния, получено %v", err)
	}
}

// TestPause_MonotonicUntilResume проверяет, что между Pause и Resume
// канал остаётся на паузе.
func TestPause_MonotonicUntilResume(t *testing.T) {
	e := newEnv(t, models.ModePrecheck, 5, time.Hour)
	if _, err := e.engine.Pause(e.channel.ID, 2); err != nil {
		t.Fatalf("пауза: %v", err)
	}
	for i := 0; i < 10; i++ {
		e.clock.Advance(time.Hour)
		paused, err := e.engine.IsPaused(e.channel.ID)
		if err != nil {
			t.Fatalf("проверка паузы: %v", err)
		}
		if !paused {
			t.Fatalf("пауза снялась раньше срока, шаг %d", i)
		}
	}
	if _, err := e.engine.Resume(e.channel.ID); err != nil {
		t.Fatalf("возобновление: %v", err)
	}
	paused, _ := e.engine.IsPaused(e.channel.ID)
	if paused {
		t.Fatalf("Resume не снял паузу")
	}
}

// TestTick_Idempotent проверяет, что два тика подряд дают те же статусы,
// что и один.
func TestTick_Idempotent(t *testing.T) {
	e := newEnv(t, models.ModePrecheck, 5, 60*time.Second)

	o, _ := e.create(t, 0)
	e.clock.Advance(2 * time.Minute)

	e.engine.Tick()
	first := e.offerStatus(t, o.ID)
	e.engine.Tick()
	second := e.offerStatus(t, o.ID)

	if first != second {
		t.Fatalf("повторный тик изменил статус: %s -> %s", first, second)
	}
}

// TestDecisions_IllegalFromTerminal проверяет, что терминальный статус
// не покидается ни одним действием.
func TestDecisions_IllegalFromTerminal(t *testing.T) {
	e := newEnv(t, models.ModePrecheck, 5, time.Hour)

	o, _ := e.create(t, 0)
	if _, err := e.engine.CancelByAdvertiser(o.ID); err != nil {
		t.Fatalf("отмена: %v", err)
	}

	if _, err := e.engine.Approve(o.ID); !errors.Is(err, offers.ErrIllegalState) {
		t.Fatalf("approve из терминального статуса: %v", err)
	}
	if _, err := e.engine.Decline(o.ID); !errors.Is(err, offers.ErrIllegalState) {
		t.Fatalf("decline из терминального статуса: %v", err)
	}
	if _, err := e.engine.CancelByOwner(o.ID); !errors.Is(err, offers.ErrIllegalState) {
		t.Fatalf("повторная отмена из терминального статуса: %v", err)
	}
	if got := e.offerStatus(t, o.ID); got != models.StatusCancelledByAdvertiser {
		t.Fatalf("терминальный статус переназначен: %s", got)
	}
}

// TestDecisions_ApproveClearsDeadline проверяет очистку дедлайна
// при явном согласии.
func TestDecisions_ApproveClearsDeadline(t *testing.T) {
	e := newEnv(t, models.ModePrecheck, 5, time.Hour)
	o, _ := e.create(t, 0)
	approved, err := e.engine.Approve(o.ID)
	if err != nil {
		t.Fatalf("подтверждение: %v", err)
	}
	if approved.Status != models.StatusScheduled || approved.DecisionDeadline != nil {
		t.Fatalf("ожидался scheduled без дедлайна, получено %s / %v", approved.Status, approved.DecisionDeadline)
	}
}

// TestReschedule_OnlyToAvailableSlot проверяет перенос публикации:
// допустимы только свободные моменты окна, дедлайн решения при этом
// сбрасывается от нового момента.
func TestReschedule_OnlyToAvailableSlot(t *testing.T) {
	e := newEnv(t, models.ModePrecheck, 5, 30*time.Minute)

	o, _ := e.create(t, 0)
	slots, err := e.engine.AvailableSlots(o.ID)
	if err != nil {
		t.Fatalf("свободные моменты: %v", err)
	}
	if len(slots) < 2 {
		t.Fatalf("ожидалось хотя бы два свободных момента, получено %d", len(slots))
	}

	if _, err := e.engine.Reschedule(o.ID, o.ScheduledAt.Add(7*time.Minute)); !errors.Is(err, offers.ErrValidation) {
		t.Fatalf("перенос на произвольный момент принят: %v", err)
	}

	moved, err := e.engine.Reschedule(o.ID, slots[len(slots)-1])
	if err != nil {
		t.Fatalf("перенос: %v", err)
	}
	if !moved.ScheduledAt.Equal(slots[len(slots)-1]) {
		t.Fatalf("момент публикации не обновлён: %v", moved.ScheduledAt)
	}
	wantDeadline := e.clock.Now().Add(30 * time.Minute)
	if moved.DecisionDeadline == nil || !moved.DecisionDeadline.Equal(wantDeadline) {
		t.Fatalf("дедлайн не сброшен от нового момента: %v", moved.DecisionDeadline)
	}
}

// TestReschedule_IllegalAfterApprove проверяет, что перенос доступен
// только до решения.
func TestReschedule_IllegalAfterApprove(t *testing.T) {
	e := newEnv(t, models.ModePrecheck, 5, time.Hour)
	o, _ := e.create(t, 0)
	if _, err := e.engine.Approve(o.ID); err != nil {
		t.Fatalf("подтверждение: %v", err)
	}
	if _, err := e.engine.Reschedule(o.ID, o.ScheduledAt.Add(time.Hour)); !errors.Is(err, offers.ErrIllegalState) {
		t.Fatalf("перенос после согласия принят: %v", err)
	}
}

// TestDecisions_NotFound проверяет ошибку по неизвестному идентификатору.
func TestDecisions_NotFound(t *testing.T) {
	e := newEnv(t, models.ModePrecheck, 5, time.Hour)
	if _, err := e.engine.Approve(999); !errors.Is(err, offers.ErrNotFound) {
		t.Fatalf("ожидалась ошибка not found, получено %v", err)
	}
}
