package storage

import (
	"encoding/json"
	"log"
	"os"
	"sync"

	"cpv_go/models"
	"cpv_go/pkg/offers"
)

// Memory - хранилище в памяти с необязательным JSON-снимком на диске.
// Снимок пишется целиком после каждой мутации и читается целиком на старте:
// движок работает в одном процессе, построчные транзакции ему не нужны.
// Используется в тестах и как лёгкая замена Postgres в демо-режиме.
//
// Комментарии в коде на русском языке по требованию пользователя

type Memory struct {
	mu   sync.Mutex
	path string // пустая строка - снимок на диск не пишется

	bloggers map[int]models.Blogger
	channels map[int]models.Channel
	offers   map[int]models.Offer

	nextBloggerID int
	nextChannelID int
	nextOfferID   int
}

// snapshot - сериализуемая форма всего состояния.
type snapshot struct {
	Bloggers      []models.Blogger `json:"bloggers"`
	Channels      []models.Channel `json:"channels"`
	Offers        []models.Offer   `json:"offers"`
	NextBloggerID int              `json:"next_blogger_id"`
	NextChannelID int              `json:"next_channel_id"`
	NextOfferID   int              `json:"next_offer_id"`
}

// NewMemory создаёт пустое хранилище без снимка на диске.
func NewMemory() *Memory {
	return &Memory{
		bloggers:      make(map[int]models.Blogger),
		channels:      make(map[int]models.Channel),
		offers:        make(map[int]models.Offer),
		nextBloggerID: 1,
		nextChannelID: 1,
		nextOfferID:   1,
	}
}

// OpenMemory создаёт хранилище, привязанное к файлу снимка.
// Отсутствующий файл не ошибка: начинаем с пустого состояния.
func OpenMemory(path string) (*Memory, error) {
	m := NewMemory()
	m.path = path
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return nil, err
	}
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	for _, b := range s.Bloggers {
		m.bloggers[b.ID] = b
	}
	for _, c := range s.Channels {
		m.channels[c.ID] = c
	}
	for _, o := range s.Offers {
		m.offers[o.ID] = o
	}
	if s.NextBloggerID > 0 {
		m.nextBloggerID = s.NextBloggerID
	}
	if s.NextChannelID > 0 {
		m.nextChannelID = s.NextChannelID
	}
	if s.NextOfferID > 0 {
		m.nextOfferID = s.NextOfferID
	}
	return m, nil
}

// persist пишет снимок на диск. Вызывается под m.mu.
// Ошибка записи только логируется: состояние в памяти остаётся источником истины.
func (m *Memory) persist() {
	if m.path == "" {
		return
	}
	s := snapshot{
		NextBloggerID: m.nextBloggerID,
		NextChannelID: m.nextChannelID,
		NextOfferID:   m.nextOfferID,
	}
	for _, b := range m.bloggers {
		s.Bloggers = append(s.Bloggers, b)
	}
	for _, c := range m.channels {
		s.Channels = append(s.Channels, c)
	}
	for _, o := range m.offers {
		s.Offers = append(s.Offers, o)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		log.Printf("[STORAGE] сериализация снимка: %v", err)
		return
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		log.Printf("[STORAGE] запись снимка %s: %v", m.path, err)
	}
}

func (m *Memory) CreateBlogger(b models.Blogger) (*models.Blogger, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = m.nextBloggerID
	m.nextBloggerID++
	m.bloggers[b.ID] = b
	m.persist()
	return &b, nil
}

func (m *Memory) GetBlogger(id int) (*models.Blogger, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bloggers[id]
	if !ok {
		return nil, offers.ErrNotFound
	}
	return &b, nil
}

func (m *Memory) CreateChannel(ch models.Channel) (*models.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch.ScheduleSlots = models.NormalizeScheduleSlots(ch.ScheduleSlots)
	ch.WeeklyPostLimit = models.NormalizeWeeklyLimit(ch.WeeklyPostLimit)
	if !ch.PostingMode.Valid() {
		ch.PostingMode = models.ModePrecheck
	}
	ch.ID = m.nextChannelID
	m.nextChannelID++
	m.channels[ch.ID] = ch
	m.persist()
	return &ch, nil
}

func (m *Memory) GetChannel(id int) (*models.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.channels[id]
	if !ok {
		return nil, offers.ErrNotFound
	}
	return &ch, nil
}

func (m *Memory) ListChannels() ([]models.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Channel, 0, len(m.channels))
	for id := 1; id < m.nextChannelID; id++ {
		if ch, ok := m.channels[id]; ok {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (m *Memory) UpdateChannel(ch *models.Channel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.channels[ch.ID]; !ok {
		return offers.ErrNotFound
	}
	m.channels[ch.ID] = *ch
	m.persist()
	return nil
}

func (m *Memory) CreateOffer(o models.Offer) (*models.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o.ID = m.nextOfferID
	m.nextOfferID++
	m.offers[o.ID] = o
	m.persist()
	return &o, nil
}

func (m *Memory) GetOffer(id int) (*models.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.offers[id]
	if !ok {
		return nil, offers.ErrNotFound
	}
	return &o, nil
}

func (m *Memory) ListOffers() ([]models.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Offer, 0, len(m.offers))
	for id := 1; id < m.nextOfferID; id++ {
		if o, ok := m.offers[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *Memory) ListOffersByBlogger(bloggerID int) ([]models.Offer, error) {
	all, _ := m.ListOffers()
	var out []models.Offer
	for _, o := range all {
		if o.BloggerID == bloggerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *Memory) UpdateOffer(o *models.Offer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.offers[o.ID]; !ok {
		return offers.ErrNotFound
	}
	m.offers[o.ID] = *o
	m.persist()
	return nil
}
