package offer

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"cpv_go/internal/blogger_mutex"
	"cpv_go/internal/httputil"
	"cpv_go/models"
	"cpv_go/pkg/offers"

	"github.com/gin-gonic/gin"
)

// Handler обрабатывает HTTP-запросы, связанные с предложениями размещения
// Комментарии на русском языке по требованию пользователя

type Handler struct {
	Engine *offers.Engine
	Store  offers.Store
}

// NewHandler создаёт новый экземпляр обработчика
func NewHandler(engine *offers.Engine, store offers.Store) *Handler {
	return &Handler{Engine: engine, Store: store}
}

// createRequest - пакетный запрос рекламодателя. Цели задаются либо
// каналами, либо блогерами (берутся все каналы блогера).
type createRequest struct {
	ChannelIDs []int     `json:"channel_ids"`
	BloggerIDs []int     `json:"blogger_ids"`
	WindowFrom time.Time `json:"window_from" binding:"required"`
	WindowTo   time.Time `json:"window_to" binding:"required"`
	Price      int       `json:"price" binding:"required"`
	Text       string    `json:"text" binding:"required"`
}

type skippedTarget struct {
	Target string `json:"target"`
	Reason string `json:"reason"`
}

// CreateOffer создаёт пакет предложений. Часть целей может быть пропущена:
// пропуски возвращаются рядом с созданными предложениями, это не ошибка.
func (h *Handler) CreateOffer(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid data")
		return
	}

	channels, err := h.resolveTargets(req)
	if err != nil {
		httputil.RespondEngineError(c, err)
		return
	}
	if len(channels) == 0 {
		httputil.RespondError(c, http.StatusBadRequest, "не задано ни одного канала или блогера")
		return
	}

	created := []Summary{}
	skipped := []skippedTarget{}

	// Каналы группируются по блогеру: внутри группы растёт индекс слота,
	// чтобы предложения одного блогера не претендовали на один момент.
	byBlogger := make(map[int][]models.Channel)
	var bloggerOrder []int
	for _, ch := range channels {
		if _, ok := byBlogger[ch.BloggerID]; !ok {
			bloggerOrder = append(bloggerOrder, ch.BloggerID)
		}
		byBlogger[ch.BloggerID] = append(byBlogger[ch.BloggerID], ch)
	}

	for _, bloggerID := range bloggerOrder {
		group := byBlogger[bloggerID]
		if err := blogger_mutex.LockBlogger(bloggerID); err != nil {
			for _, ch := range group {
				skipped = append(skipped, skippedTarget{Target: "channel:" + strconv.Itoa(ch.ID), Reason: "blogger busy"})
			}
			continue
		}
		slotIndex := 0
		for _, ch := range group {
			o, reason, cerr := h.Engine.Create(offers.CreateParams{
				BloggerID: bloggerID,
				ChannelID: ch.ID,
				From:      req.WindowFrom,
				To:        req.WindowTo,
				Price:     req.Price,
				Text:      req.Text,
				SlotIndex: slotIndex,
			})
			if cerr != nil {
				log.Printf("[OFFER] создание для канала %d: %v", ch.ID, cerr)
				blogger_mutex.UnlockBlogger(bloggerID)
				httputil.RespondEngineError(c, cerr)
				return
			}
			if reason != offers.SkipNone {
				skipped = append(skipped, skippedTarget{Target: "channel:" + strconv.Itoa(ch.ID), Reason: string(reason)})
				continue
			}
			created = append(created, Summarize(o))
			slotIndex++
		}
		blogger_mutex.UnlockBlogger(bloggerID)
	}

	c.JSON(http.StatusOK, gin.H{"created": created, "skipped": skipped})
}

// resolveTargets превращает запрос в список каналов.
func (h *Handler) resolveTargets(req createRequest) ([]models.Channel, error) {
	var out []models.Channel
	for _, id := range req.ChannelIDs {
		ch, err := h.Store.GetChannel(id)
		if err != nil {
			return nil, err
		}
		out = append(out, *ch)
	}
	if len(req.BloggerIDs) > 0 {
		all, err := h.Store.ListChannels()
		if err != nil {
			return nil, err
		}
		for _, bloggerID := range req.BloggerIDs {
			for _, ch := range all {
				if ch.BloggerID == bloggerID {
					out = append(out, ch)
				}
			}
		}
	}
	return out, nil
}

// Approve подтверждает предложение от имени владельца канала.
func (h *Handler) Approve(c *gin.Context) {
	h.respondDecision(c, h.Engine.Approve)
}

// Decline отклоняет предложение от имени владельца канала.
func (h *Handler) Decline(c *gin.Context) {
	h.respondDecision(c, h.Engine.Decline)
}

// CancelByOwner отменяет предложение по инициативе владельца.
func (h *Handler) CancelByOwner(c *gin.Context) {
	h.respondDecision(c, h.Engine.CancelByOwner)
}

// CancelByAdvertiser отменяет предложение по инициативе рекламодателя.
func (h *Handler) CancelByAdvertiser(c *gin.Context) {
	h.respondDecision(c, h.Engine.CancelByAdvertiser)
}

func (h *Handler) respondDecision(c *gin.Context, op func(int) (*models.Offer, error)) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	o, err := op(id)
	if err != nil {
		httputil.RespondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, Summarize(o))
}

// Reschedule переносит публикацию на новый момент из доступных слотов.
func (h *Handler) Reschedule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid data")
		return
	}
	o, err := h.Engine.Reschedule(id, req.ScheduledAt)
	if err != nil {
		httputil.RespondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, Summarize(o))
}

// AvailableSlots возвращает моменты, доступные для переноса, вместе
// с подсказкой экрана выбора времени.
func (h *Handler) AvailableSlots(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	slots, err := h.Engine.AvailableSlots(id)
	if err != nil {
		httputil.RespondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots, "prompt": PromptPickingTime})
}
