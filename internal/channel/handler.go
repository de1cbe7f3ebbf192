package channel

import (
	"net/http"
	"strconv"

	"cpv_go/internal/httputil"
	"cpv_go/internal/offer"
	"cpv_go/models"
	"cpv_go/pkg/offers"

	"github.com/gin-gonic/gin"
)

// Store расширяет хранилище движка операциями создания:
// каналы и блогеры заводятся через этот API по одному на пару владелец-канал.
type Store interface {
	offers.Store
	CreateBlogger(b models.Blogger) (*models.Blogger, error)
	CreateChannel(ch models.Channel) (*models.Channel, error)
}

// Handler обрабатывает HTTP-запросы, связанные с каналами и блогерами
// Комментарии на русском языке по требованию пользователя

type Handler struct {
	Engine *offers.Engine
	Store  Store
}

// NewHandler создаёт новый экземпляр обработчика
func NewHandler(engine *offers.Engine, store Store) *Handler {
	return &Handler{Engine: engine, Store: store}
}

// CreateBlogger заводит блогера.
func (h *Handler) CreateBlogger(c *gin.Context) {
	var b models.Blogger
	if err := c.ShouldBindJSON(&b); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid data")
		return
	}
	created, err := h.Store.CreateBlogger(b)
	if err != nil {
		httputil.RespondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// CreateChannel заводит канал. Расписание и лимит нормализуются хранилищем.
func (h *Handler) CreateChannel(c *gin.Context) {
	var ch models.Channel
	if err := c.ShouldBindJSON(&ch); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid data")
		return
	}
	if ch.BloggerID == 0 {
		httputil.RespondError(c, http.StatusBadRequest, "blogger_id обязателен")
		return
	}
	if _, err := h.Store.GetBlogger(ch.BloggerID); err != nil {
		httputil.RespondEngineError(c, err)
		return
	}
	created, err := h.Store.CreateChannel(ch)
	if err != nil {
		httputil.RespondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// SetMode переключает политику публикации канала.
func (h *Handler) SetMode(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Mode models.PostingMode `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid data")
		return
	}
	ch, err := h.Engine.SetChannelMode(id, req.Mode)
	if err != nil {
		httputil.RespondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

// SetSchedule заменяет расписание и недельный лимит канала.
func (h *Handler) SetSchedule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Slots           []models.ScheduleSlot `json:"schedule_slots"`
		WeeklyPostLimit int                   `json:"weekly_post_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid data")
		return
	}
	ch, err := h.Engine.SetChannelSchedule(id, req.Slots, req.WeeklyPostLimit)
	if err != nil {
		httputil.RespondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

// Pause приостанавливает канал на заданное число суток.
func (h *Handler) Pause(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Days int `json:"days" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid data")
		return
	}
	ch, err := h.Engine.Pause(id, req.Days)
	if err != nil {
		httputil.RespondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

// Resume снимает паузу немедленно.
func (h *Handler) Resume(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	ch, err := h.Engine.Resume(id)
	if err != nil {
		httputil.RespondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

// State возвращает канал и запланированные публикации его блогера -
// то, что показывает дашборд владельца.
func (h *Handler) State(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httputil.RespondError(c, http.StatusBadRequest, "invalid id")
		return
	}
	ch, err := h.Store.GetChannel(id)
	if err != nil {
		httputil.RespondEngineError(c, err)
		return
	}
	all, err := h.Store.ListOffersByBlogger(ch.BloggerID)
	if err != nil {
		httputil.RespondEngineError(c, err)
		return
	}
	planned := []offer.Summary{}
	for i := range all {
		if all[i].ChannelID != ch.ID {
			continue
		}
		planned = append(planned, offer.Summarize(&all[i]))
	}
	c.JSON(http.StatusOK, gin.H{"channel": ch, "planned_posts": planned})
}
