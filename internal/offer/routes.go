package offer

import (
	"cpv_go/pkg/offers"

	"github.com/gin-gonic/gin"
)

// SetupRoutes регистрирует маршруты для работы с предложениями
func SetupRoutes(r *gin.RouterGroup, engine *offers.Engine, store offers.Store) {
	h := NewHandler(engine, store)
	r.POST("/CreateOffer", h.CreateOffer)
	r.POST("/Approve/:id", h.Approve)
	r.POST("/Decline/:id", h.Decline)
	r.POST("/Reschedule/:id", h.Reschedule)
	r.POST("/CancelByOwner/:id", h.CancelByOwner)
	r.POST("/CancelByAdvertiser/:id", h.CancelByAdvertiser)
	r.GET("/AvailableSlots/:id", h.AvailableSlots)
}
