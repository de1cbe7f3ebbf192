package channel

import (
	"cpv_go/pkg/offers"

	"github.com/gin-gonic/gin"
)

// SetupRoutes регистрирует маршруты для работы с каналами и блогерами
func SetupRoutes(r *gin.RouterGroup, engine *offers.Engine, store Store) {
	h := NewHandler(engine, store)
	r.POST("/CreateBlogger", h.CreateBlogger)
	r.POST("/CreateChannel", h.CreateChannel)
	r.POST("/SetMode/:id", h.SetMode)
	r.POST("/SetSchedule/:id", h.SetSchedule)
	r.POST("/Pause/:id", h.Pause)
	r.POST("/Resume/:id", h.Resume)
	r.GET("/State/:id", h.State)
}
