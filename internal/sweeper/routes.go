package sweeper

import (
	"net/http"

	"cpv_go/pkg/offers"

	"github.com/gin-gonic/gin"
)

// SetupRoutes регистрирует ручной запуск прохода. Используется в тестах
// и при отладке: эффект тот же, что у периодического тика.
func SetupRoutes(r *gin.RouterGroup, engine *offers.Engine) {
	r.POST("/Tick", func(c *gin.Context) {
		engine.Tick()
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
