package httputil

import (
	"errors"
	"net/http"

	"cpv_go/pkg/offers"

	"github.com/gin-gonic/gin"
)

// RespondError отправляет сообщение об ошибке в едином формате и прекращает обработку запроса.
// Используем AbortWithStatusJSON, чтобы последующие обработчики не выполнялись, даже если забыли вернуть управление.
func RespondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// RespondEngineError переводит ошибки движка в HTTP-статусы.
func RespondEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, offers.ErrNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, offers.ErrIllegalState):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, offers.ErrValidation):
		RespondError(c, http.StatusBadRequest, err.Error())
	default:
		RespondError(c, http.StatusInternalServerError, "internal error")
	}
}
