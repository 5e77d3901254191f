package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"halalshop-backend/internal/dto"
)

// ErrorHandler converts panics into a JSON 500 response.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic recovered", zap.Any("error", rec))
				ctx.JSON(http.StatusInternalServerError, dto.Err("internal server error"))
				ctx.Abort()
			}
		}()
		ctx.Next()
	}
}
