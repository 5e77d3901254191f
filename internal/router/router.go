package router

import (
	"github.com/gin-gonic/gin"

	"halalshop-backend/internal/handler"
	"halalshop-backend/internal/service"
)

// RegisterRoutes binds every business endpoint onto the engine.
func RegisterRoutes(engine *gin.Engine, services *service.Registry) {
	handler.NewShopHandler(services.Shop).RegisterRoutes(engine)
}
