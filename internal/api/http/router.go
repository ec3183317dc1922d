package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quarto/internal/config"
)

func SetupRouter(rs RoomService, ws gin.HandlerFunc, cfg config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), cors(cfg.ClientOrigin))

	r.GET("/health", HealthHandler())
	r.GET("/create", CreateRoomHandler(rs, cfg.PublicURL))
	r.GET("/rooms/:id", RoomInfoHandler(rs))
	r.GET("/rules/default", DefaultRulesHandler())

	// relay channel
	r.GET("/ws", ws)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found"})
	})
	return r
}
