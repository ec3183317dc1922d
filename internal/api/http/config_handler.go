package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quarto/internal/game"
)

// DefaultRulesHandler returns the rule set new games start with.
func DefaultRulesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, game.DefaultRules())
	}
}
