package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"quarto/internal/room"
)

type RoomService interface {
	CreateRoom() (*room.Room, error)
	Info(id string) (room.Info, bool)
}

func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{OK: true})
	}
}

// CreateRoomHandler allocates an empty room. The url is the shareable page
// link when a public base url is configured, otherwise just the id.
func CreateRoomHandler(rs RoomService, publicURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, err := rs.CreateRoom()
		if err != nil {
			log.Error().Err(err).Msg("create room")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "create_failed"})
			return
		}
		url := r.ID
		if publicURL != "" {
			url = publicURL + "/online/" + r.ID
		}
		c.JSON(http.StatusOK, CreateRoomResponse{ID: r.ID, URL: url})
	}
}

func RoomInfoHandler(rs RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := rs.Info(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		c.JSON(http.StatusOK, info)
	}
}
