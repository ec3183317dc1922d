package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpapi "quarto/internal/api/http"
	"quarto/internal/api/ws"
	"quarto/internal/config"
	"quarto/internal/room"
	"quarto/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, nil, cfg.RoomIDLength)
	hub := ws.NewHub(rm, ws.Options{
		SendBuffer:    cfg.SendBuffer,
		PingInterval:  cfg.PingInterval,
		WriteTimeout:  cfg.WriteTimeout,
		MaxFrameBytes: cfg.MaxFrameBytes,
		AllowedOrigin: cfg.ClientOrigin,
	})
	rm.SetBroadcaster(hub)

	r := httpapi.SetupRouter(rm, hub.HandleWS, cfg)

	log.Info().Str("addr", cfg.HTTPAddr).Str("publicUrl", cfg.PublicURL).Msg("starting relay")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
