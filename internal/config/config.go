package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr      string
	PublicURL     string
	ClientOrigin  string
	LogLevel      string
	LogFormat     string
	GinMode       string
	RoomIDLength  int
	SendBuffer    int
	PingInterval  time.Duration
	WriteTimeout  time.Duration
	MaxFrameBytes int64
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func Load() Config {
	addr := getenv("HTTP_ADDR", "")
	if addr == "" {
		addr = ":" + getenv("PORT", "5175")
	}
	return Config{
		HTTPAddr:      addr,
		PublicURL:     strings.TrimRight(getenv("PUBLIC_URL", ""), "/"),
		ClientOrigin:  getenv("CLIENT_ORIGIN", "*"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogFormat:     getenv("LOG_FORMAT", "json"),
		GinMode:       getenv("GIN_MODE", "release"),
		RoomIDLength:  getenvInt("ROOM_ID_LENGTH", 8),
		SendBuffer:    getenvInt("WS_SEND_BUFFER", 32),
		PingInterval:  time.Duration(getenvInt("WS_PING_SECONDS", 30)) * time.Second,
		WriteTimeout:  time.Duration(getenvInt("WS_WRITE_SECONDS", 10)) * time.Second,
		MaxFrameBytes: int64(getenvInt("WS_MAX_FRAME_BYTES", 64*1024)),
	}
}
