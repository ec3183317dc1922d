package http

// HealthResponse is the payload of GET /health.
type HealthResponse struct {
	OK bool `json:"ok"`
}

// CreateRoomResponse is the payload of GET /create.
type CreateRoomResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
