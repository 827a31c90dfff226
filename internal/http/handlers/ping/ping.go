package ping

import (
	"authsvc/internal/http/handlers/response"
	"net/http"
	"time"
)

const MessageAlive = "Server is alive"

type Handler struct {
	now func() time.Time
}

func New(now func() time.Time) *Handler {
	return &Handler{now: now}
}

type Result struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	response.Render(rw, Result{
		Success:   true,
		Message:   MessageAlive,
		Timestamp: h.now().UTC(),
	}, http.StatusOK)
}
