// Package web provides shared helpers for the HTML transport layer.
package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"mono_backend/internal/feature/auth/transport/middleware"
)

// FlashStore consumes pending one-shot messages at render time.
// Following Go convention: interfaces are defined by the consumer; the auth usecase satisfies this.
type FlashStore interface {
	Flashes(ctx context.Context, token string) ([]string, error)
}

// Renderer renders HTML pages with the ambient request data — the current
// user and any pending flash messages — merged into every template's context.
type Renderer struct {
	flashes FlashStore
}

// NewRenderer creates a Renderer backed by the given flash store.
func NewRenderer(flashes FlashStore) *Renderer {
	return &Renderer{flashes: flashes}
}

// HTML renders the named template with CurrentUser and Flashes injected.
// Flash messages are consumed here, so each shows on one page only.
func (r *Renderer) HTML(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CurrentUser"] = middleware.User(c)

	if token := middleware.Token(c); token != "" {
		messages, err := r.flashes.Flashes(c.Request.Context(), token)
		if err != nil {
			// Losing a flash is cosmetic; the page must still render.
			slog.Warn("failed to load flash messages", "error", err)
		}
		data["Flashes"] = messages
	}

	c.HTML(code, name, data)
}

// NotFound renders the shared 404 page.
func (r *Renderer) NotFound(c *gin.Context) {
	r.HTML(c, http.StatusNotFound, "not_found.html", nil)
}

// Error renders the shared 500 page.
func (r *Renderer) Error(c *gin.Context) {
	r.HTML(c, http.StatusInternalServerError, "error.html", nil)
}
