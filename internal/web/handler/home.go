package handler

import (
	"net/http"

	"github.com/mcoot/findingfriends/internal/services/session"
)

// HomeHandler handles the home page
type HomeHandler struct {
	controller *session.Controller
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(controller *session.Controller) *HomeHandler {
	return &HomeHandler{controller: controller}
}

// Home redirects to today's session
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/sessions/"+string(h.controller.Today()), http.StatusSeeOther)
}
