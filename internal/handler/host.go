package handler

import (
	"time"

	"github.com/topexschool/portal-backend/internal/controller"
	"github.com/topexschool/portal-backend/internal/models"
)

// requestHost is the host application for a single HTTP request. It records
// the login and the navigation target so they can be returned to the client,
// which applies the redirect delay itself.
type requestHost struct {
	user  *models.AuthUser
	dest  models.Destination
	delay time.Duration
}

func (h *requestHost) OnLogin(user models.AuthUser) {
	h.user = &user
}

func (h *requestHost) Navigate(dest models.Destination) {
	h.dest = dest
}

// Schedule runs fn right away; it is only called after OnLogin returned.
func (h *requestHost) Schedule(delay time.Duration, fn func()) controller.Task {
	h.delay = delay
	fn()
	return controller.CompletedTask{}
}
