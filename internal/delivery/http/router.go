package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"gradinvite/internal/delivery/http/controllers"
	"gradinvite/internal/delivery/http/middleware"
	"gradinvite/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Event      *controllers.EventController
	Invitation *controllers.InvitationController
	Chat       *controllers.ChatController
	Auth       *controllers.AuthController
}

// NewRouter initializes the HTTP router with all application routes.
// limiter may be nil, which disables rate limiting on code verification.
// Forwarding headers are only believed from trusted proxies.
func NewRouter(c Controllers, verifier domain.TokenVerifier, limiter middleware.RateLimiter, trusted middleware.TrustedProxies, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	admin := middleware.RequireAdmin(verifier, logger)

	mux.HandleFunc("GET /health", controllers.Health)

	// Auth
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Events
	mux.HandleFunc("POST /api/events", admin(c.Event.CreateEvent))
	mux.HandleFunc("GET /api/events", admin(c.Event.ListEvents))
	mux.HandleFunc("GET /api/events/{eventID}", c.Event.GetEvent)
	mux.HandleFunc("PATCH /api/events/{eventID}", admin(c.Event.UpdateEvent))
	mux.HandleFunc("PUT /api/events/{eventID}", admin(c.Event.UpdateEvent))
	mux.HandleFunc("POST /api/events/{eventID}/chat", c.Chat.Chat)

	// Invitations
	mux.HandleFunc("POST /api/invitations", admin(c.Invitation.IssueInvitations))
	mux.HandleFunc("GET /api/invitations", admin(c.Invitation.ListInvitations))
	mux.HandleFunc("POST /api/invitations/verify", middleware.RateLimit(limiter, "verify", trusted, logger)(c.Invitation.VerifyInvitation))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
