package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"finmitra-backend/internal/handlers"
	"finmitra-backend/internal/middleware"
	"finmitra-backend/internal/websocket"
)

func New(
	sessionAuth *middleware.SessionAuth,
	sessionHandler *handlers.SessionHandler,
	chatHandler *handlers.ChatHandler,
	reportHandler *handlers.ReportHandler,
	wsHub *websocket.Hub,
	frontendURL string,
	chatRateLimit int,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Chat rate limiter (per IP, per minute)
	chatLimiter := middleware.NewRateLimiter(chatRateLimit, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Session Routes ────
		r.With(chatLimiter.Middleware).Post("/session", sessionHandler.Create)

		r.Group(func(r chi.Router) {
			r.Use(sessionAuth.Middleware)
			r.Post("/session/reset", sessionHandler.Reset)

			// ──── Chat ────
			r.Group(func(r chi.Router) {
				r.Use(chatLimiter.Middleware)
				r.Post("/chat", chatHandler.Stream)
			})

			// ──── Reports ────
			r.Get("/reports", reportHandler.List)
		})

		// ──── WebSocket (token via query param) ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
