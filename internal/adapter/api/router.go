package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rickymcpower/hrSfera/internal/adapter/api/handler"
	"github.com/rickymcpower/hrSfera/internal/adapter/api/middleware"
	"github.com/rickymcpower/hrSfera/internal/domain"
	"github.com/rickymcpower/hrSfera/internal/pkg/config"
	"github.com/rickymcpower/hrSfera/internal/usecase"
)

// NewRouter creates and configures the main HTTP router.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	tokens domain.TokenRepository,
	authUseCase usecase.AuthUseCase,
	trackingUseCase usecase.TimeTrackingUseCase,
	directoryUseCase usecase.DirectoryUseCase,
) http.Handler {
	authHandler := handler.NewAuthHandler(authUseCase, logger)
	entryHandler := handler.NewTimeEntryHandler(trackingUseCase, logger)
	employeeHandler := handler.NewEmployeeHandler(directoryUseCase, logger)

	authn := middleware.Auth(cfg.JWTSecret, tokens, logger)
	loginLimiter := middleware.RateLimit(cfg.LoginRateLimit, cfg.LoginRateBurst, logger)

	r := chi.NewRouter()
	r.Use(middleware.Logging(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.With(loginLimiter).Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authn)

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/user", authHandler.Me)

			r.Route("/time-entries", func(r chi.Router) {
				r.Post("/check-in", entryHandler.CheckIn)
				r.Put("/check-out", entryHandler.CheckOut)
				r.Get("/status", entryHandler.Status)
				r.Get("/history", entryHandler.History)
				r.Get("/today", entryHandler.Today)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleAdmin))
				r.Get("/", employeeHandler.Index)
				r.Post("/", employeeHandler.Store)
				r.Get("/{id}", employeeHandler.Show)
				r.Delete("/{id}", employeeHandler.Destroy)
			})
		})
	})

	return r
}
