package handlers

import (
	"CreditScoreZ/internal/config"
	"CreditScoreZ/internal/middleware"
	"CreditScoreZ/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	dashboard *service.Dashboard,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	walletHandler := NewWalletHandler(dashboard, logger, config)
	profileHandler := NewProfileHandler(dashboard, logger)

	// Wallet / session gate
	r.Post("/api/wallet/connect", walletHandler.Connect)
	r.Post("/api/wallet/disconnect", walletHandler.Disconnect)
	r.Get("/api/session", walletHandler.Session)

	// Dashboard
	r.Group(func(r chi.Router) {
		r.Use(requireAccount)

		r.Get("/api/dashboard", profileHandler.Overview)
		r.Get("/api/history", profileHandler.History)
		r.Get("/api/status", profileHandler.Status)

		r.Get("/api/profiles", profileHandler.List)
		r.Post("/api/profiles", profileHandler.Create)
		r.Post("/api/profiles/refresh", profileHandler.Refresh)
		r.Get("/api/profiles/{id}", profileHandler.Detail)
		r.Post("/api/profiles/{id}/verify", profileHandler.Verify)
		r.Post("/api/profiles/{id}/close", profileHandler.Close)

		r.Post("/api/create/open", profileHandler.OpenCreate)
		r.Post("/api/create/close", profileHandler.CloseCreate)
	})

	return &Handler{Router: r}
}
