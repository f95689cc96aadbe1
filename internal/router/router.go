package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Anoop2208prakash/LMS/internal/config"
	"github.com/Anoop2208prakash/LMS/internal/handler"
	"github.com/Anoop2208prakash/LMS/internal/middleware"
	"github.com/Anoop2208prakash/LMS/internal/model"
)

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/auth", func(auth chi.Router) {
		auth.Use(middleware.Timeout(cfg.RequestTimeout))

		auth.Post("/register", authHandler.Register)
		auth.Post("/login", authHandler.Login)
		auth.With(authMiddleware.RequireAuth).Get("/me", authHandler.Me)
		auth.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(model.RoleAdmin, model.RoleSuperAdmin)).
			Get("/users", authHandler.ListUsers)
	})

	return r
}
