package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"aesecb/internal/auth"
	"aesecb/internal/config"
	"aesecb/internal/httpserver/handlers"
)

func NewRouter(db *gorm.DB, lg *zap.SugaredLogger, cfg config.Config) http.Handler {
	secret := []byte(cfg.JWTSecret)
	encOpts := handlers.EncryptOptions{Workers: cfg.ECBWorkers, MaxUploadBytes: cfg.MaxUploadMB << 20}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Post("/v1/auth/login", handlers.Login(db, lg, secret, cfg.JWTExpiresIn))
	r.Group(func(protected chi.Router) {
		protected.Use(auth.JWTAuth(secret, auth.GormSessions(db)))
		protected.Get("/v1/me", handlers.Me(db, lg))
		protected.Post("/v1/auth/logout", handlers.Logout(db, lg))
		protected.Group(func(admin chi.Router) {
			admin.Use(auth.RequireRole("Administrator"))
			admin.Get("/v1/admin/users", handlers.ListUsers(db, lg))
			admin.Post("/v1/admin/users", handlers.CreateUser(db, lg))
		})
		protected.Post("/v1/encrypt", handlers.EncryptFile(db, lg, encOpts))
		protected.Get("/v1/jobs", handlers.ListJobs(db, lg))
		protected.Get("/v1/jobs/{id}", handlers.GetJob(db, lg))
		protected.Post("/v1/vectors/generate", handlers.GenerateVectors(db, lg))
		protected.Post("/v1/vectors/validate", handlers.ValidateVectors(db, lg, encOpts.MaxUploadBytes))
		protected.Get("/v1/vectors/known", handlers.KnownVectors(lg))
		protected.Get("/v1/logs", handlers.MyLogs(db, lg))
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}
