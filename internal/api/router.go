package api

import (
	"net/http"
	"time"

	"brain_arcade/internal/api/handler"
	"brain_arcade/internal/app/service"
	"brain_arcade/internal/common/security"
	"brain_arcade/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	quizService *service.QuizService,
	pictureService *service.PictureService,
	statsService *service.StatsService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// The frontend is a browser SPA on a different origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{config.AppConfig.CORSAllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Parses the bearer token (when present) into the request context.
	// Authenticator enforces it per route group.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		api.Route("/auth", authHandler.RegisterRoutes)

		quizHandler := handler.NewQuizHandler(quizService, statsService)
		api.Route("/quiz", quizHandler.RegisterRoutes)

		pictureHandler := handler.NewPictureHandler(pictureService, statsService)
		api.Route("/picture", pictureHandler.RegisterRoutes)

		userHandler := handler.NewUserHandler(authService, statsService)
		api.Route("/user", userHandler.RegisterRoutes)
	})

	return r
}
