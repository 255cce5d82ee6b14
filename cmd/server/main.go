package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brain_arcade/internal/api"
	"brain_arcade/internal/app/service"
	"brain_arcade/internal/common/security"
	"brain_arcade/internal/domain/repository"
	"brain_arcade/internal/platform/cache"
	"brain_arcade/internal/platform/config"
	"brain_arcade/internal/platform/database"
)

func main() {
	// 1. Load Configuration (fails fast when JWT_SECRET is absent)
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database + schema
	database.Connect()
	defer database.Close()
	database.Migrate()

	// 4. Initialize Redis (stats cache)
	cache.Connect()
	defer cache.Close()

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	quizRepo := repository.NewPgQuizRepository(database.DB)
	pictureRepo := repository.NewPgPictureRepository(database.DB)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo)
	statsService := service.NewStatsService(quizRepo, pictureRepo)
	quizService := service.NewQuizService(quizRepo, statsService)
	pictureService := service.NewPictureService(pictureRepo, statsService)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, quizService, pictureService, statsService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
