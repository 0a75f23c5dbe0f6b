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

	"github.com/ydaher97/code-crafter/internal/ai/gemini"
	"github.com/ydaher97/code-crafter/internal/api"
	"github.com/ydaher97/code-crafter/internal/app/service"
	"github.com/ydaher97/code-crafter/internal/common/security"
	"github.com/ydaher97/code-crafter/internal/domain/repository"
	"github.com/ydaher97/code-crafter/internal/platform/cache"
	"github.com/ydaher97/code-crafter/internal/platform/config"
	"github.com/ydaher97/code-crafter/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	historyRepo := repository.NewPgHistoryRepository(database.DB)
	achievementRepo := repository.NewPgAchievementRepository(database.DB)

	// 6. Initialize AI Gateway
	gateway := gemini.New(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo)
	achievementService := service.NewAchievementService(historyRepo, achievementRepo)
	challengeService := service.NewChallengeService(gateway, historyRepo, achievementService)
	historyService := service.NewHistoryService(historyRepo)
	interviewService := service.NewInterviewService(gateway)
	topicService := service.NewTopicService(gateway, cache.RDB, config.AppConfig.ExplainerCacheTTL, config.AppConfig.TopicCacheTTL)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, challengeService, historyService, achievementService, interviewService, topicService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 130 * time.Second, // must outlast the slowest AI round trip
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
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
