package api

import (
	"net/http"
	"time"

	"github.com/ydaher97/code-crafter/internal/api/handler"
	"github.com/ydaher97/code-crafter/internal/app/service"
	"github.com/ydaher97/code-crafter/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	challengeService *service.ChallengeService,
	historyService *service.HistoryService,
	achievementService *service.AchievementService,
	interviewService *service.InterviewService,
	topicService *service.TopicService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	// AI calls can be slow; the timeout covers a grade plus a solution fetch.
	r.Use(chiMiddleware.Timeout(120 * time.Second))

	// JWT Auth Middleware Setup. Verifies the token found in
	// "Authorization: Bearer T" and puts claims in context.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		v1.Group(func(publicAuth chi.Router) {
			authHandler.RegisterRoutes(publicAuth)
		})

		// Challenge session routes (authenticated)
		challengeHandler := handler.NewChallengeHandler(challengeService)
		v1.Route("/challenges", challengeHandler.RegisterRoutes)

		// History + profile stats (authenticated)
		historyHandler := handler.NewHistoryHandler(historyService)
		v1.Route("/history", historyHandler.RegisterRoutes)

		// Achievements (authenticated)
		achievementHandler := handler.NewAchievementHandler(achievementService)
		v1.Route("/achievements", achievementHandler.RegisterRoutes)

		// Mock interview (authenticated)
		interviewHandler := handler.NewInterviewHandler(interviewService)
		v1.Route("/interview", interviewHandler.RegisterRoutes)

		// Topic suggestion + explainer (authenticated)
		topicHandler := handler.NewTopicHandler(topicService)
		v1.Route("/topics", topicHandler.RegisterRoutes)
	})

	return r
}
