package handler

import (
	"net/http"

	"github.com/ydaher97/code-crafter/internal/api/middleware"
	"github.com/ydaher97/code-crafter/internal/app/service"
	"github.com/ydaher97/code-crafter/internal/common"
	"github.com/ydaher97/code-crafter/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type AchievementHandler struct {
	achievementService *service.AchievementService
}

func NewAchievementHandler(as *service.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: as}
}

func (h *AchievementHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Get("/", h.catalog)
	r.Get("/mine", h.mine)
}

func (h *AchievementHandler) catalog(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, h.achievementService.Catalog())
}

func (h *AchievementHandler) mine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	earned, err := h.achievementService.EarnedByUser(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	if earned == nil {
		earned = []model.UserAchievement{}
	}
	common.RespondWithJSON(w, http.StatusOK, earned)
}
