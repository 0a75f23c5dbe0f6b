package handler

import (
	"net/http"
	"strconv"

	"github.com/ydaher97/code-crafter/internal/api/middleware"
	"github.com/ydaher97/code-crafter/internal/app/service"
	"github.com/ydaher97/code-crafter/internal/common"
	"github.com/ydaher97/code-crafter/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type HistoryHandler struct {
	historyService *service.HistoryService
}

func NewHistoryHandler(hs *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: hs}
}

func (h *HistoryHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Get("/", h.list)
	r.Get("/stats", h.stats)
}

func (h *HistoryHandler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	q := r.URL.Query()
	filter := model.HistoryFilter{
		Topic:        q.Get("topic"),
		Difficulty:   model.Difficulty(q.Get("difficulty")),
		QuestionType: model.QuestionType(q.Get("question_type")),
	}
	if raw := q.Get("passed"); raw != "" {
		passed, err := strconv.ParseBool(raw)
		if err != nil {
			common.RespondWithError(w, http.StatusBadRequest, "passed must be true or false")
			return
		}
		filter.Passed = &passed
	}

	entries, err := h.historyService.List(r.Context(), userID, filter)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	if entries == nil {
		entries = []model.ChallengeHistoryEntry{}
	}
	common.RespondWithJSON(w, http.StatusOK, entries)
}

func (h *HistoryHandler) stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	stats, err := h.historyService.Stats(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}
