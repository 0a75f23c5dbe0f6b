package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ydaher97/code-crafter/internal/api/middleware"
	"github.com/ydaher97/code-crafter/internal/app/service"
	"github.com/ydaher97/code-crafter/internal/common"
	"github.com/ydaher97/code-crafter/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type TopicHandler struct {
	topicService *service.TopicService
}

func NewTopicHandler(ts *service.TopicService) *TopicHandler {
	return &TopicHandler{topicService: ts}
}

func (h *TopicHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Post("/suggest", h.suggest)
	r.Post("/explain", h.explain)
}

func (h *TopicHandler) suggest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Difficulty model.Difficulty `json:"difficulty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	topic, err := h.topicService.Suggest(r.Context(), req.Difficulty)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"topic": topic})
}

func (h *TopicHandler) explain(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic string `json:"topic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	explanation, err := h.topicService.Explain(r.Context(), req.Topic)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, explanation)
}
