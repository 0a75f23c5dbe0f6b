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

type InterviewHandler struct {
	interviewService *service.InterviewService
}

func NewInterviewHandler(is *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviewService: is}
}

func (h *InterviewHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Post("/turns", h.nextTurn)
}

type interviewTurnRequest struct {
	Topic      string                      `json:"topic"`
	Difficulty model.Difficulty            `json:"difficulty"`
	Transcript []model.ConversationMessage `json:"conversation_history"`
}

func (h *InterviewHandler) nextTurn(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	var req interviewTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	reply, err := h.interviewService.NextTurn(r.Context(), req.Topic, req.Difficulty, req.Transcript)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"ai_response_text": reply})
}
