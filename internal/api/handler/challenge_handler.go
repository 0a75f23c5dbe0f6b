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

type ChallengeHandler struct {
	challengeService *service.ChallengeService
}

func NewChallengeHandler(cs *service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: cs}
}

func (h *ChallengeHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator) // All challenge routes require auth
	r.Post("/", h.startSession)
	r.Get("/{sessionID}", h.getSession)
	r.Post("/{sessionID}/display-type", h.switchDisplayType)
	r.Post("/{sessionID}/submissions", h.submit)
	r.Post("/{sessionID}/restart", h.restart)
	r.Delete("/{sessionID}", h.teardown)
}

func (h *ChallengeHandler) startSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	var params model.ChallengeParameters
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	view, err := h.challengeService.StartSession(r.Context(), userID, params)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, view)
}

func (h *ChallengeHandler) getSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	view, err := h.challengeService.GetSession(userID, chi.URLParam(r, "sessionID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, view)
}

func (h *ChallengeHandler) switchDisplayType(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	var req struct {
		DisplayType model.QuestionType `json:"display_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	view, err := h.challengeService.SwitchDisplayType(userID, chi.URLParam(r, "sessionID"), req.DisplayType)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, view)
}

func (h *ChallengeHandler) submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	var req struct {
		Solution string `json:"solution"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := h.challengeService.Submit(r.Context(), userID, chi.URLParam(r, "sessionID"), req.Solution)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

func (h *ChallengeHandler) restart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	view, err := h.challengeService.Restart(r.Context(), userID, chi.URLParam(r, "sessionID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, view)
}

func (h *ChallengeHandler) teardown(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	if err := h.challengeService.Teardown(userID, chi.URLParam(r, "sessionID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.UserMessageFromError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
