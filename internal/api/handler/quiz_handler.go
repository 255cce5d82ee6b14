package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"brain_arcade/internal/api/middleware"
	"brain_arcade/internal/app/service"
	"brain_arcade/internal/common"

	"github.com/go-chi/chi/v5"
)

type QuizHandler struct {
	quizService  *service.QuizService
	statsService *service.StatsService
}

func NewQuizHandler(qs *service.QuizService, ss *service.StatsService) *QuizHandler {
	return &QuizHandler{quizService: qs, statsService: ss}
}

func (h *QuizHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator) // All quiz routes require auth
	r.Post("/save", h.save)
	r.Get("/history", h.history)
	r.Get("/stats", h.stats)
}

type saveResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func (h *QuizHandler) save(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req service.SaveQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := h.quizService.Save(r.Context(), userID, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, saveResponse{
		Message: "Quiz results saved successfully",
		Data:    result,
	})
}

func (h *QuizHandler) history(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	topic := r.URL.Query().Get("topic")

	results, err := h.quizService.History(r.Context(), userID, limit, topic)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, results)
}

func (h *QuizHandler) stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	stats, err := h.statsService.QuizStats(r.Context(), userID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, stats)
}
