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

type PictureHandler struct {
	pictureService *service.PictureService
	statsService   *service.StatsService
}

func NewPictureHandler(ps *service.PictureService, ss *service.StatsService) *PictureHandler {
	return &PictureHandler{pictureService: ps, statsService: ss}
}

func (h *PictureHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator) // All picture routes require auth
	r.Post("/save", h.save)
	r.Get("/history", h.history)
	r.Get("/stats", h.stats)
}

func (h *PictureHandler) save(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req service.SavePictureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := h.pictureService.Save(r.Context(), userID, req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, saveResponse{
		Message: "Picture game results saved successfully",
		Data:    result,
	})
}

func (h *PictureHandler) history(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	results, err := h.pictureService.History(r.Context(), userID, limit)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, results)
}

func (h *PictureHandler) stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	stats, err := h.statsService.PictureStats(r.Context(), userID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, stats)
}
