package handler

import (
	"net/http"

	"brain_arcade/internal/api/middleware"
	"brain_arcade/internal/app/service"
	"brain_arcade/internal/common"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	authService  *service.AuthService
	statsService *service.StatsService
}

func NewUserHandler(as *service.AuthService, ss *service.StatsService) *UserHandler {
	return &UserHandler{authService: as, statsService: ss}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Get("/profile", h.profile)
	r.Get("/overall-stats", h.overallStats)
}

func (h *UserHandler) profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.authService.Profile(r.Context(), userID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, user)
}

func (h *UserHandler) overallStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	stats, err := h.statsService.OverallStats(r.Context(), userID)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, stats)
}
