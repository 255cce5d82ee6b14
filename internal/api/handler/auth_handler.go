package handler

import (
	"encoding/json"
	"net/http"

	"brain_arcade/internal/app/service"
	"brain_arcade/internal/common"
	"brain_arcade/internal/common/security"
	"brain_arcade/internal/domain/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/signin", h.signin)
	r.Post("/logout", h.logout)
	r.Post("/is-auth", h.isAuth)
}

type signupResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

type signinResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    *model.User `json:"user"`
}

type sessionResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	User    *model.User `json:"user,omitempty"`
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, signupResponse{
		Message: "User created successfully",
		User:    user,
	})
}

func (h *AuthHandler) signin(w http.ResponseWriter, r *http.Request) {
	var req service.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	token, user, err := h.authService.Signin(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, signinResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

// logout acknowledges so the client drops its stored token. Sessions are
// stateless bearer tokens, there is no server-side state to clear.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, sessionResponse{
		Success: true,
		Message: "Logged Out Successfully",
	})
}

// isAuth reports whether the bearer token on the request is still valid.
// It always answers 200; the success flag carries the outcome.
func (h *AuthHandler) isAuth(w http.ResponseWriter, r *http.Request) {
	tokenString := jwtauth.TokenFromHeader(r)
	if tokenString == "" {
		common.RespondWithJSON(w, http.StatusOK, sessionResponse{
			Success: false,
			Message: "Please Login First",
		})
		return
	}

	claims, err := security.VerifyToken(tokenString)
	if err != nil {
		common.RespondWithJSON(w, http.StatusOK, sessionResponse{
			Success: false,
			Message: "Not Authorized",
		})
		return
	}

	userID, err := security.GetUserIDFromClaims(claims)
	if err != nil {
		common.RespondWithJSON(w, http.StatusOK, sessionResponse{
			Success: false,
			Message: "Not Authorized",
		})
		return
	}

	user, err := h.authService.Profile(r.Context(), userID)
	if err != nil {
		common.RespondWithJSON(w, http.StatusOK, sessionResponse{
			Success: false,
			Message: "Not Authorized",
		})
		return
	}

	common.RespondWithJSON(w, http.StatusOK, sessionResponse{
		Success: true,
		User:    user,
	})
}
