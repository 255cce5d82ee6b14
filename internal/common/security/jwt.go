package security

import (
	"context"
	"errors"
	"time"

	"brain_arcade/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateToken mints a session token for the given user. The expiry is
// issuance time plus the configured lifetime (7 days by default).
func GenerateToken(userID, username string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      time.Now().Add(config.AppConfig.JWTExp).Unix(),
		"iat":      time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// VerifyToken checks signature and expiry and returns the raw claims.
// Expired tokens yield jwtauth.ErrExpired; any tampering with the payload
// or signature yields a non-nil error as well.
func VerifyToken(tokenString string) (map[string]interface{}, error) {
	token, err := jwtauth.VerifyToken(TokenAuth, tokenString)
	if err != nil {
		return nil, err
	}
	return token.AsMap(context.Background())
}

// Helper functions to extract claims, used in middleware and handlers
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetUsernameFromClaims(claims jwt.MapClaims) (string, error) {
	username, ok := claims["username"].(string)
	if !ok {
		return "", errors.New("username claim is missing or not a string")
	}
	return username, nil
}
