package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

// RoleKey holds the role claim of the authenticated caller.
const RoleKey contextKey = "role"

// RoleFromContext returns the role set by the auth middleware, or "" when auth is off.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(RoleKey).(string)
	return role
}

// authMiddleware checks the two credentials every table request carries: the apikey
// header and the bearer token. Both are HMAC-signed JWTs; the bearer decides the role.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get("apikey")
		if apiKey == "" {
			respondWithError(w, http.StatusUnauthorized, "No API key found in request", "")
			return
		}
		keyRole, err := s.parseRole(apiKey)
		if err != nil {
			s.log.Debug("invalid apikey", zap.Error(err))
			respondWithError(w, http.StatusUnauthorized, "Invalid API key", "")
			return
		}

		role := keyRole
		if auth := r.Header.Get("Authorization"); auth != "" {
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || token == "" {
				respondWithError(w, http.StatusUnauthorized, "Authorization header must be a Bearer token", "PGRST301")
				return
			}
			role, err = s.parseRole(token)
			if err != nil {
				s.log.Debug("invalid bearer token", zap.Error(err))
				respondWithError(w, http.StatusUnauthorized, "JWT is invalid or expired", "PGRST301")
				return
			}
		}

		ctx := context.WithValue(r.Context(), RoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) parseRole(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("token is not valid")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("unexpected claims type %T", token.Claims)
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return "", fmt.Errorf("role claim is missing")
	}
	return role, nil
}
