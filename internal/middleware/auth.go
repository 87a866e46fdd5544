package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"va-backend/internal/domain"
	"va-backend/pkg/errors"
	"va-backend/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

// ContextKey represents keys used in request context
type ContextKey string

const (
	// UserContextKey is the key for user information in context
	UserContextKey ContextKey = "user"
)

// Auth creates an authentication middleware validating first-party HS256
// tokens. Claims: sub (numeric user id), role.
func Auth(jwtSecret string, logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, appErr := userFromRequest(r, jwtSecret)
			if appErr != nil {
				writeErrorResponse(w, appErr, logger)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			logger.WithField("user_id", user.ID).Debug("User authenticated successfully")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth validates a token when one is present and continues
// anonymously otherwise. Used by the guest registration flow.
func OptionalAuth(jwtSecret string, logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, appErr := userFromRequest(r, jwtSecret)
			if appErr != nil {
				writeErrorResponse(w, appErr, logger)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireStaff rejects requests whose authenticated user is neither an admin
// nor a leader. Must run after Auth.
func RequireStaff(logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				writeErrorResponse(w, errors.NewAuthenticationError("Authentication required"), logger)
				return
			}
			if !user.IsStaff() {
				writeErrorResponse(w, errors.NewAuthorizationError("Admin or leader role required"), logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext returns the authenticated user, nil for anonymous requests
func UserFromContext(ctx context.Context) *domain.AuthUser {
	if user, ok := ctx.Value(UserContextKey).(*domain.AuthUser); ok {
		return user
	}
	return nil
}

func userFromRequest(r *http.Request, jwtSecret string) (*domain.AuthUser, *errors.AppError) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.NewAuthenticationError("Authorization header is required")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, errors.NewAuthenticationError("Invalid authorization header format")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		return nil, errors.NewAuthenticationError("Token is required")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.NewAuthenticationError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.NewAuthenticationError("Invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, errors.NewAuthenticationError("Invalid token: no user identifier")
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, errors.NewAuthenticationError("Invalid token: malformed user identifier")
	}

	role := domain.RoleVolunteer
	if r, ok := claims["role"].(string); ok && r != "" {
		role = r
	}

	return &domain.AuthUser{ID: userID, Role: role}, nil
}

// writeErrorResponse writes an error response to the client
func writeErrorResponse(w http.ResponseWriter, appErr *errors.AppError, logger *logger.Logger) {
	logger.WithError(appErr).Debug("Request rejected")

	response := &errors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.Details = appErr.Details
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	_ = json.NewEncoder(w).Encode(response)
}
