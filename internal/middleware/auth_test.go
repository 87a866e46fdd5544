package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"va-backend/internal/domain"
	"va-backend/pkg/logger"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()

	log, err := logger.New("error")
	require.NoError(t, err)
	return log
}

// probeHandler captures the authenticated user seen by the next handler
func probeHandler(captured **domain.AuthUser) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthValidToken(t *testing.T) {
	var user *domain.AuthUser
	handler := Auth(testSecret, testLogger(t))(probeHandler(&user))

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "42",
		"role": domain.RoleAdmin,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, user)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}

func TestAuthDefaultsToVolunteerRole(t *testing.T) {
	var user *domain.AuthUser
	handler := Auth(testSecret, testLogger(t))(probeHandler(&user))

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "7",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, user)
	assert.Equal(t, domain.RoleVolunteer, user.Role)
}

func TestAuthRejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not.a.token"},
		{
			"wrong secret",
			"Bearer " + signToken(t, "other-secret", jwt.MapClaims{
				"sub": "42",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
		},
		{
			"expired token",
			"Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"sub": "42",
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
		},
		{
			"missing subject",
			"Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
		},
		{
			"non-numeric subject",
			"Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"sub": "alice",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
		},
	}

	log := testLogger(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var user *domain.AuthUser
			handler := Auth(testSecret, log)(probeHandler(&user))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Nil(t, user)
		})
	}
}

func TestOptionalAuthWithoutHeader(t *testing.T) {
	var user *domain.AuthUser
	handler := OptionalAuth(testSecret, testLogger(t))(probeHandler(&user))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, user)
}

func TestOptionalAuthRejectsBadToken(t *testing.T) {
	var user *domain.AuthUser
	handler := OptionalAuth(testSecret, testLogger(t))(probeHandler(&user))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, user)
}

func TestRequireStaff(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		expected int
	}{
		{"admin allowed", domain.RoleAdmin, http.StatusOK},
		{"leader allowed", domain.RoleLeader, http.StatusOK},
		{"volunteer forbidden", domain.RoleVolunteer, http.StatusForbidden},
	}

	log := testLogger(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var user *domain.AuthUser
			handler := Auth(testSecret, log)(RequireStaff(log)(probeHandler(&user)))

			token := signToken(t, testSecret, jwt.MapClaims{
				"sub":  "42",
				"role": tt.role,
				"exp":  time.Now().Add(time.Hour).Unix(),
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestRequireStaffWithoutAuth(t *testing.T) {
	var user *domain.AuthUser
	handler := RequireStaff(testLogger(t))(probeHandler(&user))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
