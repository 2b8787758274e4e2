package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type stubTokenService struct {
	adapter.TokenService
	claims *adapter.TokenClaims
	err    error
}

func (s stubTokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return s.claims, s.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		service    stubTokenService
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{
			name:       "expired token",
			header:     "Bearer abc",
			service:    stubTokenService{err: domainerror.ErrExpiredToken},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			header:     "Bearer abc",
			service:    stubTokenService{claims: &adapter.TokenClaims{UserID: userID, Email: "ana@example.com"}},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/me", NewAuthMiddleware(tt.service).Authenticate(), func(c *gin.Context) {
				id, ok := GetUserIDFromContext(c)
				if !ok || id != userID {
					t.Errorf("user id = %v, %v; want %v", id, ok, userID)
				}
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	if !limiter.allow("1.2.3.4") || !limiter.allow("1.2.3.4") {
		t.Fatal("first two attempts should pass")
	}
	if limiter.allow("1.2.3.4") {
		t.Error("third attempt in the window should be limited")
	}
	if !limiter.allow("5.6.7.8") {
		t.Error("other clients are not affected")
	}

	now = now.Add(time.Minute + time.Second)
	if !limiter.allow("1.2.3.4") {
		t.Error("a new window should allow the client again")
	}

	now = now.Add(2 * time.Minute)
	limiter.Cleanup()
	if len(limiter.entries) != 0 {
		t.Errorf("entries after cleanup = %d, want 0", len(limiter.entries))
	}
}

func TestRateLimiter_DisabledWithZeroAttempts(t *testing.T) {
	limiter := NewRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		if !limiter.allow("1.2.3.4") {
			t.Fatalf("attempt %d limited", i)
		}
	}
}
