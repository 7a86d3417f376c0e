package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"sanctuary/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSessionService is a manual mock of service.SessionService.
type mockSessionService struct {
	ParseFunc func(tokenString string) (*dto.SessionClaims, error)
	calls     int
}

func (m *mockSessionService) Issue(videoID string) (string, error) {
	panic("mockSessionService.Issue not implemented")
}

func (m *mockSessionService) Parse(tokenString string) (*dto.SessionClaims, error) {
	m.calls++
	if m.ParseFunc != nil {
		return m.ParseFunc(tokenString)
	}
	panic("mockSessionService.ParseFunc not implemented")
}

func (m *mockSessionService) SecretConfigured() bool { return true }

func TestSession(t *testing.T) {
	validClaims := &dto.SessionClaims{VideoID: "dQw4w9WgXcQ"}

	tests := []struct {
		name          string
		setupRequest  func(req *http.Request)
		parseFunc     func(string) (*dto.SessionClaims, error)
		expectedBody  string
		expectedCalls int
	}{
		{
			name:          "no token",
			setupRequest:  func(req *http.Request) {},
			expectedBody:  "none",
			expectedCalls: 0,
		},
		{
			name:         "header token",
			setupRequest: func(req *http.Request) { req.Header.Set(SessionHeader, "good") },
			parseFunc: func(token string) (*dto.SessionClaims, error) {
				assert.Equal(t, "good", token)
				return validClaims, nil
			},
			expectedBody:  "dQw4w9WgXcQ",
			expectedCalls: 1,
		},
		{
			name:         "bearer token",
			setupRequest: func(req *http.Request) { req.Header.Set("Authorization", "Bearer good") },
			parseFunc: func(token string) (*dto.SessionClaims, error) {
				assert.Equal(t, "good", token)
				return validClaims, nil
			},
			expectedBody:  "dQw4w9WgXcQ",
			expectedCalls: 1,
		},
		{
			name: "cookie token",
			setupRequest: func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good"})
			},
			parseFunc: func(token string) (*dto.SessionClaims, error) {
				assert.Equal(t, "good", token)
				return validClaims, nil
			},
			expectedBody:  "dQw4w9WgXcQ",
			expectedCalls: 1,
		},
		{
			name:         "invalid token continues without claims",
			setupRequest: func(req *http.Request) { req.Header.Set(SessionHeader, "forged") },
			parseFunc: func(string) (*dto.SessionClaims, error) {
				return nil, errors.New("signature is invalid")
			},
			expectedBody:  "none",
			expectedCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &mockSessionService{ParseFunc: tt.parseFunc}
			app := fiber.New()
			app.Get("/session", Session(sessions), func(c *fiber.Ctx) error {
				claims := SessionClaims(c)
				if claims == nil {
					return c.SendString("none")
				}
				return c.SendString(claims.VideoID)
			})

			req := httptest.NewRequest(http.MethodGet, "/session", nil)
			tt.setupRequest(req)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.expectedBody, string(body))
			assert.Equal(t, tt.expectedCalls, sessions.calls)
		})
	}
}
