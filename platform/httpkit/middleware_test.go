package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"phonebridge/platform/apperr"
	"phonebridge/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type testJWTConfig struct{ secret string }

func (c testJWTConfig) GetJWTAccessSecret() string { return c.secret }

func newTestEngine(middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware...)
	engine.GET("/ping", func(c *gin.Context) {
		caller, _ := GetCaller(c)
		c.JSON(http.StatusOK, gin.H{"caller": caller})
	})
	return engine
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestAuthRequiredDisabledWithoutSecret(t *testing.T) {
	engine := newTestEngine(AuthRequired(testJWTConfig{}))

	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestAuthRequiredValidatesTokens(t *testing.T) {
	const secret = "s3cret"
	engine := newTestEngine(AuthRequired(testJWTConfig{secret: secret}))

	valid := signToken(t, secret, jwt.MapClaims{"sub": "mobile-app", "type": "access", "exp": time.Now().Add(time.Hour).Unix()})
	wrongType := signToken(t, secret, jwt.MapClaims{"sub": "mobile-app", "type": "refresh"})
	wrongKey := signToken(t, "other", jwt.MapClaims{"sub": "mobile-app", "type": "access"})
	noSubject := signToken(t, secret, jwt.MapClaims{"type": "access"})

	cases := []struct {
		header string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"Bearer ", http.StatusUnauthorized},
		{"Bearer " + wrongType, http.StatusUnauthorized},
		{"Bearer " + wrongKey, http.StatusUnauthorized},
		{"Bearer " + noSubject, http.StatusUnauthorized},
		{"Bearer " + valid, http.StatusOK},
	}

	for i, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rr := httptest.NewRecorder()
		engine.ServeHTTP(rr, req)
		if rr.Code != tc.status {
			t.Fatalf("case %d: expected %d, got %d", i, tc.status, rr.Code)
		}
		if tc.status == http.StatusOK {
			var body map[string]string
			_ = json.Unmarshal(rr.Body.Bytes(), &body)
			if body["caller"] != "mobile-app" {
				t.Fatalf("expected caller to be set, got %v", body)
			}
		}
	}
}

func TestRateLimitRejectsBurstOverflow(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2, logger.Discard())
	engine := newTestEngine(limiter.RateLimit())

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		engine.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
		statuses = append(statuses, rr.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK || statuses[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected statuses %v", statuses)
	}
}

func TestRequestIDEchoesInboundHeader(t *testing.T) {
	engine := newTestEngine(RequestID())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, req)
	if got := rr.Header().Get(HeaderRequestID); got != "abc-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}

	rr = httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if got := rr.Header().Get(HeaderRequestID); len(got) != 36 {
		t.Fatalf("expected generated uuid, got %q", got)
	}
}

func TestHandleErrorMapsDomainErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperr.InvalidParameter("phone"), http.StatusBadRequest, apperr.CodeInvalidParameters},
		{apperr.InvalidNumber("x", nil), http.StatusUnprocessableEntity, apperr.CodeInvalidNumber},
		{errors.New("db exploded"), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tc := range cases {
		rr := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rr)
		if !HandleError(c, tc.err) {
			t.Fatalf("expected error to be handled")
		}
		if rr.Code != tc.status {
			t.Fatalf("expected %d, got %d", tc.status, rr.Code)
		}
		var body ErrorResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Code != tc.code {
			t.Fatalf("expected code %s, got %s", tc.code, body.Code)
		}
		if body.Message == "db exploded" {
			t.Fatalf("expected internal error text hidden")
		}
	}

	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	if HandleError(c, nil) {
		t.Fatalf("expected nil error to be ignored")
	}
}
