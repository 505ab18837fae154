package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	claims := JWTClaims{
		UserID:   "1",
		Username: "juan",
		Rol:      "administrador",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/x", func(c *gin.Context) {
		claims := GetClaims(c)
		if claims != nil {
			c.String(http.StatusOK, claims.Username)
			return
		}
		c.String(http.StatusOK, "ok")
	})
	return r
}

func do(r http.Handler, header, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r := newEngine(JWTAuth(testSecret))

	w := do(r, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "Authorization", "Bearer "+signToken(t, "other", time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "Authorization", "Bearer "+signToken(t, testSecret, time.Now().Add(-time.Minute)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, "Authorization", "Bearer "+signToken(t, testSecret, time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "juan", w.Body.String())
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())

	w := do(r, RequestIDHeader, "abc-123")
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = do(r, "", "")
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestIPRateLimiter(t *testing.T) {
	rl := NewIPRateLimiter(0.001, 2)
	r := newEngine(rl.Middleware())

	assert.Equal(t, http.StatusOK, do(r, "", "").Code)
	assert.Equal(t, http.StatusOK, do(r, "", "").Code)
	w := do(r, "", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	assert.Equal(t, 0, rl.Purge(time.Now()))
	assert.Equal(t, 1, rl.Purge(time.Now().Add(time.Hour)))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/x", func(c *gin.Context) { panic("boom") })

	w := do(r, "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Error interno del servidor"}`, w.Body.String())
}
