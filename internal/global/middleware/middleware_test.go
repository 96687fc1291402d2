package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"techfest-backend/config"
	"techfest-backend/internal/global/jwt"
	"techfest-backend/internal/global/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.Set(&config.Config{Mode: config.ModeRelease})
}

func newEngine(t *testing.T, issuer *jwt.Issuer) *gin.Engine {
	t.Helper()
	r := gin.New()
	r.Use(Recovery())
	r.GET("/me", Auth(issuer), func(c *gin.Context) {
		claims, ok := jwt.GetUserPayload(c)
		require.True(t, ok)
		c.String(http.StatusOK, claims.Subject)
	})
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func TestAuth(t *testing.T) {
	issuer, err := jwt.NewIssuer("secret", time.Hour)
	require.NoError(t, err)
	r := newEngine(t, issuer)

	tok, err := issuer.CreateToken(7)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7", w.Body.String())

	expired, err := jwt.NewIssuer("secret", -time.Hour)
	require.NoError(t, err)
	old, err := expired.CreateToken(7)
	require.NoError(t, err)

	var bodies []string
	for _, header := range []string{"", "Token " + tok, "Bearer garbage", "Bearer " + old} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		bodies = append(bodies, w.Body.String())
	}
	for _, b := range bodies[1:] {
		assert.Equal(t, bodies[0], b)
	}
}

func TestRecovery(t *testing.T) {
	issuer, err := jwt.NewIssuer("secret", time.Hour)
	require.NoError(t, err)
	r := newEngine(t, issuer)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body response.ResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, response.ErrServerInternal.Code, body.Code)
	assert.Empty(t, body.Origin)
}

func TestCors(t *testing.T) {
	r := gin.New()
	r.Use(Cors([]string{"http://localhost:5173"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggerSkipsBody(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(Logger(slog.New(slog.NewTextHandler(&buf, nil))))
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"password":"secret1"}`)))
	assert.Contains(t, buf.String(), "path=/login")
	assert.NotContains(t, buf.String(), "secret1")
}
