package health

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"techfest-backend/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := gin.New()
	(&ModuleHealth{}).InitRouter(r.Group("/api"))

	w, resp := test.DoRequest(t, r, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Server is running", resp.Message)
	_, err := time.Parse(time.RFC3339, resp.Timestamp)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "health check")
}
