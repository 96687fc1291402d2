package test

import (
	"testing"

	"techfest-backend/internal/global/response"

	"github.com/stretchr/testify/require"
)

// ResponseBody is the union of fields any endpoint returns.
type ResponseBody struct {
	Code        int32            `json:"code"`
	Message     string           `json:"message"`
	Errors      []string         `json:"errors"`
	Token       string           `json:"token"`
	User        map[string]any   `json:"user"`
	AdminExists *bool            `json:"adminExists"`
	Students    []map[string]any `json:"students"`
	Total       int64            `json:"total"`
	Page        int              `json:"page"`
	PageSize    int              `json:"page_size"`
	Timestamp   string           `json:"timestamp"`
}

func ErrorEqual(t *testing.T, expected *response.Error, resp ResponseBody) {
	t.Helper()
	require.Equal(t, expected.Code, resp.Code)
	require.Equal(t, expected.Message, resp.Message)
}

func NoError(t *testing.T, resp ResponseBody) {
	t.Helper()
	require.Less(t, resp.Code, int32(300), "message=%s errors=%v", resp.Message, resp.Errors)
}
