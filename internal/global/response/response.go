package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"techfest-backend/config"

	"github.com/gin-gonic/gin"
)

// ErrorContextKey holds the failure written for the current request.
const ErrorContextKey = "error"

// ResponseBody is the decoded form of every JSON response.
type ResponseBody struct {
	Code    int32    `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
	Origin  string   `json:"origin,omitempty"`
}

// Success writes a 200 response. Extra top-level fields are merged into the body.
func Success(c *gin.Context, message string, fields ...gin.H) {
	SuccessWithStatus(c, http.StatusOK, message, fields...)
}

func SuccessWithStatus(c *gin.Context, status int, message string, fields ...gin.H) {
	body := gin.H{
		"code":    int32(status),
		"message": message,
	}
	for _, f := range fields {
		for k, v := range f {
			body[k] = v
		}
	}
	c.JSON(status, body)
}

// Fail writes err as a failure response. Errors that are not *Error are reported as ErrServerInternal.
func Fail(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = ErrServerInternal.WithOrigin(err)
	}
	_ = c.Error(e)
	c.Set(ErrorContextKey, e)

	body := ResponseBody{
		Code:    e.Code,
		Message: e.Message,
		Errors:  e.Errors,
	}
	if body.Errors == nil {
		body.Errors = []string{}
	}
	if config.Get().Mode == config.ModeDebug {
		body.Origin = e.Origin
	}
	c.JSON(e.Status, body)
}

// Recovery turns a panic in a handler into ErrServerInternal. Must be deferred.
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		slog.Error("panic recovered", "path", c.Request.URL.Path, "panic", r)
		if !c.Writer.Written() {
			Fail(c, ErrServerInternal.WithOrigin(fmt.Errorf("panic: %v", r)))
		}
		c.Abort()
	}
}
