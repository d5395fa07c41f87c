// Package render writes HTML responses shared by every feature.
package render

import (
	"log/slog"

	"blog_backend/internal/platform/session"
	"blog_backend/internal/shared/apperr"

	"github.com/gin-gonic/gin"
)

// Page renders the named template. The session of the request is exposed to the layout as
// SessionUser (nil when anonymous).
func Page(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["SessionUser"] = session.Current(c)
	c.HTML(status, name, data)
}

// Error renders the error page with the status err maps to.
func Error(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= 500 {
		slog.Error("request failed", "error", err, "method", c.Request.Method, "path", c.Request.URL.Path)
	}
	Page(c, status, "error", gin.H{
		"Status":  status,
		"Message": apperr.Message(err),
	})
}
