package recovery

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// body is the uniform payload for unhandled failures. It never exposes more
// than the panic value's string form.
type body struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Path    string `json:"path"`
}

// New returns middleware that converts panics into a uniform 500 response
// and logs the stack trace.
func New(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				detail := "unknown error"
				switch v := r.(type) {
				case error:
					detail = v.Error()
				case string:
					detail = v
				}

				l.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.ByteString("stack", debug.Stack()),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, body{
					Message: "Internal server error",
					Detail:  detail,
					Path:    c.Request.URL.String(),
				})
			}
		}()

		c.Next()
	}
}
