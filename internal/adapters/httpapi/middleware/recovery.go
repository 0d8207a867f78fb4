package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const panicPage = `<!doctype html><html><head><title>Error</title></head><body>` +
	`<h1>Something went wrong, please try again later.</h1></body></html>`

// Recovery turns a panicking handler into a 500 page instead of a dropped
// connection.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic recovered",
					zap.Any("error", r),
					zap.String("path", c.Request.URL.Path),
					zap.String("stack", string(debug.Stack())))

				if c.Writer.Written() {
					c.Abort()
					return
				}
				c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(panicPage))
				c.Abort()
			}
		}()
		c.Next()
	}
}
