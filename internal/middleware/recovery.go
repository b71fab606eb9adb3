package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/recipe-radar/recipe-radar/internal/types"
)

// Recovery catches panics in downstream handlers, logs the stack trace, and
// converts them to a 500 failure envelope instead of crashing the server.
func Recovery() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic recovered",
					"error", rec,
					"method", ctx.Request.Method,
					"path", ctx.Request.URL.Path,
					"stack", string(debug.Stack()),
				)

				ctx.AbortWithStatusJSON(http.StatusInternalServerError, types.NewFailure(fmt.Sprint(rec)))
			}
		}()

		ctx.Next()
	}
}
