package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/metrics"
)

// Metrics records request count and latency labelled by route template, not raw path.
func Metrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		done := metrics.RequestStarted()
		ctx.Next()
		done(ctx.Request.Method, ctx.FullPath(), ctx.Writer.Status())
	}
}
