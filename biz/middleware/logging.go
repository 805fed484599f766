package middleware

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Logging logs one line per console request. Server errors are logged at
// error level, everything else at info.
func Logging() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		c.Next(ctx)

		operator := string(c.GetHeader(OperatorHeader))
		if operator == "" {
			operator = "-"
		}
		status := c.Response.StatusCode()
		format := "[%s] %s %s %s %d %v"
		args := []interface{}{
			c.ClientIP(),
			operator,
			string(c.Request.Method()),
			string(c.Request.URI().Path()),
			status,
			time.Since(start),
		}
		if status >= 500 {
			hlog.CtxErrorf(ctx, format, args...)
			return
		}
		hlog.CtxInfof(ctx, format, args...)
	}
}
