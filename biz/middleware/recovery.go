package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/merchant_console/pkg/common"
)

// Recovery turns a handler panic into a 500 response so one failing action
// never takes the console down.
func Recovery() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if r := recover(); r != nil {
				hlog.CtxErrorf(ctx, "panic recovered on %s: %v\n%s", c.Request.URI().Path(), r, debug.Stack())
				c.AbortWithStatusJSON(consts.StatusInternalServerError, common.CommonResponse{
					Code:  consts.StatusInternalServerError,
					Error: "internal server error",
					Msg:   fmt.Sprint(r),
				})
			}
		}()

		c.Next(ctx)
	}
}
