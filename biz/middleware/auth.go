package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/merchant_console/pkg/common"
)

// OperatorHeader names the caller recorded in the action journal.
const OperatorHeader = "X-Operator"

// Operator returns a middleware that copies the X-Operator header into the
// context. It does NOT reject anonymous requests.
func Operator() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		operator := string(c.GetHeader(OperatorHeader))
		if operator == "" {
			operator = c.Query("operator")
		}
		c.Next(common.ContextWithOperator(ctx, operator))
	}
}

// RequireOperator rejects requests whose context carries no operator.
// It must run after Operator.
func RequireOperator() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if common.GetOperator(ctx) == "" {
			c.JSON(consts.StatusUnauthorized, common.CommonResponse{
				Code:  consts.StatusUnauthorized,
				Error: "operator required",
				Msg:   "missing " + OperatorHeader + " header",
			})
			c.Abort()
			return
		}
		c.Next(ctx)
	}
}
