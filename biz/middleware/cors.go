package middleware

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/merchant_console/pkg/config"
)

// CORS lets a browser view served from another origin drive the console.
// The operator header is always allowed.
func CORS(cfg config.CORSConfig) app.HandlerFunc {
	allowOrigin := firstNonEmpty(cfg.AllowOrigin, "*")
	allowMethods := firstNonEmpty(cfg.AllowMethods, "GET,POST,PUT,DELETE,OPTIONS")
	allowHeaders := firstNonEmpty(cfg.AllowHeaders, "*")
	if allowHeaders != "*" && !strings.Contains(strings.ToLower(allowHeaders), strings.ToLower(OperatorHeader)) {
		allowHeaders += "," + OperatorHeader
	}
	allowCredentials := "false"
	if cfg.AllowCredentials {
		allowCredentials = "true"
	}

	return func(ctx context.Context, c *app.RequestContext) {
		c.Response.Header.Set("Access-Control-Allow-Origin", allowOrigin)
		c.Response.Header.Set("Access-Control-Allow-Methods", allowMethods)
		c.Response.Header.Set("Access-Control-Allow-Headers", allowHeaders)
		c.Response.Header.Set("Access-Control-Allow-Credentials", allowCredentials)
		if allowOrigin != "*" {
			c.Response.Header.Set("Vary", "Origin")
		}

		if string(c.Request.Method()) == consts.MethodOptions {
			c.AbortWithStatus(consts.StatusNoContent)
			return
		}

		c.Next(ctx)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
