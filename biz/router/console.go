package router

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/yi-nology/merchant_console/biz/handler"
	"github.com/yi-nology/merchant_console/biz/middleware"
	"github.com/yi-nology/merchant_console/pkg/metrics"
)

// RegisterConsoleRoutes configures the console API. When requireOperator is
// set, every route that reaches the backend needs an operator.
func RegisterConsoleRoutes(r *server.Hertz, h *handler.ConsoleHandler, requireOperator bool) {
	r.GET("/ping", handler.Ping)
	r.GET("/metrics", metrics.Exposer())

	if h == nil {
		return
	}

	g := r.Group("/console", middleware.Operator(), metrics.Middleware())

	var guard []app.HandlerFunc
	if requireOperator {
		guard = append(guard, middleware.RequireOperator())
	}
	guarded := func(fn app.HandlerFunc) []app.HandlerFunc {
		return append(append([]app.HandlerFunc{}, guard...), fn)
	}

	g.GET("/state", h.GetState)
	g.POST("/refresh", h.Refresh)
	g.POST("/keys", h.Shortcut)
	g.POST("/alert/dismiss", h.DismissAlert)

	g.PUT("/form", h.EditForm)
	g.POST("/form/clear", h.ClearForm)
	g.POST("/form/prefill", h.Prefill)
	g.POST("/rsa/paste", h.PasteRSAKey)
	g.POST("/rsa/generate", h.GenerateTestKey)

	g.POST("/configs", guarded(h.SaveConfig)...)
	g.POST("/configs/:sys_id/select", h.SelectConfig)
	g.DELETE("/configs/:sys_id", guarded(h.DeleteConfig)...)
	g.POST("/configs/:sys_id/test", h.TestConfig)

	g.POST("/wechat", guarded(h.ConfigureWeChat)...)
	g.POST("/wechat/query", h.QueryWeChat)

	g.GET("/journal", h.ListJournal)
	g.POST("/snapshots", guarded(h.ExportSnapshot)...)
	g.GET("/snapshots/*key", h.GetSnapshot)
	g.DELETE("/snapshots/*key", guarded(h.DeleteSnapshot)...)
}
