package cmd

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/spf13/cobra"
	"github.com/yi-nology/merchant_console/biz/handler"
	"github.com/yi-nology/merchant_console/biz/middleware"
	"github.com/yi-nology/merchant_console/biz/router"
	"github.com/yi-nology/merchant_console/biz/service"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the console over HTTP",
	Long: `Serve the console state and actions as a JSON API under /console,
with Prometheus metrics on /metrics. The list is reloaded on start and
then every console.refresh_interval.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.address)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Server.Address = serveAddr
	}
	sess, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	h := server.Default(server.WithHostPorts(cfg.Server.Address))
	h.Use(middleware.Recovery(), middleware.Logging(), middleware.CORS(cfg.CORS))
	router.RegisterConsoleRoutes(h, handler.NewConsoleHandler(sess.ctrl), cfg.Console.RequireOperator)

	refresher := service.NewRefresher(sess.ctrl, cfg.Console.RefreshInterval)
	h.OnRun = append(h.OnRun, func(ctx context.Context) error {
		go refresher.Start()
		return nil
	})
	h.OnShutdown = append(h.OnShutdown, func(ctx context.Context) {
		refresher.Stop()
	})

	hlog.Infof("merchant console %s listening on %s, backend %s", Version, cfg.Server.Address, cfg.Backend.BaseURL)
	h.Spin()
	return nil
}
