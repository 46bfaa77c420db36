package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/arin/career-copilot/internal/config"
	"github.com/arin/career-copilot/internal/gemini"
	"github.com/arin/career-copilot/internal/relay"
)

var (
	relayAddr    string
	relayRate    float64
	relayBurst   int
	relayOrigins []string
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Serve the Gemini relay endpoint over HTTP",
	Long: `Run the HTTP relay that forwards model calls to Gemini with the server's
API key, so clients never hold the key themselves. Streaming calls are
answered as newline-delimited JSON.

Endpoints:
  POST /api/gemini   relay a model call
  GET  /metrics      Prometheus metrics
  GET  /healthz      liveness`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var gen relay.Generator
		if cfg.APIKey != "" {
			g, err := gemini.New(ctx, cfg.APIKey)
			if err != nil {
				return err
			}
			gen = g
		} else {
			color.New(color.FgYellow).Fprintln(os.Stderr, "  No API key configured; every relay call will fail until one is set.")
		}

		addr := relayAddr
		if addr == "" {
			addr = cfg.ListenAddr
		}

		gin.SetMode(gin.ReleaseMode)
		srv := relay.NewServer(gen, relay.Options{
			RateLimit:      rate.Limit(relayRate),
			Burst:          relayBurst,
			AllowedOrigins: relayOrigins,
			Logger:         logger,
		})
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	relayCmd.Flags().StringVar(&relayAddr, "addr", "", "Listen address (default from config, "+config.DefaultListenAddr+")")
	relayCmd.Flags().Float64Var(&relayRate, "rate", 5, "Sustained relay calls per second, 0 for unlimited")
	relayCmd.Flags().IntVar(&relayBurst, "burst", 10, "Calls allowed in a burst above --rate")
	relayCmd.Flags().StringSliceVar(&relayOrigins, "origin", nil, "Extra CORS origins to allow")
}
