package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzical/internal/quiz"
	"github.com/abhisek/quizzical/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz session as a JSON API",
	Long: `Serve one quiz session over HTTP for a browser front end.

  GET  /api/session                  current session
  POST /api/session/start            start a new session
  POST /api/session/answers          {"question": 0, "answer": "..."}
  POST /api/session/check            score the session
  GET  /api/session/questions/{i}    one question with answer display states`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides QUIZZICAL_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		cfg.Server.Addr = v
	}

	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, err := newSource(ctx, cfg, logger)
	if err != nil {
		return err
	}

	ctrl := quiz.NewController(src, quiz.WithLogger(logger))
	srv := server.New(ctrl, logger)
	return server.ListenAndServe(ctx, cfg.Server.Addr, srv.Handler(cfg.Server.AllowedOrigins), logger)
}
