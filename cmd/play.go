package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/quizzical/internal/app"
	"github.com/abhisek/quizzical/internal/quiz"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz right away, skipping the home screen",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, true)
	},
}

// runTUI builds the controller for the configured source and launches the
// terminal app.
func runTUI(cmd *cobra.Command, direct bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	src, err := newSource(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	return app.Run(app.Options{
		Controller:  quiz.NewController(src, quiz.WithLogger(logger)),
		SourceName:  src.Name(),
		DirectStart: direct,
	})
}
