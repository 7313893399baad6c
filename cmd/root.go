package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizzical",
	Short: "Five-question trivia quiz for the terminal",
	Long: `Quizzical fetches five multiple-choice trivia questions, lets you pick an
answer for each and scores them when you check.

Questions come from the Open Trivia Database by default, or from an LLM
with --source llm.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file")
	pf.String("source", "", "Question source: opentdb or llm (overrides QUIZZICAL_SOURCE)")
	pf.String("log-file", "", "Write logs to this file (overrides QUIZZICAL_LOG_FILE)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
