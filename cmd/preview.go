package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzical/internal/quiz"
	"github.com/abhisek/quizzical/internal/ui/display"
	screen "github.com/abhisek/quizzical/internal/screens/quiz"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play a quiz line by line, without the full-screen UI",
	Long: `Fetch a batch of questions and answer them on plain stdin/stdout.

Useful for checking a question source or playing over a dumb terminal.
Enter the number of an answer, or leave the line empty to skip a question.`,
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	src, err := newSource(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	ctrl := quiz.NewController(src, quiz.WithLogger(logger))
	return playLines(cmd.Context(), ctrl, cmd.InOrStdin(), cmd.OutOrStdout())
}

// playLines runs rounds until the user declines to play again or input
// ends.
func playLines(ctx context.Context, ctrl *quiz.Controller, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprintln(out, "Fetching questions...")
		if err := ctrl.Start(ctx); err != nil {
			return fmt.Errorf("start quiz: %w", err)
		}

		snap := ctrl.Snapshot()
		for i, q := range snap.Questions {
			fmt.Fprintf(out, "\n── Question %d/%d ──\n", i+1, snap.Total())
			fmt.Fprintln(out, display.Text(q.Prompt))
			for j, a := range q.Answers {
				fmt.Fprintf(out, "  %d) %s\n", j+1, display.Text(a))
			}

			fmt.Fprint(out, "\nYour answer: ")
			if !scanner.Scan() {
				fmt.Fprintln(out, "\n(input closed)")
				return scanner.Err()
			}
			choice := strings.TrimSpace(scanner.Text())
			if choice == "" {
				fmt.Fprintln(out, "(skipped)")
				continue
			}
			n, err := strconv.Atoi(choice)
			if err != nil || n < 1 || n > len(q.Answers) {
				fmt.Fprintf(out, "(no answer %q, skipped)\n", choice)
				continue
			}
			ctrl.Select(i, q.Answers[n-1])
		}

		ctrl.Check()
		printResults(out, ctrl.Snapshot())

		fmt.Fprint(out, "\nPlay again? [y/N] ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if !strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
			return nil
		}
	}
}

func printResults(out io.Writer, snap quiz.Snapshot) {
	fmt.Fprintln(out)
	for i, q := range snap.Questions {
		a := snap.Answers[i]
		switch {
		case a.IsCorrect():
			fmt.Fprintf(out, "✓ %d. %s\n", i+1, display.Text(a.Correct))
		case a.Answered:
			fmt.Fprintf(out, "✗ %d. %s (answer: %s)\n", i+1, display.Text(a.Selected), display.Text(q.Correct))
		default:
			fmt.Fprintf(out, "– %d. skipped (answer: %s)\n", i+1, display.Text(q.Correct))
		}
	}
	fmt.Fprintf(out, "\n── %s ──\n", screen.ScoreLine(*snap.Score, snap.Total()))
}
