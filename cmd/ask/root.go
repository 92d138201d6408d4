package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/riskibarqy/sports-answer/internal/app"
	"github.com/riskibarqy/sports-answer/internal/config"
	"github.com/riskibarqy/sports-answer/internal/platform/logging"
	"github.com/spf13/cobra"
)

var (
	Version = "dev"

	workers   int
	output    string
	noSummary bool
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Answer sports questions from the terminal",
	Long: `ask runs the extraction, lookup and summary pipeline locally.

Each argument is one question. With no arguments, questions are read from
stdin, one per line. Configuration comes from the same environment as the
API server.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAsk,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}

func init() {
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 4, "questions answered concurrently")
	rootCmd.Flags().StringVarP(&output, "output", "o", "plain", "output format: plain, json")
	rootCmd.Flags().BoolVar(&noSummary, "no-summary", false, "skip the summary step and print data only")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline activity to stderr")
}

func runAsk(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(output)
	if err != nil {
		return err
	}
	if workers < 1 {
		return fmt.Errorf("--workers must be >= 1")
	}

	questions := args
	if len(questions) == 0 {
		questions, err = readQuestions(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}
	if len(questions) == 0 {
		return fmt.Errorf("no questions given")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if noSummary {
		cfg.SummaryEnabled = false
	}

	level := logging.LevelError
	if verbose {
		level = logging.LevelDebug
	}
	logger := logging.New(logging.Options{Level: level, Output: cmd.ErrOrStderr(), File: cfg.LogFile})
	defer func() { _ = logger.Sync() }()

	services, err := app.NewServices(cfg, logger, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := services.Answers.AnswerAll(ctx, questions, workers)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), format, results)
}

func readQuestions(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	return out, nil
}
