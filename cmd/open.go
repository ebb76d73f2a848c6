package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/markview/internal/browser"
	"github.com/marcus/markview/internal/fetch"
	"github.com/marcus/markview/internal/history"
	"github.com/marcus/markview/internal/render"
)

var openCmd = &cobra.Command{
	Use:   "open [target]",
	Short: "Open a document in the interactive viewer",
	Long: `Open a document in the interactive viewer.

Without a target, markview asks for one when run in a terminal and falls
back to the home setting otherwise.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowser,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runBrowser(cmd *cobra.Command, args []string) error {
	target, err := startTarget(args)
	if err != nil {
		return err
	}
	start, err := fetch.ParseTarget(target)
	if err != nil {
		return err
	}

	// The viewer owns the terminal, so logs go to a file
	logFile, err := openLogFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	level, _ := cfg.Level()
	logger := newLogger(logFile, level)

	opts := browser.Options{
		Fetcher: fetch.New(fetch.Options{
			UserAgent:      cfg.UserAgent,
			TimeoutSeconds: cfg.TimeoutSeconds,
		}, logger),
		Render: render.Options{
			MinWidth:      cfg.MinRenderWidth,
			MarkdownStyle: cfg.MarkdownStyle,
			Logger:        logger,
		},
		MaxWidth: cfg.MaxWidth,
		Logger:   logger,
	}

	if cfg.HistoryPath != "" {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			logger.Warn("history disabled", "err", err)
		} else {
			defer store.Close()
			opts.History = store
		}
	}

	logger.Info("starting", "version", version, "target", start)
	return browser.Run(log.WithContext(cmd.Context(), logger), opts, start)
}

// startTarget picks the document to open: the argument, an interactive
// prompt, or the configured home page.
func startTarget(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return promptTarget()
	}
	if cfg.Home != "" {
		return cfg.Home, nil
	}
	return "", errors.New("no target given and no home page configured")
}

func promptTarget() (string, error) {
	target := cfg.Home
	err := huh.NewInput().
		Title("Open").
		Description("URL, file path or host name").
		Placeholder("https://go.dev").
		Value(&target).
		Validate(func(s string) error {
			_, err := fetch.ParseTarget(s)
			return err
		}).
		Run()
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	return target, nil
}
