package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/marcus/markview/internal/fetch"
	"github.com/marcus/markview/internal/render"
	"github.com/marcus/markview/pkg/markup"
)

// dumpConcurrency bounds the number of documents fetched at once.
const dumpConcurrency = 4

var dumpCmd = &cobra.Command{
	Use:   "dump target...",
	Short: "Render documents as plain text",
	Long: `Render each target once and print its text.

The width defaults to the terminal width, or max_width when output is not a
terminal. With --links, a numbered list of link targets follows each document.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetInt("width")
		if width <= 0 {
			width = outputWidth(cmd.OutOrStdout())
		}
		links, _ := cmd.Flags().GetBool("links")

		logger := loggerFromContext(cmd.Context())
		f := fetch.New(fetch.Options{
			UserAgent:      cfg.UserAgent,
			TimeoutSeconds: cfg.TimeoutSeconds,
		}, logger)
		ropts := render.Options{
			MinWidth:      cfg.MinRenderWidth,
			MarkdownStyle: cfg.MarkdownStyle,
			Logger:        logger,
		}

		out, err := dumpAll(cmd.Context(), f, ropts, args, width, links)
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().IntP("width", "w", 0, "render width")
	dumpCmd.Flags().BoolP("links", "l", false, "list link targets after each document")
}

// dumpAll renders targets concurrently and joins the results in argument
// order.
func dumpAll(ctx context.Context, f *fetch.Fetcher, opts render.Options, targets []string, width int, links bool) (string, error) {
	results := make([]string, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(dumpConcurrency)
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			s, err := dumpOne(ctx, f, opts, target, width, links)
			if err != nil {
				return fmt.Errorf("%s: %w", target, err)
			}
			results[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.Join(results, "\n"), nil
}

func dumpOne(ctx context.Context, f *fetch.Fetcher, opts render.Options, target string, width int, links bool) (string, error) {
	u, err := fetch.ParseTarget(target)
	if err != nil {
		return "", err
	}
	page, err := f.Fetch(ctx, u)
	if err != nil {
		return "", err
	}
	r, err := render.New(page, opts)
	if err != nil {
		return "", err
	}

	view := markup.NewView[struct{}](r)
	view.SetMaximumWidth(width)
	view.Layout(markup.Size{Width: width})
	doc := view.Document()

	var b strings.Builder
	b.WriteString(doc.PlainText())
	b.WriteByte('\n')
	if links && len(doc.Links()) > 0 {
		b.WriteByte('\n')
		for i, l := range doc.Links() {
			fmt.Fprintf(&b, "[%d] %s\n", i+1, l.Target)
		}
	}
	return b.String(), nil
}

// outputWidth returns the terminal width of w, or the configured maximum
// width when w is not a terminal.
func outputWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return min(width, cfg.MaxWidth)
		}
	}
	return cfg.MaxWidth
}
