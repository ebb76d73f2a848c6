package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/marcus/markview/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [query]",
	Short: "List visited documents",
	Long:  `List recently visited documents, most recent first. A query fuzzy-matches titles and URLs.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.HistoryPath == "" {
			return errors.New("history is disabled (history_path is empty)")
		}
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()
		if clearAll, _ := cmd.Flags().GetBool("clear"); clearAll {
			if err := store.Clear(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		var query string
		if len(args) > 0 {
			query = args[0]
		}
		visits, err := store.Search(ctx, query, limit)
		if err != nil {
			return err
		}
		printVisits(cmd.OutOrStdout(), visits, query)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 20, "maximum number of entries")
	historyCmd.Flags().Bool("clear", false, "delete all history")
}

func printVisits(w io.Writer, visits []history.Visit, query string) {
	if len(visits) == 0 {
		if query != "" {
			fmt.Fprintf(w, "No history matching '%s'\n", query)
		} else {
			fmt.Fprintln(w, "No history")
		}
		return
	}
	for _, v := range visits {
		fmt.Fprintf(w, "%s  %s\n", v.VisitedAt.Local().Format("2006-01-02 15:04"), v.URL)
		if v.Title != "" && v.Title != v.URL {
			fmt.Fprintf(w, "                  %s\n", v.Title)
		}
	}
}
