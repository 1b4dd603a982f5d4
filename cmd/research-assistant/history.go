// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/archive"
	"github.com/pdiddy/research-assistant/internal/console"
	"github.com/pdiddy/research-assistant/internal/store"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// shortIDLen is how much of a run id the listing shows. history show
// accepts any unique prefix.
const shortIDLen = 8

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past research topics",
	Long: `History prints the topics researched so far with the time each run
finished. With --runs it lists the archived runs instead; use
"history show <id>" to print an archived review.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the Markdown review of an archived run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistory(cmd *cobra.Command, args []string) error {
	p := newPrinter(cmd)

	if runs, _ := cmd.Flags().GetBool("runs"); runs {
		if !appConfig.Archive.Enabled {
			p.Warning("The run archive is disabled (archive.enabled).")
			return nil
		}
		limit, _ := cmd.Flags().GetInt("limit")
		arch, err := archive.Open(appConfig.Archive.Path)
		if err != nil {
			return err
		}
		defer arch.Close()

		list, err := arch.List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			p.Info("No archived runs.")
			return nil
		}
		return writeRunTable(p.Out(), list)
	}

	h := store.New(appConfig.DataDir, logger).LoadHistory()
	if len(h) == 0 {
		p.Info("No past research topics.")
		return nil
	}
	return writeHistoryTable(p.Out(), h)
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	arch, err := archive.Open(appConfig.Archive.Path)
	if err != nil {
		return err
	}
	defer arch.Close()

	run, err := arch.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), run.Result.RenderedMarkdown)
	return nil
}

func writeHistoryTable(w io.Writer, h types.History) error {
	t := console.NewTable(w, []string{"#", "Topic", "Date"})
	for i, e := range h {
		t.AddRow(strconv.Itoa(i+1), e.Topic, e.Timestamp)
	}
	return t.Render()
}

func writeRunTable(w io.Writer, runs []archive.RunInfo) error {
	t := console.NewTable(w, []string{"ID", "Topic", "Papers", "Created"})
	for _, r := range runs {
		id := r.ID
		if len(id) > shortIDLen {
			id = id[:shortIDLen]
		}
		t.AddRow(id, r.Topic, strconv.Itoa(r.PaperCount), r.CreatedAt.Local().Format(time.DateTime))
	}
	return t.Render()
}

func init() {
	historyCmd.Flags().Bool("runs", false, "list archived runs instead of topics")
	historyCmd.Flags().Int("limit", 20, "maximum number of archived runs to list")

	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
