// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/agent"
	"github.com/pdiddy/research-assistant/internal/console"
	"github.com/pdiddy/research-assistant/internal/export"
	"github.com/pdiddy/research-assistant/internal/render"
	"github.com/pdiddy/research-assistant/pkg/types"
)

const separatorWidth = 50

// researcher is the part of *agent.Agent the session drives.
type researcher interface {
	Run(ctx context.Context, topic string, limit int) (*agent.Report, error)
	History() types.History
}

// exporter writes a result to a file. export.Exporter satisfies it.
type exporter interface {
	Export(result types.RunResult, format string) (string, error)
}

// session is one interactive run: show past topics, read a topic, run it,
// show the overview, and offer an export.
type session struct {
	agent    researcher
	exporter exporter
	printer  *console.Printer
	in       *bufio.Reader
	limit    int
}

func runSession(cmd *cobra.Command, args []string) error {
	a, cleanup, err := buildAgent(appConfig, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	s := &session{
		agent:    a,
		exporter: export.Exporter{Dir: appConfig.ExportDir},
		printer:  newPrinter(cmd),
		in:       bufio.NewReader(cmd.InOrStdin()),
		limit:    appConfig.PaperLimit,
	}
	return s.run(cmd.Context())
}

func (s *session) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	p := s.printer

	p.Print("\n--- AI Research Assistant Activated ---")
	p.Print("Goal: Academic Content Retrieval, Summarization, and Literature Review.")
	p.Print(strings.Repeat("-", separatorWidth))

	if past := s.agent.History(); len(past) > 0 {
		p.Info("Past Researched Topics:")
		for _, e := range past {
			p.Print("- %s", e.Topic)
		}
		p.Print(strings.Repeat("-", separatorWidth))
	}

	topic := s.prompt("Enter your research topic (e.g., Explainable AI for Drug Discovery): \n> ")
	if topic == "" {
		p.Print("No topic entered. Exiting.")
		return nil
	}

	p.Print("\n--- Starting Research for: %s ---\n", topic)
	rep, err := s.agent.Run(ctx, topic, s.limit)
	if err != nil {
		s.reportFailure(err)
		return nil
	}
	if rep.PersistErr != nil {
		p.Warning("The review was generated but could not be fully saved: %v", rep.PersistErr)
	} else {
		p.Success("Review saved.")
	}

	p.Header("Review Output (Overview)")
	p.Print("%s", render.Overview(rep.Result.RenderedMarkdown))

	s.offerExport(rep.Result)
	return nil
}

func (s *session) reportFailure(err error) {
	switch {
	case errors.Is(err, agent.ErrEmptyRetrieval):
		s.printer.Error("Process halted: Could not retrieve papers.")
	case errors.Is(err, agent.ErrGeneration):
		s.printer.Error("Process halted: Could not generate structured review.")
	default:
		s.printer.Error("Process halted: %v", err)
	}
}

func (s *session) offerExport(result types.RunResult) {
	choice := strings.ToLower(s.prompt("\nDo you want to export the full review (Markdown/JSON)? (m/j/n): "))

	var format string
	switch choice {
	case "m":
		format = string(export.FormatMarkdown)
	case "j":
		format = string(export.FormatJSON)
	default:
		s.printer.Print("Export skipped.")
		return
	}

	path, err := s.exporter.Export(result, format)
	if err != nil {
		s.printer.Error("Export failed: %v", err)
		return
	}
	s.printer.Success("Review exported to %s", path)
}

// prompt writes msg and returns the next input line, trimmed. End of input
// reads as an empty line.
func (s *session) prompt(msg string) string {
	fmt.Fprint(s.printer.Out(), msg)
	line, err := s.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return ""
	}
	return strings.TrimSpace(line)
}
