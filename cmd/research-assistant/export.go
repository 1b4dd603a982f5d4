// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/export"
	"github.com/pdiddy/research-assistant/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the last review as Markdown, JSON, or YAML",
	Long: `Export reads the last saved run from the data directory and writes it
to the export directory. Markdown exports the rendered review; JSON exports
the structured review, as does YAML.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if _, err := export.ParseFormat(format); err != nil {
		return err
	}

	result, err := store.New(appConfig.DataDir, logger).LoadOutput()
	if err != nil {
		return err
	}

	path, err := export.Exporter{Dir: appConfig.ExportDir}.Export(result, format)
	if err != nil {
		return err
	}
	newPrinter(cmd).Success("Review exported to %s", path)
	return nil
}

func init() {
	exportCmd.Flags().String("format", "markdown", "export format: markdown, json, or yaml")
	rootCmd.AddCommand(exportCmd)
}
