package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alevsk/sentinel-forge/internal/classifier"
	"github.com/alevsk/sentinel-forge/internal/formatter"
	"github.com/alevsk/sentinel-forge/internal/store"
)

var classifyFormat string

var classifyCmd = &cobra.Command{
	Use:   "classify [directory]",
	Short: "Classify security content documents by structural signature",
	Long: `Classify every content document in a directory and report its detected
content kind. Useful for checking what a build would do with a content
set before compiling it.

Examples:
  # Classify the shared library
  sentinel-forge classify ./SharedContent

  # Machine-readable output
  sentinel-forge classify ./Customers/acme/Rules -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := store.NewLocal().List(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("classification failed: %w", err)
		}

		summary := formatter.Summary{}
		for _, entry := range entries {
			summary.Classifications = append(summary.Classifications, formatter.Classification{
				Path: entry.Path,
				ID:   entry.ID,
				Kind: classifier.Classify(entry.Doc),
			})
		}

		formatType, err := formatter.ParseType(classifyFormat)
		if err != nil {
			return err
		}
		f, err := formatter.NewFormatter(formatType)
		if err != nil {
			return err
		}
		out, err := f.Format(summary)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyFormat, "output", "o", "table", "output format (table, json, yaml)")
}
