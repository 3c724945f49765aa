package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alevsk/sentinel-forge/internal/assembler"
	"github.com/alevsk/sentinel-forge/internal/deployconfig"
	"github.com/alevsk/sentinel-forge/internal/formatter"
	"github.com/alevsk/sentinel-forge/internal/logger"
	"github.com/alevsk/sentinel-forge/internal/store"
)

var (
	buildSharedDir    string
	buildCustomersDir string
	buildOutput       string
	buildStdout       bool
	buildFormat       string
)

var buildCmd = &cobra.Command{
	Use:   "build [customer]",
	Short: "Compile a customer's security content into a deployment template",
	Long: `Compile the shared content library plus a customer's override set into
one ARM deployment template.

Examples:
  # Build the template for customer acme
  sentinel-forge build acme

  # Build with explicit content directories
  sentinel-forge build acme --shared ./SharedContent --customers ./Customers

  # Print the template to stdout instead of writing a file
  sentinel-forge build acme --stdout`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		customer := args[0]

		sharedDir := buildSharedDir
		if sharedDir == "" {
			sharedDir = cfg.Content.SharedDir
		}
		customersDir := buildCustomersDir
		if customersDir == "" {
			customersDir = cfg.Content.CustomersDir
		}

		asm := assembler.New(
			store.NewLocal(),
			deployconfig.NewFileStore(customersDir),
			&assembler.Options{
				SharedDir:    sharedDir,
				CustomersDir: customersDir,
			},
		)

		tmpl, diags, err := asm.Build(cmd.Context(), customer)
		if err != nil {
			return fmt.Errorf("build failed: %w", err)
		}

		data, err := json.MarshalIndent(tmpl, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize template: %w", err)
		}

		if buildStdout {
			fmt.Println(string(data))
		} else {
			outPath := buildOutput
			if outPath == "" {
				outPath = filepath.Join(cfg.Content.OutputDir, customer+".json")
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write template: %w", err)
			}
			logger.Info().Msgf("wrote %d resources to %s", len(tmpl.Resources), outPath)
		}

		formatType, err := formatter.ParseType(buildFormat)
		if err != nil {
			return err
		}
		f, err := formatter.NewFormatter(formatType)
		if err != nil {
			return err
		}
		summary, err := f.Format(formatter.Summary{
			Customer:    customer,
			Resources:   tmpl.Resources,
			Diagnostics: diags.Entries(),
		})
		if err != nil {
			return err
		}
		if !buildStdout {
			fmt.Print(summary)
		}
		return nil
	},
}

func init() {
	// Add flags specific to build command
	flags := buildCmd.Flags()
	flags.StringVar(&buildSharedDir, "shared", "", "shared content library directory (overrides config)")
	flags.StringVar(&buildCustomersDir, "customers", "", "customers directory (overrides config)")
	flags.StringVarP(&buildOutput, "output-file", "O", "", "template output path (default: <output_dir>/<customer>.json)")
	flags.BoolVar(&buildStdout, "stdout", false, "print the template to stdout instead of writing a file")
	flags.StringVarP(&buildFormat, "output", "o", "table", "summary output format (table, json, yaml)")
}
