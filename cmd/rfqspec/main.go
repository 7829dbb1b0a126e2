// Command rfqspec runs the RFQ specification extraction pipeline from
// the command line.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/glasslab/rfqspec"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		input      string
		templ      string
		output     string
		apiKey     string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "rfqspec",
		Short: "Extract display specs from vendor RFQ documents into an Excel template",
		Long: `rfqspec scans a folder of vendor documents (PDF, PPTX, XLSX),
filters out files that are not display or cover-glass spec sheets,
translates non-English content, extracts specification values via an
LLM and writes them into a copy of the spec template with source
references and confidence coloring.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; a missing file is not an error.
			_ = godotenv.Load()

			cfg := rfqspec.DefaultConfig()
			if configPath != "" {
				loaded, err := rfqspec.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			if input != "" {
				cfg.InputFolder = input
			}
			if templ != "" {
				cfg.TemplatePath = templ
			}
			if output != "" {
				cfg.OutputFolder = output
			}
			if verbose {
				cfg.Verbose = true
			}
			if apiKey != "" {
				cfg.Oracle.APIKey = apiKey
			}
			if cfg.Oracle.APIKey == "" {
				cfg.Oracle.APIKey = os.Getenv("GEMINI_API_KEY")
			}

			setupLogging(cfg.Verbose)

			a, err := rfqspec.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			summary, err := a.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Documents found:    %d\n", summary.DocumentsFound)
			fmt.Printf("Documents relevant: %d\n", summary.DocumentsRelevant)
			fmt.Printf("Specs extracted:    %d\n", summary.SpecsExtracted)
			fmt.Printf("Specs mapped:       %d\n", summary.SpecsMapped)
			fmt.Printf("Specs unmatched:    %d\n", summary.SpecsUnmatched)
			for _, name := range summary.Skipped {
				fmt.Printf("Skipped: %s\n", name)
			}
			fmt.Printf("Result: %s\n", summary.OutputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	cmd.Flags().StringVarP(&input, "input", "i", "", "input folder with vendor documents")
	cmd.Flags().StringVarP(&templ, "template", "t", "", "path to the Excel spec template")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output folder for the result workbook")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "LLM API key (falls back to GEMINI_API_KEY)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
