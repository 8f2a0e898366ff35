package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"datastory/adapters/excel"
	"datastory/app"
	"datastory/domain/insight"
	"datastory/internal/config"
	"datastory/internal/export"
	"datastory/internal/intake"
	"datastory/internal/logging"
	"datastory/ui"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "storyctl",
		Short: "Turn precomputed dataset statistics into narrative analysis reports",
	}

	rootCmd.AddCommand(
		newGenerateCmd(),
		newServeCmd(),
		newDetectorsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newGenerateCmd() *cobra.Command {
	var inputPath string
	var outputDir string
	var writeWorkbook bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the three audience documents and the structured export",
		Long: `Generate analysis reports from a JSON file of precomputed statistics.

The input file carries the summary, patterns, outliers and importance sections.
Output is written to the output directory: one markdown document per audience,
insights.json, and optionally an xlsx workbook.

Example: storyctl generate --input stats.json --out ./reports --xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, inputPath, outputDir, writeWorkbook)
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to the statistics JSON file (required)")
	cmd.Flags().StringVar(&outputDir, "out", "", "Output directory (default from OUTPUT_DIR)")
	cmd.Flags().BoolVar(&writeWorkbook, "xlsx", false, "Also write an xlsx workbook")
	cmd.MarkFlagRequired("input")

	return cmd
}

func runGenerate(cmd *cobra.Command, inputPath, outputDir string, writeWorkbook bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if outputDir == "" {
		outputDir = cfg.Output.Dir
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	var req intake.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse input file: %w", err)
	}

	logger := logging.New()
	service := app.NewStoryService(cfg, export.New(), logger)

	bundle, err := service.GenerateReport(cmd.Context(), req)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	names := map[insight.Audience]string{
		insight.AudienceTechnical: "report_technical.md",
		insight.AudienceBusiness:  "report_business.md",
		insight.AudienceGeneral:   "report_general.md",
	}
	for audience, doc := range bundle.Documents {
		path := filepath.Join(outputDir, names[audience])
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	exportPath := filepath.Join(outputDir, "insights.json")
	if err := os.WriteFile(exportPath, bundle.ExportJSON, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportPath, err)
	}

	if writeWorkbook {
		workbookPath := filepath.Join(outputDir, "insights.xlsx")
		f, err := os.Create(workbookPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", workbookPath, err)
		}
		defer f.Close()
		if err := excel.NewStoryWriter().WriteWorkbook(bundle.Story, f); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
	}

	fmt.Printf("Report %s written to %s (%d main findings, %d supporting)\n",
		bundle.ReportID, outputDir, len(bundle.Story.Main), len(bundle.Story.Supporting))
	return nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the report generation HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := logging.New()
			service := app.NewStoryService(cfg, export.New(), logger)
			server := ui.NewApp(cfg, service, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Start(ctx)
		},
	}
}

func newDetectorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detectors",
		Short: "List the registered insight detectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			service := app.NewStoryService(cfg, export.New(), logging.Nop())
			for _, name := range service.ListDetectors() {
				fmt.Println(name)
			}
			return nil
		},
	}
}
