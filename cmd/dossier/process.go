package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/facultymetrics/dossier/internal/classifier"
	"github.com/facultymetrics/dossier/internal/drive"
	"github.com/facultymetrics/dossier/internal/extract"
	"github.com/facultymetrics/dossier/internal/gemini"
	"github.com/facultymetrics/dossier/internal/ledger"
	"github.com/facultymetrics/dossier/internal/pipeline"
	"github.com/facultymetrics/dossier/internal/scoring"
	"github.com/facultymetrics/dossier/internal/uploads"
)

var (
	processFaculty string
	processRank    string
	processLink    string
	processSheet   string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Evaluate one evidence submission",
	Long: `Registers an upload for the given faculty member and drive link,
runs the evaluation pipeline on it, and prints the terminal record.`,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVar(&processFaculty, "faculty", "", "faculty member's full name")
	processCmd.Flags().StringVar(&processRank, "rank", "", "faculty member's current rank (optional)")
	processCmd.Flags().StringVar(&processLink, "link", "", "google drive share link for the evidence")
	processCmd.Flags().StringVar(&processSheet, "sheet", "", "spreadsheet id of the faculty ledger (optional)")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	if processFaculty == "" || processLink == "" {
		return errors.New("--faculty and --link are required")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()

	runtime, err := buildRuntime(ctx, a)
	if err != nil {
		return err
	}

	upload, err := a.uploads.Create(ctx, uploads.CreateCommand{
		FacultyName:   processFaculty,
		FacultyRank:   processRank,
		SpreadsheetID: processSheet,
		DriveLink:     processLink,
	})
	if err != nil {
		return fmt.Errorf("register upload: %w", err)
	}

	result, err := runtime.Process(ctx, upload.ID)
	if err != nil {
		return fmt.Errorf("process upload: %w", err)
	}

	return printJSON(cmd, result)
}

func buildRuntime(ctx context.Context, a *app) (*pipeline.Runtime, error) {
	logger := a.infra.Logger

	semantic, err := gemini.New(ctx, &a.cfg.Gemini, logger)
	if err != nil {
		return nil, fmt.Errorf("gemini init failed: %w", err)
	}

	ocr := drive.NewHTTPTextExtractor(a.cfg.Drive.OCREndpoint, a.cfg.Drive.OCRTimeoutDuration())
	var extractor drive.TextExtractor
	if ocr != nil {
		extractor = ocr
	}

	source, err := drive.New(ctx, &a.cfg.Drive, extractor, logger)
	if err != nil {
		return nil, fmt.Errorf("drive init failed: %w", err)
	}

	rules := scoring.Default(logger)
	registry := extract.DefaultRegistry(semantic, rules, logger)

	var sink ledger.Sink
	if a.cfg.Ledger.ScriptURL != "" {
		sink = ledger.NewClient(&a.cfg.Ledger, logger)
	}

	return pipeline.NewRuntime(
		source,
		classifier.NewHTTP(&a.cfg.Classifier, logger),
		registry,
		a.uploads,
		sink,
		&a.cfg.Pipeline,
		logger,
	), nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
