package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-portfolio/internal/services"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a structured résumé from a PDF or DOCX file and print it as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := cmd.Flags().GetString("file")
		if err != nil {
			return err
		}
		return extract(cmd.Context(), path)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("file", "f", "", "path to the résumé document")
	_ = extractCmd.MarkFlagRequired("file")
}

func extract(ctx context.Context, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, logr, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logr.Sync() }()

	text, err := services.NewDocumentParserService().ExtractText(path)
	if err != nil {
		logr.Error("failed to read document", zap.String("file", path), zap.Error(err))
		return err
	}
	logr.Debug("document text extracted", zap.String("file", path), zap.Int("length", len(text)))

	extractor, err := newExtractor(ctx, cfg, logr)
	if err != nil {
		return err
	}

	resume, err := extractor.Extract(ctx, text)
	if err != nil {
		logr.Error("resume extraction failed", zap.Error(err))
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resume); err != nil {
		return fmt.Errorf("failed to write resume: %w", err)
	}
	return nil
}
