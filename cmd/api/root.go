package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/resume-portfolio/internal/config"
	"alfredoptarigan/resume-portfolio/internal/logger"
	"alfredoptarigan/resume-portfolio/internal/services"
)

const app = "resume-portfolio"

var rootCmd = &cobra.Command{
	Use:   app,
	Short: "resume-portfolio turns résumé documents into published portfolios and job-match reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
	SilenceUsage: true,
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		log.Fatalf("binding debug flag: %v", err)
	}
	if err := viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json")); err != nil {
		log.Fatalf("binding json flag: %v", err)
	}
}

// setup loads configuration and builds the process logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logr, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return cfg, logr, nil
}

// newExtractor wires the Gemini client into the extractor. Without an API key
// the extractor reports itself unavailable on every call.
func newExtractor(ctx context.Context, cfg *config.Config, logr *zap.Logger) (services.ExtractorService, error) {
	var generator services.TextGenerator
	if cfg.LLM.APIKey == "" {
		logr.Warn("no language model API key configured, resume extraction disabled")
	} else {
		gemini, err := services.NewGeminiService(ctx, cfg.LLM.APIKey, cfg.GeminiBaseURL(), cfg.LLM.Model, logr)
		if err != nil {
			return nil, err
		}
		generator = gemini
		logr.Info("gemini client initialized", zap.String("model", gemini.Model()))
	}

	return services.NewExtractorService(generator, cfg.LLM.Timeout, logr), nil
}
