package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-portfolio/internal/config"
	"alfredoptarigan/resume-portfolio/internal/handlers"
	"alfredoptarigan/resume-portfolio/internal/repositories"
	"alfredoptarigan/resume-portfolio/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type stores struct {
	portfolios repositories.PortfolioRepository
	jobMatches repositories.JobMatchRepository
	drafts     repositories.ResumeDraftRepository
	uploads    repositories.UploadRepository
	closers    []func() error
}

func (s *stores) Close() {
	for _, closeFn := range s.closers {
		_ = closeFn()
	}
}

func newStores(cfg *config.Config, logr *zap.Logger) (*stores, error) {
	s := &stores{}

	switch cfg.Database.Driver {
	case config.StorePostgres:
		db, err := config.InitDatabase(cfg, logr)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database handle: %w", err)
		}
		s.closers = append(s.closers, sqlDB.Close)
		s.portfolios = repositories.NewPortfolioRepository(db)
		s.jobMatches = repositories.NewJobMatchRepository(db)
		s.drafts = repositories.NewResumeDraftRepository(db)
	case config.StoreMemory, "":
		s.portfolios = repositories.NewMemoryPortfolioRepository()
		s.jobMatches = repositories.NewMemoryJobMatchRepository()
		s.drafts = repositories.NewMemoryResumeDraftRepository()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Database.Driver)
	}
	logr.Info("record store selected", zap.String("driver", cfg.Database.Driver))

	if cfg.Redis.URL != "" {
		client, err := repositories.NewRedisClient(cfg.Redis.URL)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, client.Close)
		s.uploads = repositories.NewRedisUploadRepository(client, cfg.Redis.UploadTTL)
		logr.Info("upload store selected", zap.String("driver", "redis"))
	} else {
		s.uploads = repositories.NewMemoryUploadRepository(cfg.Redis.UploadTTL)
		logr.Info("upload store selected", zap.String("driver", "memory"))
	}

	return s, nil
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, logr, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logr.Sync() }()

	st, err := newStores(cfg, logr)
	if err != nil {
		logr.Error("failed to initialize stores", zap.Error(err))
		return err
	}
	defer st.Close()

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		logr.Error("failed to create upload directory", zap.Error(err))
		return err
	}

	extractor, err := newExtractor(ctx, cfg, logr)
	if err != nil {
		logr.Error("failed to initialize extractor", zap.Error(err))
		return err
	}

	if cfg.Workflow.WebhookURL == "" {
		logr.Warn("no workflow webhook configured, job matching disabled")
	}
	workflow := services.NewWorkflowClient(cfg.Workflow.WebhookURL, cfg.Workflow.Secret, cfg.Workflow.Timeout, logr)

	resumeService := services.NewResumeService(storageService, services.NewDocumentParserService(), st.uploads, st.drafts, extractor, logr)
	portfolioService := services.NewPortfolioService(st.portfolios, logr)
	jobMatchService := services.NewJobMatchService(workflow, st.jobMatches, logr)

	fiberApp := handlers.NewApp(handlers.AppOptions{
		AppName:     cfg.Server.AppName,
		BodyLimit:   int(cfg.Storage.MaxFileSize) + 1<<20,
		RequestLogs: !cfg.Log.JSON,
	}, handlers.Handlers{
		Resume:    handlers.NewResumeHandler(resumeService, cfg.Storage.MaxFileSize, logr),
		Portfolio: handlers.NewPortfolioHandler(portfolioService, cfg, logr),
		JobMatch:  handlers.NewJobMatchHandler(jobMatchService, resumeService, portfolioService, logr),
	}, logr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	go func() {
		<-quit
		logr.Info("shutting down server")
		if err := fiberApp.Shutdown(); err != nil {
			logr.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Server.Port
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Server.Env))

	if err := fiberApp.Listen(addr); err != nil {
		logr.Error("failed to start server", zap.Error(err))
		return err
	}
	return nil
}
