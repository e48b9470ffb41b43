package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tenantdex/internal/config"
	dbRedis "github.com/kailas-cloud/tenantdex/internal/db/redis"
	"github.com/kailas-cloud/tenantdex/internal/index"
	logpkg "github.com/kailas-cloud/tenantdex/internal/logger"
	"github.com/kailas-cloud/tenantdex/internal/metrics"
	"github.com/kailas-cloud/tenantdex/internal/repository/archive"
	"github.com/kailas-cloud/tenantdex/internal/source"
	chiTransport "github.com/kailas-cloud/tenantdex/internal/transport/chi"
	batchuc "github.com/kailas-cloud/tenantdex/internal/usecase/batch"
	healthuc "github.com/kailas-cloud/tenantdex/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/tenantdex/internal/usecase/ingest"
	searchuc "github.com/kailas-cloud/tenantdex/internal/usecase/search"
	"github.com/kailas-cloud/tenantdex/internal/version"
)

func newServeCmd() *cobra.Command {
	var env string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if env == "" {
				env = config.GetEnv()
			}
			return serve(cmd.Context(), env)
		},
	}
	cmd.Flags().StringVar(&env, "env", "", "config environment (defaults to $ENV or local)")
	return cmd
}

func serve(ctx context.Context, env string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting tenantdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("archive_driver", cfg.Archive.Driver),
	)

	metrics.RegisterIndexMetrics()

	corpus, err := index.NewCorpus(cfg.IndexSettings())
	if err != nil {
		return fmt.Errorf("create corpus: %w", err)
	}
	folder, err := source.NewFolder(cfg.Corpus.SampleGlob)
	if err != nil {
		return fmt.Errorf("create folder source: %w", err)
	}

	// Pass nil interfaces, not typed nil pointers, when the archive is off.
	var (
		ingestArchive ingestuc.Archive
		healthArchive healthuc.ArchivePinger
	)
	if cfg.Archive.Enabled() {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Archive.Addrs,
			Password: cfg.Archive.Password,
		})
		if err != nil {
			return fmt.Errorf("create archive store: %w", err)
		}
		defer store.Close()

		readiness := time.Duration(cfg.Archive.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, readiness); err != nil {
			return fmt.Errorf("archive not ready: %w", err)
		}
		logger.Info("Connected to archive", zap.Strings("addrs", cfg.Archive.Addrs))

		repo := archive.New(store, cfg.Archive.KeyPrefix, cfg.Archive.TTL(), logger)
		ingestArchive = repo
		healthArchive = repo
	}

	samples := ingestuc.Samples{Dir: cfg.Corpus.SampleDir, Tenant: cfg.Corpus.SampleTenant}
	ingestSvc := ingestuc.New(corpus, folder, ingestArchive, samples, logger)
	searchSvc := searchuc.New(corpus, logger)
	batchSvc := batchuc.New(corpus, logger).WithMaxBatchSize(cfg.Index.MaxBatchSize)
	healthSvc := healthuc.New(corpus, healthArchive)

	if cfg.Corpus.LoadOnStart {
		n, err := ingestSvc.LoadFolder(ctx, samples.Dir, samples.Tenant)
		if err != nil {
			logger.Warn("Failed to load sample documents", zap.Error(err))
		} else {
			logger.Info("Sample documents loaded", zap.Int("documents", n))
		}
	}
	if n, err := ingestSvc.Restore(ctx); err != nil {
		logger.Warn("Failed to restore archived uploads", zap.Error(err))
	} else if n > 0 {
		logger.Info("Archived uploads restored", zap.Int("documents", n))
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Corpus.Watch {
		watcher, err := source.NewWatcher(samples.Dir, folder, ingestSvc,
			source.WithDebounce(time.Duration(cfg.Corpus.WatchDebounceMs)*time.Millisecond),
			source.WithLogger(logger),
		)
		if err != nil {
			logger.Warn("Sample folder watcher disabled", zap.Error(err))
		} else {
			watcher.Start(ctx)
			defer watcher.Stop()
			logger.Info("Watching sample folder", zap.String("dir", samples.Dir))
		}
	}

	server := chiTransport.NewServer(searchSvc, ingestSvc, batchSvc, healthSvc, chiTransport.Options{
		StaticDir:      cfg.Web.StaticDir,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		MaxTopK:        cfg.Index.MaxTopK,
		DefaultTenant:  cfg.Corpus.SampleTenant,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
