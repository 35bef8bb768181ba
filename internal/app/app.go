package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/futureatoms/summitwire/internal/config"
	"github.com/futureatoms/summitwire/internal/infrastructure/collector"
	"github.com/futureatoms/summitwire/internal/infrastructure/llm"
	"github.com/futureatoms/summitwire/internal/infrastructure/ratelimit"
	"github.com/futureatoms/summitwire/internal/infrastructure/scheduler"
	"github.com/futureatoms/summitwire/internal/infrastructure/storage"
	"github.com/futureatoms/summitwire/internal/infrastructure/transcript"
	"github.com/futureatoms/summitwire/internal/logging"
	"github.com/futureatoms/summitwire/internal/source"
	transporthttp "github.com/futureatoms/summitwire/internal/transport/http"
	"github.com/futureatoms/summitwire/internal/usecase"
)

// Options selects the run mode.
type Options struct {
	// Once runs a single pipeline cycle and exits instead of starting the
	// HTTP server and the cron loop.
	Once bool
}

// Run wires every component from configuration and blocks until ctx is
// cancelled (or, in Once mode, until the single cycle finishes).
func Run(ctx context.Context, cfg config.Config, opts Options) error {
	logger := logging.New(cfg.Logging.Level)

	db, err := storage.Open(ctx, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	articles := storage.NewArticleRepository(db)
	mentions := storage.NewMentionRepository(db)

	windowStart, windowEnd, err := cfg.Summit.Window()
	if err != nil {
		return fmt.Errorf("parse summit window: %w", err)
	}

	transcripts := transcript.NewClient(cfg.YouTube.TranscriptURL, nil)

	registry := source.NewRegistry()
	registry.Register(collector.NewYouTubeSource(
		cfg.YouTube.FeedURL,
		transcripts,
		windowStart,
		windowEnd,
		cfg.Pipeline.MinTranscriptChars,
		nil,
		logging.ForComponent(logger, "youtube"),
	))
	if cfg.Twitter.Configured() {
		registry.Register(collector.NewTwitterSource(
			cfg.Twitter.SearchURL,
			cfg.Twitter.Queries,
			cfg.Pipeline.ResultsPerQuery,
			cfg.Pipeline.QueryDelay.Std(),
			nil,
			logging.ForComponent(logger, "twitter"),
		))
	} else {
		logger.Info("twitter source disabled, credentials not configured")
	}
	if cfg.Instagram.Configured() {
		registry.Register(collector.NewInstagramSource(
			cfg.Instagram.BaseURL,
			cfg.Instagram.Hashtags,
			cfg.Pipeline.MaxMentionsPerTag,
			cfg.Pipeline.HashtagDelay.Std(),
			nil,
			logging.ForComponent(logger, "instagram"),
		))
	} else {
		logger.Info("instagram source disabled, credentials not configured")
	}

	generator := llm.NewGenerator(cfg.LLM, cfg.Pipeline.MaxTranscriptChars, nil)

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Sources:    registry,
		Articles:   articles,
		Mentions:   mentions,
		Generator:  generator,
		Hashtags:   cfg.Instagram.Hashtags,
		AIProvider: cfg.LLM.Provider,
		AIModel:    cfg.LLM.Model,
		VideoDelay: cfg.Pipeline.VideoDelay.Std(),
		Logger:     logging.ForComponent(logger, "pipeline"),
	})

	if opts.Once {
		summary := pipeline.Run(ctx)
		logger.Info("single run finished",
			"articles_generated", summary.ArticlesGenerated,
			"mentions_stored", summary.MentionsStored,
		)
		return nil
	}

	var limiter *transporthttp.Limiter
	if cfg.Redis.Addr != "" {
		counter := ratelimit.NewRedisCounter(cfg.Redis)
		defer counter.Close()
		limiter = transporthttp.NewLimiter(
			counter,
			cfg.RateLimit.Requests,
			cfg.RateLimit.Window.Std(),
			logging.ForComponent(logger, "ratelimit"),
		)
	} else {
		logger.Info("rate limiting disabled, no redis address configured")
	}

	server := transporthttp.NewServer(transporthttp.ServerDeps{
		Articles:       articles,
		Mentions:       mentions,
		Generator:      generator,
		Limiter:        limiter,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AIProvider:     cfg.LLM.Provider,
		AIModel:        cfg.LLM.Model,
		Logger:         logging.ForComponent(logger, "http"),
	})

	cron := scheduler.NewCronScheduler(cfg.Scheduler.CronExpression, cfg.Scheduler.Location())
	jobs := usecase.NewScheduler(cron, pipeline)
	if err := jobs.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	httpServer := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: server.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.Server.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := jobs.Stop(shutdownCtx); err != nil {
		logger.Warn("scheduler stop", "error", err)
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
