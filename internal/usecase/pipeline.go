package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/futureatoms/summitwire/internal/domain"
	"github.com/futureatoms/summitwire/internal/ports"
	"github.com/futureatoms/summitwire/internal/source"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Sources    *source.Registry
	Articles   ports.ArticleRepository
	Mentions   ports.MentionRepository
	Generator  ports.Generator
	Hashtags   []string
	AIProvider string
	AIModel    string
	VideoDelay time.Duration
	Logger     *slog.Logger
	Now        func() time.Time
}

// Pipeline implements the collect -> dedup -> generate -> persist workflow.
// No failure of any single candidate escapes its loop iteration; a run always
// completes and reports counts, zero being a valid outcome.
type Pipeline struct {
	sources    *source.Registry
	articles   ports.ArticleRepository
	mentions   ports.MentionRepository
	generator  ports.Generator
	hashtags   []string
	aiProvider string
	aiModel    string
	videoDelay time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		sources:    deps.Sources,
		articles:   deps.Articles,
		mentions:   deps.Mentions,
		generator:  deps.Generator,
		hashtags:   deps.Hashtags,
		aiProvider: deps.AIProvider,
		aiModel:    deps.AIModel,
		videoDelay: deps.VideoDelay,
		logger:     deps.Logger,
		now:        now,
	}
}

// Run executes one full collection cycle across all registered sources.
func (p *Pipeline) Run(ctx context.Context) domain.Summary {
	started := p.now()
	p.info("pipeline started", "at", started.Format(time.RFC3339))

	var summary domain.Summary
	if p.sources == nil {
		p.warn("no sources configured")
		return summary
	}

	for _, src := range p.sources.All() {
		if ctx.Err() != nil {
			break
		}

		candidates, err := src.Collect(ctx)
		if err != nil {
			p.warn("source collection failed", "source", src.Name(), "error", err)
			continue
		}
		p.info("source produced candidates", "source", src.Name(), "count", len(candidates))

		for _, candidate := range candidates {
			if ctx.Err() != nil {
				break
			}

			switch candidate.Platform {
			case domain.PlatformVideo:
				if p.processVideo(ctx, candidate) {
					summary.ArticlesGenerated++
				}
				sleep(ctx, p.videoDelay)
			default:
				if p.processSocial(ctx, candidate) {
					summary.MentionsStored++
				}
			}
		}
	}

	p.info("pipeline complete",
		"articles_generated", summary.ArticlesGenerated,
		"mentions_stored", summary.MentionsStored,
		"duration", p.now().Sub(started).String(),
	)
	return summary
}

// processVideo walks one video candidate through the gate, the generator, and
// the writer. Returns true only when an article was actually persisted.
func (p *Pipeline) processVideo(ctx context.Context, c domain.Candidate) bool {
	if p.articles == nil || p.generator == nil {
		return false
	}

	exists, err := p.articles.ExistsByVideoID(ctx, c.SourceID)
	if err != nil {
		p.warn("dedup check failed", "video_id", c.SourceID, "error", err)
		return false
	}
	if exists {
		p.debug("skipping already-processed video", "video_id", c.SourceID)
		return false
	}

	articleType := domain.ClassifyTitle(c.Title)
	day := c.PublishedAt.Format("2006-01-02")

	article, err := p.generator.Generate(ctx, domain.GenerationRequest{
		Transcript:  c.RawText,
		ArticleType: articleType,
		Day:         day,
		VideoTitle:  c.Title,
	})
	if err != nil {
		p.warn("article generation failed", "video_id", c.SourceID, "error", err)
		return false
	}

	prov := domain.Provenance{
		VideoID:     c.SourceID,
		VideoURL:    fmt.Sprintf("https://www.youtube.com/watch?v=%s", c.SourceID),
		SummitDay:   day,
		ArticleType: articleType,
	}
	stored := domain.BuildStoredArticle(*article, prov, p.aiProvider, p.aiModel, p.now())

	id, err := p.articles.Insert(ctx, stored)
	if err != nil {
		p.warn("article persist failed", "video_id", c.SourceID, "error", err)
		return false
	}

	p.info("article stored", "headline", article.Headline, "id", id, "type", articleType)
	return true
}

// processSocial gates and persists one social candidate as a mention.
func (p *Pipeline) processSocial(ctx context.Context, c domain.Candidate) bool {
	if p.mentions == nil {
		return false
	}

	exists, err := p.mentions.Exists(ctx, c.SocialPlatform(), c.SourceID)
	if err != nil {
		p.warn("dedup check failed", "post_id", c.SourceID, "error", err)
		return false
	}
	if exists {
		p.debug("skipping already-stored mention", "post_id", c.SourceID, "platform", c.SocialPlatform())
		return false
	}

	mention := domain.BuildMention(c, p.hashtags, p.now())
	if err := p.mentions.Insert(ctx, mention); err != nil {
		p.warn("mention persist failed", "post_id", c.SourceID, "error", err)
		return false
	}

	return true
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
