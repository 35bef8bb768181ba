package ports

import (
	"context"
	"time"

	"github.com/futureatoms/summitwire/internal/domain"
)

// CandidateSource pulls discovered content items from one external platform.
type CandidateSource interface {
	Name() string
	Collect(ctx context.Context) ([]domain.Candidate, error)
}

// ArticleRepository persists generated articles and answers the dedup gate.
type ArticleRepository interface {
	ExistsByVideoID(ctx context.Context, videoID string) (bool, error)
	Insert(ctx context.Context, article domain.StoredArticle) (string, error)
	List(ctx context.Context, filter domain.ArticleFilter) ([]domain.StoredArticle, error)
}

// MentionRepository persists social mentions and answers the dedup gate.
type MentionRepository interface {
	Exists(ctx context.Context, platform domain.SocialPlatform, externalID string) (bool, error)
	Insert(ctx context.Context, mention domain.SocialMention) error
	List(ctx context.Context, filter domain.MentionFilter) ([]domain.SocialMention, error)
}

// Generator turns raw source text into a structured article via an LLM
// completion call. A nil article means the candidate should be skipped,
// never that the run should abort.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (*domain.Article, error)
}

// TranscriptFetcher retrieves the spoken text of a video by id.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// CounterStore increments shared keyed counters with an expiry, backing
// request throttling that must hold across instances.
type CounterStore interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Scheduler controls when pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
