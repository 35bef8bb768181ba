package domain

import "time"

// SourcePlatform identifies where a candidate was discovered.
type SourcePlatform string

const (
	PlatformVideo       SourcePlatform = "video"
	PlatformSocialText  SourcePlatform = "social-text"
	PlatformSocialImage SourcePlatform = "social-image"
)

// SocialPlatform names the origin network of a persisted mention.
type SocialPlatform string

const (
	SocialTwitter   SocialPlatform = "twitter"
	SocialInstagram SocialPlatform = "instagram"
)

// ArticleType selects the structure the generator is asked to produce.
type ArticleType string

const (
	TypeNewsReport ArticleType = "news_report"
	TypeEventRecap ArticleType = "event_recap"
	TypeAnalysis   ArticleType = "analysis"
	TypeFeature    ArticleType = "feature"
)

// Candidate is a content item discovered from an external source. It lives
// only for the duration of one collection cycle and is never persisted itself.
type Candidate struct {
	SourceID    string
	Platform    SourcePlatform
	Title       string
	PublishedAt time.Time
	RawText     string

	// Engagement counters, populated for social-image candidates only.
	Likes    int
	Comments int
	Shares   int
}

// SocialPlatform maps a social candidate to its persisted platform name.
func (c Candidate) SocialPlatform() SocialPlatform {
	if c.Platform == PlatformSocialImage {
		return SocialInstagram
	}
	return SocialTwitter
}

// Article is the generator output, validated against a fixed six-field JSON
// contract before it is accepted.
type Article struct {
	Headline string `json:"headline"`
	Category string `json:"category"`
	Lede     string `json:"lede"`
	Body     string `json:"body"`
	Source   string `json:"source"`
	ReadTime int    `json:"readTime"`
}

// Provenance ties a generated article back to the item it came from.
type Provenance struct {
	VideoID     string
	VideoURL    string
	SummitDay   string
	ArticleType ArticleType
}

// StoredArticle is the persisted record: the generated article plus slug,
// tags, derived metrics, and provenance metadata.
type StoredArticle struct {
	ID          string
	Title       string
	Slug        string
	Status      string
	Content     string
	ContentHTML string
	Excerpt     string
	Tags        []string
	Categories  []string
	AIProvider  string
	AIModel     string
	ReadTime    int
	WordCount   int
	SEOTitle    string
	SEODesc     string
	Category    string
	Source      string
	Provenance  Provenance
	PublishedAt time.Time
	CreatedAt   time.Time
}

// SocialMention is a persisted social post discovered during collection.
type SocialMention struct {
	ID             string
	Platform       SocialPlatform
	ExternalPostID string
	ExternalURL    string
	Content        string
	Status         string
	Likes          int
	Comments       int
	Shares         int
	Hashtags       []string
	Mentions       []string
	PublishedAt    time.Time
	CreatedAt      time.Time
}

// ArticleFilter narrows article listings.
type ArticleFilter struct {
	Day      string
	Category string
	Limit    int
}

// MentionFilter narrows mention listings.
type MentionFilter struct {
	Platform SocialPlatform
	Limit    int
}

// GenerationRequest carries everything the content generator needs for one
// completion call.
type GenerationRequest struct {
	Transcript  string
	ArticleType ArticleType
	Day         string
	VideoTitle  string
}

// Summary reports what a pipeline run actually achieved. Zero counts are a
// valid, non-error outcome.
type Summary struct {
	ArticlesGenerated int
	MentionsStored    int
}
