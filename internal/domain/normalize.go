package domain

import (
	"regexp"
	"strings"
	"time"
)

const (
	// CampaignTag labels every persisted row produced by this deployment.
	CampaignTag = "india-ai-summit-2026"

	// CoverageCategory groups summit articles for the read endpoints.
	CoverageCategory = "summit-coverage"

	// PipelineVersion is recorded alongside every stored article.
	PipelineVersion = "1.0"

	seoSuffix      = " | India AI Summit 2026"
	seoDescMax     = 160
	slugMax        = 80
	wordsPerMinute = 200
)

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpace    = regexp.MustCompile(`\s+`)
	slugHyphens  = regexp.MustCompile(`-+`)
	htmlTagExpr  = regexp.MustCompile(`<[^>]*>`)
	titleRecap   = []string{"keynote", "plenary"}
	titleAnalyze = []string{"panel", "discussion"}
	titleFeature = []string{"launch", "unveil"}
)

// Slugify turns a headline into a URL-safe slug: lower-cased, restricted to
// [a-z0-9-], at most 80 characters, never ending in a hyphen.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpace.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	if len(s) > slugMax {
		s = s[:slugMax]
	}
	s = strings.TrimSuffix(s, "-")
	return strings.TrimPrefix(s, "-")
}

// StripTags removes HTML markup, leaving the visible text.
func StripTags(html string) string {
	return htmlTagExpr.ReplaceAllString(html, "")
}

// CountWords counts whitespace-separated words in the visible text of an
// HTML body.
func CountWords(html string) int {
	return len(strings.Fields(StripTags(html)))
}

// ReadTimeMinutes returns the supplied read time, or derives one from the
// word count at 200 words per minute when the generator omitted it.
func ReadTimeMinutes(supplied, wordCount int) int {
	if supplied > 0 {
		return supplied
	}
	minutes := (wordCount + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// ClassifyTitle picks an article type from keywords in a video title.
func ClassifyTitle(title string) ArticleType {
	lower := strings.ToLower(title)
	for _, kw := range titleRecap {
		if strings.Contains(lower, kw) {
			return TypeEventRecap
		}
	}
	for _, kw := range titleAnalyze {
		if strings.Contains(lower, kw) {
			return TypeAnalysis
		}
	}
	for _, kw := range titleFeature {
		if strings.Contains(lower, kw) {
			return TypeFeature
		}
	}
	return TypeNewsReport
}

// BuildStoredArticle normalizes a generated article into its persisted form.
// It is pure: identical inputs always produce identical output.
func BuildStoredArticle(a Article, prov Provenance, provider, model string, now time.Time) StoredArticle {
	words := CountWords(a.Body)

	categoryTag := "summit"
	if a.Category != "" {
		categoryTag = strings.ToLower(a.Category)
	}

	desc := a.Lede
	if len(desc) > seoDescMax {
		desc = desc[:seoDescMax]
	}

	return StoredArticle{
		Title:       a.Headline,
		Slug:        Slugify(a.Headline),
		Status:      "published",
		Content:     StripTags(a.Body),
		ContentHTML: a.Body,
		Excerpt:     a.Lede,
		Tags:        []string{CampaignTag, categoryTag},
		Categories:  []string{CoverageCategory},
		AIProvider:  provider,
		AIModel:     model,
		ReadTime:    ReadTimeMinutes(a.ReadTime, words),
		WordCount:   words,
		SEOTitle:    a.Headline + seoSuffix,
		SEODesc:     desc,
		Category:    a.Category,
		Source:      a.Source,
		Provenance:  prov,
		PublishedAt: now,
		CreatedAt:   now,
	}
}

// BuildMention normalizes a social candidate into its persisted form.
func BuildMention(c Candidate, hashtags []string, now time.Time) SocialMention {
	platform := SocialTwitter
	if c.Platform == PlatformSocialImage {
		platform = SocialInstagram
	}

	content := c.RawText
	if content == "" {
		content = "Summit mention: " + c.Title
	}

	published := c.PublishedAt
	if published.IsZero() {
		published = now
	}

	return SocialMention{
		Platform:       platform,
		ExternalPostID: c.SourceID,
		Content:        content,
		Status:         "published",
		Likes:          c.Likes,
		Comments:       c.Comments,
		Shares:         c.Shares,
		Hashtags:       hashtags,
		Mentions:       []string{"FutureAtoms", "ChipOS", "IndiaAISummit"},
		PublishedAt:    published,
		CreatedAt:      now,
	}
}
