package collector

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/futureatoms/summitwire/internal/domain"
	"github.com/futureatoms/summitwire/internal/ports"
)

// YouTubeSource reads the channel syndication feed, keeps entries published
// inside the summit window, and attaches a transcript to each retained video.
// Videos without a usable transcript are dropped with a warning.
type YouTubeSource struct {
	feedURL       string
	parser        *gofeed.Parser
	transcripts   ports.TranscriptFetcher
	windowStart   time.Time
	windowEnd     time.Time
	minTranscript int
	logger        *slog.Logger
}

var _ ports.CandidateSource = (*YouTubeSource)(nil)

// NewYouTubeSource wires the feed parser and transcript fetcher. The window
// bounds are inclusive calendar dates.
func NewYouTubeSource(feedURL string, transcripts ports.TranscriptFetcher, windowStart, windowEnd time.Time, minTranscript int, client *http.Client, logger *slog.Logger) *YouTubeSource {
	parser := gofeed.NewParser()
	parser.Client = defaultHTTPClient(client)
	parser.UserAgent = userAgent
	return &YouTubeSource{
		feedURL:       feedURL,
		parser:        parser,
		transcripts:   transcripts,
		windowStart:   windowStart.UTC().Truncate(24 * time.Hour),
		windowEnd:     windowEnd.UTC().Truncate(24 * time.Hour),
		minTranscript: minTranscript,
		logger:        logger,
	}
}

// Name identifies the source inside the registry.
func (s *YouTubeSource) Name() string {
	return "youtube"
}

// Collect fetches the channel feed and returns one candidate per summit-window
// video that has a usable transcript.
func (s *YouTubeSource) Collect(ctx context.Context) ([]domain.Candidate, error) {
	feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse channel feed: %w", err)
	}

	var candidates []domain.Candidate
	for _, item := range feed.Items {
		videoID := extractVideoID(item)
		if videoID == "" || item.Title == "" {
			continue
		}
		if item.PublishedParsed == nil {
			continue
		}

		published := item.PublishedParsed.UTC()
		if !s.inWindow(published) {
			continue
		}

		transcript, err := s.transcripts.Fetch(ctx, videoID)
		if err != nil {
			s.warn("transcript unavailable", "video_id", videoID, "error", err)
			continue
		}
		if len(transcript) < s.minTranscript {
			s.warn("transcript too short", "video_id", videoID, "title", item.Title, "chars", len(transcript))
			continue
		}

		candidates = append(candidates, domain.Candidate{
			SourceID:    videoID,
			Platform:    domain.PlatformVideo,
			Title:       item.Title,
			PublishedAt: published,
			RawText:     transcript,
		})
	}

	return candidates, nil
}

func (s *YouTubeSource) inWindow(published time.Time) bool {
	day := published.Truncate(24 * time.Hour)
	return !day.Before(s.windowStart) && !day.After(s.windowEnd)
}

func extractVideoID(item *gofeed.Item) string {
	if yt, ok := item.Extensions["yt"]; ok {
		if ids, ok := yt["videoId"]; ok && len(ids) > 0 {
			return ids[0].Value
		}
	}
	// Atom entry ids look like "yt:video:<id>".
	if strings.HasPrefix(item.GUID, "yt:video:") {
		return strings.TrimPrefix(item.GUID, "yt:video:")
	}
	return ""
}

func (s *YouTubeSource) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
