package collector

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/futureatoms/summitwire/internal/domain"
	"github.com/futureatoms/summitwire/internal/ports"
)

// TwitterSource walks a fixed list of search queries against the public
// syndication endpoint and scrapes tweet ids out of the returned markup.
// Each query failure is logged and skipped; the batch always completes.
type TwitterSource struct {
	searchURL string
	queries   []string
	count     int
	delay     time.Duration
	client    *http.Client
	logger    *slog.Logger
}

var _ ports.CandidateSource = (*TwitterSource)(nil)

// NewTwitterSource wires the syndication search endpoint.
func NewTwitterSource(searchURL string, queries []string, count int, delay time.Duration, client *http.Client, logger *slog.Logger) *TwitterSource {
	if count <= 0 {
		count = 10
	}
	return &TwitterSource{
		searchURL: searchURL,
		queries:   queries,
		count:     count,
		delay:     delay,
		client:    defaultHTTPClient(client),
		logger:    logger,
	}
}

// Name identifies the source inside the registry.
func (s *TwitterSource) Name() string {
	return "twitter"
}

// Collect runs every configured query with a fixed delay in between.
func (s *TwitterSource) Collect(ctx context.Context) ([]domain.Candidate, error) {
	var candidates []domain.Candidate
	seen := map[string]struct{}{}

	for i, query := range s.queries {
		if i > 0 {
			wait(ctx, s.delay)
		}
		if ctx.Err() != nil {
			break
		}

		found, err := s.search(ctx, query)
		if err != nil {
			s.warn("search query failed", "query", query, "error", err)
			continue
		}
		for _, c := range found {
			if _, dup := seen[c.SourceID]; dup {
				continue
			}
			seen[c.SourceID] = struct{}{}
			candidates = append(candidates, c)
		}
	}

	return candidates, nil
}

func (s *TwitterSource) search(ctx context.Context, query string) ([]domain.Candidate, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(s.count))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request timeline: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("syndication returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse timeline: %w", err)
	}

	var candidates []domain.Candidate
	doc.Find("[data-tweet-id]").Each(func(i int, sel *goquery.Selection) {
		id, ok := sel.Attr("data-tweet-id")
		if !ok || id == "" {
			return
		}
		text := strings.TrimSpace(sel.Find(".timeline-Tweet-text").First().Text())
		candidates = append(candidates, domain.Candidate{
			SourceID: id,
			Platform: domain.PlatformSocialText,
			Title:    query,
			RawText:  text,
		})
	})

	return candidates, nil
}

func (s *TwitterSource) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
