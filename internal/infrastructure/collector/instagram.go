package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/futureatoms/summitwire/internal/domain"
	"github.com/futureatoms/summitwire/internal/ports"
)

// InstagramSource polls the public hashtag endpoint for each configured tag,
// decoding the response defensively per tag. The endpoint is undocumented and
// its payload shifts; a tag that fails to decode is logged and skipped.
type InstagramSource struct {
	baseURL  string
	hashtags []string
	maxPosts int
	delay    time.Duration
	client   *http.Client
	logger   *slog.Logger
}

var _ ports.CandidateSource = (*InstagramSource)(nil)

// NewInstagramSource wires the hashtag endpoint. Hashtags are configured
// without the leading '#'.
func NewInstagramSource(baseURL string, hashtags []string, maxPosts int, delay time.Duration, client *http.Client, logger *slog.Logger) *InstagramSource {
	if maxPosts <= 0 {
		maxPosts = 5
	}
	return &InstagramSource{
		baseURL:  baseURL,
		hashtags: hashtags,
		maxPosts: maxPosts,
		delay:    delay,
		client:   defaultHTTPClient(client),
		logger:   logger,
	}
}

// Name identifies the source inside the registry.
func (s *InstagramSource) Name() string {
	return "instagram"
}

// Collect walks every configured hashtag with a fixed delay in between.
func (s *InstagramSource) Collect(ctx context.Context) ([]domain.Candidate, error) {
	var candidates []domain.Candidate

	for i, tag := range s.hashtags {
		if i > 0 {
			wait(ctx, s.delay)
		}
		if ctx.Err() != nil {
			break
		}

		found, err := s.fetchTag(ctx, tag)
		if err != nil {
			s.warn("hashtag fetch failed", "tag", tag, "error", err)
			continue
		}
		candidates = append(candidates, found...)
	}

	return candidates, nil
}

type hashtagResponse struct {
	Graphql struct {
		Hashtag struct {
			EdgeHashtagToMedia struct {
				Edges []struct {
					Node struct {
						ID                 string `json:"id"`
						Shortcode          string `json:"shortcode"`
						EdgeMediaToCaption struct {
							Edges []struct {
								Node struct {
									Text string `json:"text"`
								} `json:"node"`
							} `json:"edges"`
						} `json:"edge_media_to_caption"`
						EdgeLikedBy struct {
							Count int `json:"count"`
						} `json:"edge_liked_by"`
						EdgeMediaToComment struct {
							Count int `json:"count"`
						} `json:"edge_media_to_comment"`
						TakenAtTimestamp int64 `json:"taken_at_timestamp"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"edge_hashtag_to_media"`
		} `json:"hashtag"`
	} `json:"graphql"`
}

func (s *InstagramSource) fetchTag(ctx context.Context, tag string) ([]domain.Candidate, error) {
	endpoint := fmt.Sprintf("%s/%s/?__a=1&__d=dis", s.baseURL, tag)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request tag page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("instagram returned %s", resp.Status)
	}

	var payload hashtagResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode tag payload: %w", err)
	}

	edges := payload.Graphql.Hashtag.EdgeHashtagToMedia.Edges
	if len(edges) > s.maxPosts {
		edges = edges[:s.maxPosts]
	}

	candidates := make([]domain.Candidate, 0, len(edges))
	for _, edge := range edges {
		node := edge.Node
		if node.ID == "" {
			continue
		}

		var caption string
		if len(node.EdgeMediaToCaption.Edges) > 0 {
			caption = node.EdgeMediaToCaption.Edges[0].Node.Text
		}

		var published time.Time
		if node.TakenAtTimestamp > 0 {
			published = time.Unix(node.TakenAtTimestamp, 0).UTC()
		}

		candidates = append(candidates, domain.Candidate{
			SourceID:    node.ID,
			Platform:    domain.PlatformSocialImage,
			Title:       tag,
			PublishedAt: published,
			RawText:     caption,
			Likes:       node.EdgeLikedBy.Count,
			Comments:    node.EdgeMediaToComment.Count,
		})
	}

	return candidates, nil
}

func (s *InstagramSource) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
