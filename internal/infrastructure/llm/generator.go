package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/futureatoms/summitwire/internal/config"
	"github.com/futureatoms/summitwire/internal/domain"
	"github.com/futureatoms/summitwire/internal/ports"
)

// Generator produces structured articles through an OpenAI-compatible
// chat-completions endpoint. Every failure mode (transport error, non-2xx
// status, empty completion, malformed JSON) surfaces as an error the caller
// treats as "skip this candidate".
type Generator struct {
	endpoint      string
	model         string
	token         string
	temperature   float64
	maxTokens     int
	maxTranscript int
	httpClient    *http.Client
}

var _ ports.Generator = (*Generator)(nil)

// NewGenerator builds a client from configuration.
func NewGenerator(cfg config.LLMConfig, maxTranscript int, client *http.Client) *Generator {
	if client == nil {
		client = &http.Client{Timeout: 90 * time.Second}
	}
	return &Generator{
		endpoint:      cfg.Endpoint,
		model:         cfg.Model,
		token:         cfg.Token,
		temperature:   cfg.Temperature,
		maxTokens:     cfg.MaxTokens,
		maxTranscript: maxTranscript,
		httpClient:    client,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate runs one completion call and parses the strict six-field contract
// out of the response.
func (g *Generator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.Article, error) {
	if g.token == "" || g.endpoint == "" || g.model == "" {
		return nil, fmt.Errorf("generator misconfigured")
	}

	transcript := req.Transcript
	if g.maxTranscript > 0 && len(transcript) > g.maxTranscript {
		transcript = transcript[:g.maxTranscript]
	}

	userMsg := fmt.Sprintf(`Write a %s article for Summit Day %s.

Video Title: %q

Transcript:
%s

Generate a world-class article. Return ONLY valid JSON with keys: headline, category, lede, body (HTML), source, readTime.`,
		req.ArticleType, req.Day, req.VideoTitle, transcript)

	body, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMsg},
		},
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal completion payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("completion api %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode completion: %w", err)
	}
	if len(payload.Choices) == 0 || payload.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("empty completion")
	}

	return ParseArticle(payload.Choices[0].Message.Content)
}

// ParseArticle extracts the article JSON from a raw completion and validates
// it against the fixed contract.
func ParseArticle(content string) (*domain.Article, error) {
	raw := ExtractJSON(content)
	if raw == nil {
		return nil, fmt.Errorf("no JSON object in completion")
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()

	var article domain.Article
	if err := decoder.Decode(&article); err != nil {
		return nil, fmt.Errorf("decode article: %w", err)
	}
	if article.Headline == "" || article.Body == "" {
		return nil, fmt.Errorf("article missing headline or body")
	}

	return &article, nil
}

// ExtractJSON returns the outermost {...} block of a completion, tolerating
// markdown fences and prose around it. Returns nil when no object is present.
func ExtractJSON(content string) []byte {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return nil
	}
	return []byte(content[start : end+1])
}
