package transporthttp

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/futureatoms/summitwire/internal/domain"
	"github.com/futureatoms/summitwire/internal/ports"
)

const (
	defaultArticleLimit = 50
	defaultMentionLimit = 30
	maxListLimit        = 100
	minTranscriptChars  = 50
)

// ServerDeps wires the repositories and generator into the HTTP surface.
type ServerDeps struct {
	Articles       ports.ArticleRepository
	Mentions       ports.MentionRepository
	Generator      ports.Generator
	Limiter        *Limiter
	AllowedOrigins []string
	AIProvider     string
	AIModel        string
	Logger         *slog.Logger
}

// Server exposes on-demand generation and the two read surfaces.
type Server struct {
	articles       ports.ArticleRepository
	mentions       ports.MentionRepository
	generator      ports.Generator
	limiter        *Limiter
	allowedOrigins []string
	aiProvider     string
	aiModel        string
	logger         *slog.Logger
	now            func() time.Time
}

// NewServer constructs the HTTP layer.
func NewServer(deps ServerDeps) *Server {
	return &Server{
		articles:       deps.Articles,
		mentions:       deps.Mentions,
		generator:      deps.Generator,
		limiter:        deps.Limiter,
		allowedOrigins: deps.AllowedOrigins,
		aiProvider:     deps.AIProvider,
		aiModel:        deps.AIModel,
		logger:         deps.Logger,
		now:            time.Now,
	}
}

// Routes assembles the gin engine.
func (s *Server) Routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	if len(s.allowedOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins: s.allowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{"Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}

	engine.GET("/healthz", s.health)

	api := engine.Group("/api/summit")
	{
		api.GET("/articles", s.handleArticles)
		api.GET("/social", s.handleSocial)
		if s.limiter != nil {
			api.POST("/generate", s.limiter.Middleware(), s.handleGenerate)
		} else {
			api.POST("/generate", s.handleGenerate)
		}
	}

	return engine
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type generateRequest struct {
	Transcript  string `json:"transcript"`
	ArticleType string `json:"articleType"`
	Day         string `json:"day"`
	VideoURL    string `json:"videoUrl"`
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Transcript) < minTranscriptChars {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transcript is required (minimum 50 characters)"})
		return
	}

	articleType := domain.ArticleType(req.ArticleType)
	if articleType == "" {
		articleType = domain.TypeNewsReport
	}
	day := req.Day
	if day == "" {
		day = s.now().UTC().Format("2006-01-02")
	}

	article, err := s.generator.Generate(c.Request.Context(), domain.GenerationRequest{
		Transcript:  req.Transcript,
		ArticleType: articleType,
		Day:         day,
		VideoTitle:  "Manual Submission",
	})
	if err != nil {
		s.warn("on-demand generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "article generation failed"})
		return
	}

	prov := domain.Provenance{
		VideoURL:    req.VideoURL,
		SummitDay:   day,
		ArticleType: articleType,
	}
	stored := domain.BuildStoredArticle(*article, prov, s.aiProvider, s.aiModel, s.now().UTC())

	id, err := s.articles.Insert(c.Request.Context(), stored)
	if err != nil {
		s.warn("on-demand persist failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"articleId": id,
		"article": gin.H{
			"headline": article.Headline,
			"category": article.Category,
			"lede":     article.Lede,
			"body":     article.Body,
			"readTime": stored.ReadTime,
		},
	})
}

func (s *Server) handleArticles(c *gin.Context) {
	filter := domain.ArticleFilter{
		Day:      c.Query("day"),
		Category: strings.ToUpper(c.Query("category")),
		Limit:    clampLimit(c.Query("limit"), defaultArticleLimit),
	}

	articles, err := s.articles.List(c.Request.Context(), filter)
	if err != nil {
		s.warn("article list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	payload := make([]gin.H, 0, len(articles))
	for _, a := range articles {
		payload = append(payload, articleJSON(a))
	}

	c.JSON(http.StatusOK, gin.H{
		"articles":  payload,
		"count":     len(payload),
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleSocial(c *gin.Context) {
	filter := domain.MentionFilter{
		Platform: domain.SocialPlatform(c.Query("platform")),
		Limit:    clampLimit(c.Query("limit"), defaultMentionLimit),
	}

	mentions, err := s.mentions.List(c.Request.Context(), filter)
	if err != nil {
		s.warn("mention list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	payload := make([]gin.H, 0, len(mentions))
	for _, m := range mentions {
		payload = append(payload, mentionJSON(m))
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":     payload,
		"count":     len(payload),
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

func articleJSON(a domain.StoredArticle) gin.H {
	return gin.H{
		"id":                   a.ID,
		"title":                a.Title,
		"slug":                 a.Slug,
		"status":               a.Status,
		"content_html":         a.ContentHTML,
		"excerpt":              a.Excerpt,
		"tags":                 a.Tags,
		"categories":           a.Categories,
		"ai_provider":          a.AIProvider,
		"ai_model":             a.AIModel,
		"published_at":         a.PublishedAt.UTC().Format(time.RFC3339),
		"reading_time_minutes": a.ReadTime,
		"word_count":           a.WordCount,
		"category":             a.Category,
		"source":               a.Source,
		"summit_day":           a.Provenance.SummitDay,
		"source_video_id":      a.Provenance.VideoID,
		"source_video_url":     a.Provenance.VideoURL,
		"article_type":         string(a.Provenance.ArticleType),
	}
}

func mentionJSON(m domain.SocialMention) gin.H {
	return gin.H{
		"id":               m.ID,
		"platform":         string(m.Platform),
		"content":          m.Content,
		"external_post_id": m.ExternalPostID,
		"external_url":     m.ExternalURL,
		"status":           m.Status,
		"published_at":     m.PublishedAt.UTC().Format(time.RFC3339),
		"likes":            m.Likes,
		"comments":         m.Comments,
		"shares":           m.Shares,
		"hashtags":         m.Hashtags,
		"mentions":         m.Mentions,
	}
}

func clampLimit(raw string, fallback int) int {
	limit := fallback
	if raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return limit
}

func (s *Server) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
