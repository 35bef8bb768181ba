package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/futureatoms/summitwire/internal/domain"
	"github.com/futureatoms/summitwire/internal/ports"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ArticleRepository persists generated articles into the content_pieces table.
type ArticleRepository struct {
	db *sql.DB
}

var _ ports.ArticleRepository = (*ArticleRepository)(nil)

// NewArticleRepository wires a sql.DB implementation.
func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// ExistsByVideoID answers the dedup gate: has this source video already
// produced an article? This is a plain existence check, not an atomic
// reservation; see Insert.
func (r *ArticleRepository) ExistsByVideoID(ctx context.Context, videoID string) (bool, error) {
	if r.db == nil || videoID == "" {
		return false, nil
	}

	query, args, err := psql.
		Select("1").
		From("content_pieces").
		Where(sq.Eq{"source_video_id": videoID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query existing article: %w", err)
	}
	return true, nil
}

// Insert stores a normalized article and returns its generated id.
func (r *ArticleRepository) Insert(ctx context.Context, a domain.StoredArticle) (string, error) {
	if r.db == nil {
		return "", fmt.Errorf("article repository not connected")
	}

	id := a.ID
	if id == "" {
		id = uuid.NewString()
	}

	query, args, err := psql.
		Insert("content_pieces").
		Columns(
			"id", "title", "slug", "type", "status",
			"content", "content_html", "excerpt",
			"tags", "categories",
			"ai_generated", "ai_provider", "ai_model",
			"published_at", "reading_time_minutes", "word_count",
			"seo_title", "seo_description",
			"category", "source",
			"summit_day", "source_video_id", "source_video_url", "article_type", "pipeline_version",
			"created_at",
		).
		Values(
			id, a.Title, a.Slug, "article", a.Status,
			a.Content, a.ContentHTML, a.Excerpt,
			pq.StringArray(a.Tags), pq.StringArray(a.Categories),
			true, a.AIProvider, a.AIModel,
			a.PublishedAt, a.ReadTime, a.WordCount,
			a.SEOTitle, a.SEODesc,
			a.Category, a.Source,
			a.Provenance.SummitDay, nullString(a.Provenance.VideoID), nullString(a.Provenance.VideoURL), string(a.Provenance.ArticleType), domain.PipelineVersion,
			a.CreatedAt,
		).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("insert article: %w", err)
	}
	return id, nil
}

// List returns published summit articles, newest first, honoring optional
// day/category filters.
func (r *ArticleRepository) List(ctx context.Context, filter domain.ArticleFilter) ([]domain.StoredArticle, error) {
	if r.db == nil {
		return nil, fmt.Errorf("article repository not connected")
	}

	builder := psql.
		Select(
			"id", "title", "slug", "status",
			"content", "content_html", "excerpt",
			"tags", "categories",
			"ai_provider", "ai_model",
			"published_at", "reading_time_minutes", "word_count",
			"seo_title", "seo_description",
			"category", "source",
			"summit_day", "source_video_id", "source_video_url", "article_type",
			"created_at",
		).
		From("content_pieces").
		Where(sq.Eq{"status": "published"}).
		Where("categories @> ?", pq.StringArray{domain.CoverageCategory}).
		OrderBy("published_at DESC")

	if filter.Day != "" {
		builder = builder.Where(sq.Eq{"summit_day": filter.Day})
	}
	if filter.Category != "" {
		builder = builder.Where(sq.Eq{"category": filter.Category})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.StoredArticle
	for rows.Next() {
		var (
			a                 domain.StoredArticle
			tags, categories  pq.StringArray
			videoID, videoURL sql.NullString
			articleType       string
		)
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Slug, &a.Status,
			&a.Content, &a.ContentHTML, &a.Excerpt,
			&tags, &categories,
			&a.AIProvider, &a.AIModel,
			&a.PublishedAt, &a.ReadTime, &a.WordCount,
			&a.SEOTitle, &a.SEODesc,
			&a.Category, &a.Source,
			&a.Provenance.SummitDay, &videoID, &videoURL, &articleType,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		a.Tags = tags
		a.Categories = categories
		a.Provenance.VideoID = videoID.String
		a.Provenance.VideoURL = videoURL.String
		a.Provenance.ArticleType = domain.ArticleType(articleType)
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}

	return articles, nil
}

// MentionRepository persists social mentions into the social_posts table.
type MentionRepository struct {
	db *sql.DB
}

var _ ports.MentionRepository = (*MentionRepository)(nil)

// NewMentionRepository wires a sql.DB implementation.
func NewMentionRepository(db *sql.DB) *MentionRepository {
	return &MentionRepository{db: db}
}

// Exists answers the dedup gate for a (platform, external post id) pair.
func (r *MentionRepository) Exists(ctx context.Context, platform domain.SocialPlatform, externalID string) (bool, error) {
	if r.db == nil || externalID == "" {
		return false, nil
	}

	query, args, err := psql.
		Select("1").
		From("social_posts").
		Where(sq.Eq{"platform": string(platform), "external_post_id": externalID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query existing mention: %w", err)
	}
	return true, nil
}

// Insert stores a normalized social mention.
func (r *MentionRepository) Insert(ctx context.Context, m domain.SocialMention) error {
	if r.db == nil {
		return fmt.Errorf("mention repository not connected")
	}

	id := m.ID
	if id == "" {
		id = uuid.NewString()
	}

	query, args, err := psql.
		Insert("social_posts").
		Columns(
			"id", "platform", "content",
			"external_post_id", "external_url", "status",
			"published_at", "likes", "comments", "shares",
			"hashtags", "mentions", "created_at",
		).
		Values(
			id, string(m.Platform), m.Content,
			m.ExternalPostID, nullString(m.ExternalURL), m.Status,
			m.PublishedAt, m.Likes, m.Comments, m.Shares,
			pq.StringArray(m.Hashtags), pq.StringArray(m.Mentions), m.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert mention: %w", err)
	}
	return nil
}

// List returns stored mentions, newest first, honoring the optional platform
// filter.
func (r *MentionRepository) List(ctx context.Context, filter domain.MentionFilter) ([]domain.SocialMention, error) {
	if r.db == nil {
		return nil, fmt.Errorf("mention repository not connected")
	}

	builder := psql.
		Select(
			"id", "platform", "content",
			"external_post_id", "external_url", "status",
			"published_at", "likes", "comments", "shares",
			"hashtags", "mentions", "created_at",
		).
		From("social_posts").
		OrderBy("published_at DESC")

	if filter.Platform != "" {
		builder = builder.Where(sq.Eq{"platform": string(filter.Platform)})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query mentions: %w", err)
	}
	defer rows.Close()

	var mentions []domain.SocialMention
	for rows.Next() {
		var (
			m                     domain.SocialMention
			platform              string
			externalURL           sql.NullString
			hashtags, mentionsArr pq.StringArray
		)
		if err := rows.Scan(
			&m.ID, &platform, &m.Content,
			&m.ExternalPostID, &externalURL, &m.Status,
			&m.PublishedAt, &m.Likes, &m.Comments, &m.Shares,
			&hashtags, &mentionsArr, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan mention: %w", err)
		}
		m.Platform = domain.SocialPlatform(platform)
		m.ExternalURL = externalURL.String
		m.Hashtags = hashtags
		m.Mentions = mentionsArr
		mentions = append(mentions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mentions: %w", err)
	}

	return mentions, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}
