package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/futureatoms/summitwire/internal/domain"
)

func hashtagPayload(ids ...string) string {
	edges := make([]string, 0, len(ids))
	for i, id := range ids {
		edges = append(edges, fmt.Sprintf(`{
			"node": {
				"id": %q,
				"shortcode": "sc%d",
				"edge_media_to_caption": {"edges": [{"node": {"text": "Caption for %s"}}]},
				"edge_liked_by": {"count": %d},
				"edge_media_to_comment": {"count": %d},
				"taken_at_timestamp": 1771408800
			}
		}`, id, i, id, 10+i, i))
	}
	return fmt.Sprintf(`{"graphql": {"hashtag": {"edge_hashtag_to_media": {"edges": [%s]}}}}`,
		strings.Join(edges, ","))
}

func TestInstagramCollect(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("__a") != "1" || r.URL.Query().Get("__d") != "dis" {
			http.Error(w, "missing query params", http.StatusBadRequest)
			return
		}
		switch {
		case strings.HasPrefix(r.URL.Path, "/IndiaAISummit2026/"):
			fmt.Fprint(w, hashtagPayload("ig-1", "ig-2"))
		case strings.HasPrefix(r.URL.Path, "/ChipOS/"):
			fmt.Fprint(w, hashtagPayload("ig-3"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	source := NewInstagramSource(server.URL, []string{"IndiaAISummit2026", "ChipOS"}, 5, 0, server.Client(), nil)

	candidates, err := source.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("got %d candidates, want 3", len(candidates))
	}

	first := candidates[0]
	if first.SourceID != "ig-1" {
		t.Errorf("id = %q, want ig-1", first.SourceID)
	}
	if first.Platform != domain.PlatformSocialImage {
		t.Errorf("platform = %q, want %q", first.Platform, domain.PlatformSocialImage)
	}
	if first.Title != "IndiaAISummit2026" {
		t.Errorf("title = %q, want originating hashtag", first.Title)
	}
	if first.RawText != "Caption for ig-1" {
		t.Errorf("caption = %q", first.RawText)
	}
	if first.Likes != 10 || first.Comments != 0 {
		t.Errorf("engagement = %d likes %d comments", first.Likes, first.Comments)
	}
	want := time.Unix(1771408800, 0).UTC()
	if !first.PublishedAt.Equal(want) {
		t.Errorf("published = %v, want %v", first.PublishedAt, want)
	}
}

func TestInstagramCollectCapsPostsPerTag(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, hashtagPayload("p1", "p2", "p3", "p4", "p5", "p6", "p7"))
	}))
	defer server.Close()

	source := NewInstagramSource(server.URL, []string{"busyTag"}, 5, 0, server.Client(), nil)

	candidates, err := source.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(candidates) != 5 {
		t.Fatalf("got %d candidates, want 5", len(candidates))
	}
}

func TestInstagramCollectSkipsBadTag(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/garbled/") {
			fmt.Fprint(w, `<!DOCTYPE html><html>login wall</html>`)
			return
		}
		fmt.Fprint(w, hashtagPayload("ok-1"))
	}))
	defer server.Close()

	source := NewInstagramSource(server.URL, []string{"garbled", "healthy"}, 5, 0, server.Client(), nil)

	candidates, err := source.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	if candidates[0].SourceID != "ok-1" {
		t.Errorf("id = %q, want ok-1", candidates[0].SourceID)
	}
}
