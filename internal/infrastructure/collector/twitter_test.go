package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futureatoms/summitwire/internal/domain"
)

func timelineHTML(tweets ...[2]string) string {
	page := `<html><body><div class="timeline">`
	for _, tw := range tweets {
		page += fmt.Sprintf(
			`<div class="timeline-Tweet" data-tweet-id="%s"><p class="timeline-Tweet-text"> %s </p></div>`,
			tw[0], tw[1])
	}
	return page + `</div></body></html>`
}

func TestTwitterCollect(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("q") {
		case "#IndiaAISummit2026":
			fmt.Fprint(w, timelineHTML(
				[2]string{"1001", "Opening day at #IndiaAISummit2026"},
				[2]string{"1002", "ChipOS demo was wild"},
			))
		case "@FutureAtoms":
			fmt.Fprint(w, timelineHTML(
				[2]string{"1002", "ChipOS demo was wild"},
				[2]string{"1003", "Great panel by @FutureAtoms"},
			))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	source := NewTwitterSource(server.URL, []string{"#IndiaAISummit2026", "@FutureAtoms"}, 10, 0, server.Client(), nil)

	candidates, err := source.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(candidates) != 3 {
		t.Fatalf("got %d candidates, want 3 (tweet 1002 deduplicated)", len(candidates))
	}
	if candidates[0].SourceID != "1001" {
		t.Errorf("first id = %q, want 1001", candidates[0].SourceID)
	}
	if candidates[0].Platform != domain.PlatformSocialText {
		t.Errorf("platform = %q, want %q", candidates[0].Platform, domain.PlatformSocialText)
	}
	if candidates[0].Title != "#IndiaAISummit2026" {
		t.Errorf("title = %q, want originating query", candidates[0].Title)
	}
	if candidates[0].RawText != "Opening day at #IndiaAISummit2026" {
		t.Errorf("text = %q, want trimmed tweet text", candidates[0].RawText)
	}
	if candidates[2].SourceID != "1003" {
		t.Errorf("third id = %q, want 1003", candidates[2].SourceID)
	}
}

func TestTwitterCollectSkipsFailedQuery(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "#broken" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, timelineHTML([2]string{"2001", "still collecting"}))
	}))
	defer server.Close()

	source := NewTwitterSource(server.URL, []string{"#broken", "#working"}, 10, 0, server.Client(), nil)

	candidates, err := source.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	if candidates[0].SourceID != "2001" {
		t.Errorf("id = %q, want 2001", candidates[0].SourceID)
	}
}

func TestTwitterCollectNoQueries(t *testing.T) {
	t.Parallel()

	source := NewTwitterSource("http://unused.invalid", nil, 10, 0, nil, nil)
	candidates, err := source.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("got %d candidates, want 0", len(candidates))
	}
}
