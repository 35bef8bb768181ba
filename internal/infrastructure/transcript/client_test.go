package transcript

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchJoinsSegments(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("videoId"); got != "vid-1" {
			t.Errorf("videoId = %q, want vid-1", got)
		}
		if got := r.URL.Query().Get("lang"); got != "en" {
			t.Errorf("lang = %q, want en", got)
		}
		fmt.Fprint(w, `{"segments":[{"text":"welcome to the"},{"text":""},{"text":"summit keynote"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())
	text, err := client.Fetch(context.Background(), "vid-1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if text != "welcome to the summit keynote" {
		t.Errorf("text = %q", text)
	}
}

func TestFetchErrors(t *testing.T) {
	t.Parallel()

	t.Run("service error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no captions", http.StatusNotFound)
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client())
		if _, err := client.Fetch(context.Background(), "vid-1"); err == nil {
			t.Fatal("expected error for 404 response")
		}
	})

	t.Run("bad payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `not json`)
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client())
		if _, err := client.Fetch(context.Background(), "vid-1"); err == nil {
			t.Fatal("expected decode error")
		}
	})

	t.Run("empty segments", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"segments":[]}`)
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client())
		text, err := client.Fetch(context.Background(), "vid-1")
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if text != "" {
			t.Errorf("text = %q, want empty", text)
		}
	})
}
