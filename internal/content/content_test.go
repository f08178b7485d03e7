package content

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestYouTubeTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "supa-key" {
			t.Errorf("x-api-key = %q", r.Header.Get("x-api-key"))
		}
		q := r.URL.Query()
		if q.Get("url") != "https://www.youtube.com/watch?v=abc123" {
			t.Errorf("url param = %q", q.Get("url"))
		}
		if q.Get("text") != "true" || q.Get("lang") != "en" {
			t.Errorf("text/lang params = %q/%q", q.Get("text"), q.Get("lang"))
		}
		json.NewEncoder(w).Encode(map[string]string{"content": "the full transcript"})
	}))
	defer srv.Close()

	c := newYouTubeClientForTest("supa-key", srv.URL)
	text, err := c.Transcript(context.Background(), "https://www.youtube.com/watch?v=abc123")
	if err != nil {
		t.Fatalf("Transcript: %v", err)
	}
	if text != "the full transcript" {
		t.Errorf("text = %q", text)
	}
}

func TestYouTubeTranscriptEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"content": "   "})
	}))
	defer srv.Close()

	c := newYouTubeClientForTest("k", srv.URL)
	_, err := c.Transcript(context.Background(), "https://www.youtube.com/watch?v=abc123")

	var empty *EmptyContentError
	if !errors.As(err, &empty) {
		t.Fatalf("got %v, want EmptyContentError", err)
	}
}

func TestYouTubeTranscriptUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newYouTubeClientForTest("k", srv.URL)
	_, err := c.Transcript(context.Background(), "https://www.youtube.com/watch?v=gone")

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("got %v, want FetchError", err)
	}
	if fetchErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", fetchErr.StatusCode)
	}
}

func TestArticleExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.Header.Get("x-rapidapi-key") != "rapid-key" {
			t.Errorf("x-rapidapi-key = %q", r.Header.Get("x-rapidapi-key"))
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["url"] != "https://example.com/post" {
			t.Errorf("url = %q", body["url"])
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "article body text"})
	}))
	defer srv.Close()

	c := newArticleClientForTest("rapid-key", srv.URL)
	text, err := c.Extract(context.Background(), "https://example.com/post")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if text != "article body text" {
		t.Errorf("text = %q", text)
	}
}

func TestArticleExtractEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"response": ""})
	}))
	defer srv.Close()

	c := newArticleClientForTest("k", srv.URL)
	_, err := c.Extract(context.Background(), "https://example.com/post")

	var empty *EmptyContentError
	if !errors.As(err, &empty) {
		t.Fatalf("got %v, want EmptyContentError", err)
	}
}

func TestVideoID(t *testing.T) {
	cases := []struct{ url, want string }{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10s", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://example.com/video", ""},
	}
	for _, c := range cases {
		if got := VideoID(c.url); got != c.want {
			t.Errorf("VideoID(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}
