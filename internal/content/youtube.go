package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const supadataBaseURL = "https://api.supadata.ai/v1"

// YouTubeClient fetches plain-text video transcripts from the Supadata
// transcript API.
type YouTubeClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

func NewYouTubeClient(apiKey string) *YouTubeClient {
	return &YouTubeClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		baseURL:    supadataBaseURL,
	}
}

// newYouTubeClientForTest points the client at a local test server.
func newYouTubeClientForTest(apiKey, baseURL string) *YouTubeClient {
	c := NewYouTubeClient(apiKey)
	c.baseURL = baseURL
	return c
}

// Transcript fetches the English transcript of a video as one block of
// text.
func (c *YouTubeClient) Transcript(ctx context.Context, videoURL string) (string, error) {
	endpoint := fmt.Sprintf("%s/youtube/transcript?%s", c.baseURL, url.Values{
		"url":  {videoURL},
		"text": {"true"},
		"lang": {"en"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build transcript request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{Source: "youtube", StatusCode: resp.StatusCode}
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode transcript response: %w", err)
	}
	if strings.TrimSpace(body.Content) == "" {
		return "", &EmptyContentError{Source: "youtube", URL: videoURL}
	}
	return body.Content, nil
}

// VideoID extracts the video ID from a YouTube watch or embed URL.
// Returns an empty string when the URL matches neither form.
func VideoID(videoURL string) string {
	if _, after, ok := strings.Cut(videoURL, "embed/"); ok {
		return after
	}
	if _, after, ok := strings.Cut(videoURL, "watch?v="); ok {
		id, _, _ := strings.Cut(after, "&")
		return id
	}
	return ""
}
