package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	articleExtractorURL  = "https://webpage-extractor1.p.rapidapi.com/webpage_extractor/text"
	articleExtractorHost = "webpage-extractor1.p.rapidapi.com"
)

// ArticleClient extracts readable text from web pages through the
// RapidAPI webpage extractor.
type ArticleClient struct {
	httpClient *http.Client
	apiKey     string
	endpoint   string
}

func NewArticleClient(apiKey string) *ArticleClient {
	return &ArticleClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		endpoint:   articleExtractorURL,
	}
}

func newArticleClientForTest(apiKey, endpoint string) *ArticleClient {
	c := NewArticleClient(apiKey)
	c.endpoint = endpoint
	return c
}

// Extract fetches the main text of an article page.
func (c *ArticleClient) Extract(ctx context.Context, articleURL string) (string, error) {
	payload, err := json.Marshal(map[string]string{"url": articleURL})
	if err != nil {
		return "", fmt.Errorf("encode extractor payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build extractor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", articleExtractorHost)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("extract article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{Source: "article", StatusCode: resp.StatusCode}
	}

	var body struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode extractor response: %w", err)
	}
	if strings.TrimSpace(body.Response) == "" {
		return "", &EmptyContentError{Source: "article", URL: articleURL}
	}
	return body.Response, nil
}
