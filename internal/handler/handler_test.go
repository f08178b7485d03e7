package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/quizforge/quizforge-backend/internal/content"
	"github.com/quizforge/quizforge-backend/internal/generation"
	"github.com/quizforge/quizforge-backend/internal/llm"
	"github.com/quizforge/quizforge-backend/internal/response"
	"github.com/quizforge/quizforge-backend/internal/service"
)

func TestFailGenerationStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   response.ErrCode
	}{
		{
			name:       "missing content",
			err:        service.ErrMissingContent,
			wantStatus: http.StatusBadRequest,
			wantCode:   response.ErrMissingContent,
		},
		{
			name:       "no mistakes",
			err:        service.ErrNoMistakes,
			wantStatus: http.StatusNotFound,
			wantCode:   response.ErrNoMistakes,
		},
		{
			name:       "unresolvable mistakes",
			err:        service.ErrIncompleteMistakeData,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   response.ErrMistakeDataBroken,
		},
		{
			name:       "content fetch failure",
			err:        &content.FetchError{Source: "youtube", StatusCode: 500},
			wantStatus: http.StatusBadGateway,
			wantCode:   response.ErrContentUnavailable,
		},
		{
			name:       "provider rate limited",
			err:        fmt.Errorf("generate: %w", &llm.RateLimitError{}),
			wantStatus: http.StatusTooManyRequests,
			wantCode:   response.ErrProviderRateLimit,
		},
		{
			name:       "provider timeout",
			err:        &llm.TimeoutError{Err: errors.New("deadline exceeded")},
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   response.ErrProviderTimeout,
		},
		{
			name:       "provider down",
			err:        fmt.Errorf("generate: %w", &llm.UnavailableError{Err: errors.New("503")}),
			wantStatus: http.StatusBadGateway,
			wantCode:   response.ErrProviderUnavailable,
		},
		{
			name:       "provider returned nothing",
			err:        &llm.EmptyResponseError{Model: "llama-3.3-70b-versatile"},
			wantStatus: http.StatusBadGateway,
			wantCode:   response.ErrGenerationFailed,
		},
		{
			name:       "malformed model output",
			err:        &generation.MalformedOutputError{Err: errors.New("bad json")},
			wantStatus: http.StatusBadGateway,
			wantCode:   response.ErrGenerationFailed,
		},
		{
			name:       "unexpected error",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   response.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/quizzes", nil)

			failGeneration(c, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body struct {
				Error struct {
					Code response.ErrCode `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body.Error.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", body.Error.Code, tt.wantCode)
			}
		})
	}
}
