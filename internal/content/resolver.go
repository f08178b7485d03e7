// Package content acquires generation input text from external sources
// and caches fetched results in Redis.
package content

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quizforge/quizforge-backend/internal/config"
	"github.com/quizforge/quizforge-backend/internal/model"
)

// Fetcher retrieves text content for one source type.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type fetcherFunc func(ctx context.Context, url string) (string, error)

func (f fetcherFunc) Fetch(ctx context.Context, url string) (string, error) { return f(ctx, url) }

// Resolver fetches source content with a Redis read-through cache, so
// generating a quiz and a summary from the same URL costs one upstream
// call.
type Resolver struct {
	fetchers map[model.SourceType]Fetcher
	redis    *redis.Client
	ttl      time.Duration
	log      zerolog.Logger
}

func NewResolver(youtube *YouTubeClient, article *ArticleClient, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *Resolver {
	return &Resolver{
		fetchers: map[model.SourceType]Fetcher{
			model.SourceYouTube: fetcherFunc(youtube.Transcript),
			model.SourceArticle: fetcherFunc(article.Extract),
		},
		redis: rdb,
		ttl:   ttl,
		log:   log.With().Str("component", "content_resolver").Logger(),
	}
}

// Resolve fetches the text for a url-based source, serving from cache
// when possible. Cache failures degrade to a direct fetch.
func (r *Resolver) Resolve(ctx context.Context, source model.SourceType, url string) (string, error) {
	fetcher, ok := r.fetchers[source]
	if !ok {
		return "", &EmptyContentError{Source: string(source), URL: url}
	}

	key := config.CacheKey.SourceContentKey(string(source), url)
	if r.redis != nil {
		cached, err := r.redis.Get(ctx, key).Result()
		if err == nil {
			r.log.Debug().Str("source", string(source)).Msg("Content cache hit")
			return cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			r.log.Warn().Err(err).Msg("Content cache read failed")
		}
	}

	text, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	if r.redis != nil {
		if err := r.redis.Set(ctx, key, text, r.ttl).Err(); err != nil {
			r.log.Warn().Err(err).Msg("Content cache write failed")
		}
	}
	return text, nil
}
