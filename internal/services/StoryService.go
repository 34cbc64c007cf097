package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"hnblocks/internal/models"
	"hnblocks/internal/providers"
	"hnblocks/internal/ranking"
	"hnblocks/internal/storage/interfaces"
	"hnblocks/internal/structures"
	"hnblocks/internal/timeblocks"
	"hnblocks/internal/upstream"
)

var ErrInvalidBlock = errors.New("invalid time block")

type StoryServiceInterface interface {
	ListStories(ctx context.Context, start, end int64) (*models.StoriesResponse, error)
	View(ctx context.Context, start, end int64, settings models.SettingsConfig) (*models.StoryView, error)
	Refresh(ctx context.Context, start, end int64) error
}

// StoryService caches each block as zstd-compressed JSON so a full page
// stays under the cache's per-entry limit.
type StoryService struct {
	source     upstream.SourceInterface
	cache      providers.CacheProviderInterface
	compressor interfaces.CompressorInterface
	logger    providers.Logger
	ttl       time.Duration
	recentTTL time.Duration
	now       func() time.Time
}

func NewStoryService(conf *structures.Config, source upstream.SourceInterface, cache providers.CacheProviderInterface, compressor interfaces.CompressorInterface, logger providers.Logger) StoryServiceInterface {
	return &StoryService{
		source:     source,
		cache:      cache,
		compressor: compressor,
		logger:    logger,
		ttl:       conf.Cache.TTL,
		recentTTL: conf.Cache.RecentTTL,
		now:       time.Now,
	}
}

func cacheKey(start, end int64) string {
	return "stories:" + strconv.FormatInt(start, 10) + ":" + strconv.FormatInt(end, 10)
}

func validateBlock(start, end int64) error {
	if !timeblocks.IsAligned(start, end) {
		return fmt.Errorf("%w: %d-%d is not an aligned 6-hour window", ErrInvalidBlock, start, end)
	}
	return nil
}

// ListStories returns the stories of one block sorted by points, served from
// cache when possible.
func (s *StoryService) ListStories(ctx context.Context, start, end int64) (*models.StoriesResponse, error) {
	if err := validateBlock(start, end); err != nil {
		return nil, err
	}

	key := cacheKey(start, end)
	if data, ok := s.cache.Get(key); ok {
		cached, err := s.decode(data)
		if err == nil {
			return cached, nil
		}
		s.logger.Warnf(providers.TypeApp, "Dropping unreadable cache entry %s: %s", key, err)
		s.cache.Del(key)
	}

	return s.fetch(ctx, start, end)
}

func (s *StoryService) decode(data []byte) (*models.StoriesResponse, error) {
	raw, err := s.compressor.Decompress(data)
	if err != nil {
		return nil, err
	}
	var resp models.StoriesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *StoryService) encode(resp *models.StoriesResponse) ([]byte, error) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	return s.compressor.Compress(raw)
}

func (s *StoryService) fetch(ctx context.Context, start, end int64) (*models.StoriesResponse, error) {
	resp, err := s.source.Search(ctx, start, end)
	if err != nil {
		return nil, err
	}
	resp.Hits = ranking.Sort(resp.Hits)

	data, err := s.encode(resp)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Unable to encode stories %d-%d: %s", start, end, err)
		return resp, nil
	}
	if err := s.cache.Set(cacheKey(start, end), data, s.ttlFor(start)); err != nil {
		s.logger.Warnf(providers.TypeApp, "Stories %d-%d not cached (%d bytes): %s", start, end, len(data), err)
	}
	return resp, nil
}

// ttlFor keeps blocks that still gather votes for a short time only.
func (s *StoryService) ttlFor(start int64) time.Duration {
	if timeblocks.IsRecentByAge(time.Unix(start, 0), s.now()) {
		return s.recentTTL
	}
	return s.ttl
}

func (s *StoryService) View(ctx context.Context, start, end int64, settings models.SettingsConfig) (*models.StoryView, error) {
	resp, err := s.ListStories(ctx, start, end)
	if err != nil {
		return nil, err
	}

	block := timeblocks.Describe(start, s.now())
	view := ranking.Apply(resp.Hits, settings)
	view.Block = &block
	view.Title = timeblocks.BlockTitle(block)
	view.Description = timeblocks.BlockDescription(block)
	view.FilterSummary = timeblocks.FilterSummary(settings)
	return &view, nil
}

// Refresh fetches a block from upstream regardless of the cache.
func (s *StoryService) Refresh(ctx context.Context, start, end int64) error {
	if err := validateBlock(start, end); err != nil {
		return err
	}
	_, err := s.fetch(ctx, start, end)
	return err
}
