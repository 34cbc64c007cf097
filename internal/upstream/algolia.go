// Package upstream talks to the Algolia Hacker News search API.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"

	"hnblocks/internal/models"
	"hnblocks/internal/providers"
	"hnblocks/internal/structures"
)

const (
	searchPath         = "/api/v1/search_by_date"
	defaultHitsPerPage = 100
	defaultTimeout     = 10 * time.Second
	maxResponseSize    = 8 << 20
)

var ErrUpstream = errors.New("upstream request failed")

// StatusError reports a non-success HTTP status from the search API.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("algolia api error: %d", e.Status)
}

func (e *StatusError) Unwrap() error {
	return ErrUpstream
}

type SourceInterface interface {
	Search(ctx context.Context, start, end int64) (*models.StoriesResponse, error)
}

type searchResponse struct {
	Hits    []json.RawMessage `json:"hits"`
	NbHits  int               `json:"nbHits"`
	Page    int               `json:"page"`
	NbPages int               `json:"nbPages"`
}

// hit is the accepted shape of one search record.
type hit struct {
	ObjectID    string  `json:"objectID" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	URL         *string `json:"url"`
	Author      string  `json:"author"`
	Points      int     `json:"points" validate:"required|min:1"`
	NumComments int     `json:"num_comments" validate:"min:0"`
	CreatedAtI  int64   `json:"created_at_i" validate:"required|min:1"`
	StoryText   *string `json:"story_text"`
}

type AlgoliaClient struct {
	httpClient  *http.Client
	baseURL     string
	hitsPerPage int
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
}

func NewAlgoliaClient(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) SourceInterface {
	timeout := conf.Upstream.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hitsPerPage := conf.Upstream.HitsPerPage
	if hitsPerPage <= 0 || hitsPerPage > defaultHitsPerPage {
		hitsPerPage = defaultHitsPerPage
	}
	return &AlgoliaClient{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimSuffix(conf.Upstream.BaseURL, "/"),
		hitsPerPage: hitsPerPage,
		logger:      logger,
		metrics:     metrics,
	}
}

func (c *AlgoliaClient) searchURL(start, end int64) string {
	q := url.Values{}
	q.Set("tags", "story")
	q.Set("numericFilters", fmt.Sprintf("created_at_i>=%d,created_at_i<%d", start, end))
	q.Set("hitsPerPage", strconv.Itoa(c.hitsPerPage))
	return c.baseURL + searchPath + "?" + q.Encode()
}

// Search returns the stories submitted in [start, end). Records that do not
// match the accepted schema are dropped and counted.
func (c *AlgoliaClient) Search(ctx context.Context, start, end int64) (*models.StoriesResponse, error) {
	began := time.Now()
	resp, err := c.search(ctx, start, end)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		c.logger.Errorf(providers.TypeUpstream, "Search %d-%d failed: %s", start, end, err)
	}
	c.metrics.ObserveUpstreamDuration(outcome, time.Since(began))
	return resp, err
}

func (c *AlgoliaClient) search(ctx context.Context, start, end int64) (*models.StoriesResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(start, end), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.StatusCode}
	}

	var payload searchResponse
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize))
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrUpstream, err)
	}

	stories := make([]models.Story, 0, len(payload.Hits))
	rejected := 0
	for _, raw := range payload.Hits {
		story, err := parseHit(raw, start, end)
		if err != nil {
			rejected++
			c.logger.Debugf(providers.TypeUpstream, "Dropped record: %s", err)
			continue
		}
		stories = append(stories, story)
	}
	if rejected > 0 {
		c.metrics.AddRejectedStories(rejected)
	}

	nbPages := payload.NbPages
	if nbPages == 0 {
		nbPages = 1
	}
	c.logger.Debugf(providers.TypeUpstream, "Search %d-%d: %d stories, %d rejected, %d total", start, end, len(stories), rejected, payload.NbHits)

	return &models.StoriesResponse{
		Hits:    stories,
		NbHits:  payload.NbHits,
		Page:    payload.Page,
		NbPages: nbPages,
	}, nil
}

func parseHit(raw json.RawMessage, start, end int64) (models.Story, error) {
	var h hit
	if err := json.Unmarshal(raw, &h); err != nil {
		return models.Story{}, fmt.Errorf("decode: %w", err)
	}
	h.Title = strings.TrimSpace(h.Title)

	v := validate.Struct(&h)
	if !v.Validate() {
		return models.Story{}, fmt.Errorf("record %q: %s", h.ObjectID, v.Errors.One())
	}
	if !(models.TimeBlock{Start: start, End: end}).Contains(h.CreatedAtI) {
		return models.Story{}, fmt.Errorf("record %q: created_at_i %d outside %d-%d", h.ObjectID, h.CreatedAtI, start, end)
	}

	return models.Story{
		ObjectID:    h.ObjectID,
		Title:       h.Title,
		URL:         h.URL,
		Author:      h.Author,
		Points:      h.Points,
		NumComments: h.NumComments,
		CreatedAtI:  h.CreatedAtI,
		StoryText:   h.StoryText,
	}, nil
}
