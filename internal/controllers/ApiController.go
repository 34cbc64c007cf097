package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"hnblocks/internal/models"
	"hnblocks/internal/providers"
	"hnblocks/internal/services"
	"hnblocks/internal/timeblocks"
	"hnblocks/internal/upstream"
)

const maxRequestBodySize = 1 << 16 // 64 KB

type errorResponse struct {
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

type ApiController struct {
	logger   providers.Logger
	stories  services.StoryServiceInterface
	settings services.SettingsServiceInterface
	cache    providers.CacheProviderInterface
	now      func() time.Time
}

func NewApiController(logger providers.Logger, stories services.StoryServiceInterface, settings services.SettingsServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:   logger,
		stories:  stories,
		settings: settings,
		cache:    cache,
		now:      time.Now,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{
		Message:   message,
		Retryable: status >= http.StatusInternalServerError,
	})
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, ttl time.Duration, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if err := ac.cache.Set(cacheKey, gson, ttl); err != nil {
		ac.logger.Warnf(providers.TypeApp, "Response for %s not cached (%d bytes): %s", cacheKey, len(gson), err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// parseBlock reads start and end. ok is false when neither is present.
func parseBlock(r *http.Request) (start, end int64, ok bool, err error) {
	q := r.URL.Query()
	rawStart, rawEnd := q.Get("start"), q.Get("end")
	if rawStart == "" && rawEnd == "" {
		return 0, 0, false, nil
	}
	if rawStart == "" || rawEnd == "" {
		return 0, 0, false, errors.New("Start and end timestamps are required")
	}
	start, err = strconv.ParseInt(rawStart, 10, 64)
	if err != nil {
		return 0, 0, false, errors.New("Start must be a Unix timestamp")
	}
	end, err = strconv.ParseInt(rawEnd, 10, 64)
	if err != nil {
		return 0, 0, false, errors.New("End must be a Unix timestamp")
	}
	return start, end, true, nil
}

func parseThreshold(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New(name + " must be a non-negative integer")
	}
	return n, nil
}

func (ac *ApiController) storyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidBlock):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, upstream.ErrUpstream):
		writeError(w, http.StatusBadGateway, "Failed to fetch stories")
	default:
		ac.logger.Errorf(providers.TypeGet, "Error fetching stories: %s", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch stories")
	}
}

func (ac *ApiController) GetTimeBlocks(w http.ResponseWriter, r *http.Request) {
	now := ac.now()
	latest := timeblocks.Latest(now)
	ttl := latest.Add(timeblocks.BlockSize).Sub(now)
	ac.serveFromCacheOrCompute(w, "time-blocks:"+strconv.FormatInt(latest.Unix(), 10), ttl, func() (any, error) {
		return timeblocks.Generate(now), nil
	})
}

func (ac *ApiController) GetStories(w http.ResponseWriter, r *http.Request) {
	start, end, ok, err := parseBlock(r)
	if err != nil || !ok {
		writeError(w, http.StatusBadRequest, "Start and end timestamps are required")
		return
	}

	resp, err := ac.stories.ListStories(r.Context(), start, end)
	if err != nil {
		ac.storyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetView returns the filtered stories of the selected block using the stored
// settings. minRanking and minPoints query parameters override them.
func (ac *ApiController) GetView(w http.ResponseWriter, r *http.Request) {
	start, end, ok, err := parseBlock(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, models.StoryView{
			Stories: []models.RankedStory{},
			State:   models.ViewStateUnselected,
		})
		return
	}

	settings := ac.settings.Get()
	if settings.MinRanking, err = parseThreshold(r, "minRanking", settings.MinRanking); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if settings.MinPoints, err = parseThreshold(r, "minPoints", settings.MinPoints); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := ac.stories.View(r.Context(), start, end, settings)
	if err != nil {
		ac.storyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (ac *ApiController) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ac.settings.Get())
}

func (ac *ApiController) PutSettings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload models.SettingsConfig
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return
	}

	err := ac.settings.Update(payload)
	switch {
	case errors.Is(err, services.ErrInvalidSettings):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to save settings")
	default:
		ac.logger.Infof(providers.TypePost, "Settings updated: minRanking=%d minPoints=%d showRecentBlocks=%t", payload.MinRanking, payload.MinPoints, payload.ShowRecentBlocks)
		writeJSON(w, http.StatusOK, ac.settings.Get())
	}
}
