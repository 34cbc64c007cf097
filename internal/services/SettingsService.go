package services

import (
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
	"go.uber.org/atomic"

	"hnblocks/internal/models"
	"hnblocks/internal/providers"
	"hnblocks/internal/storage"
	"hnblocks/internal/storage/interfaces"
)

var ErrInvalidSettings = errors.New("invalid settings")

type SettingsServiceInterface interface {
	Load() error
	Get() models.SettingsConfig
	Update(settings models.SettingsConfig) error
	Reset() error
}

// SettingsService owns the current settings value. Readers always see a
// complete value; every update is written to the store before it is published.
type SettingsService struct {
	store   interfaces.StoreInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	current atomic.Pointer[models.SettingsConfig]
}

func NewSettingsService(store interfaces.StoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) SettingsServiceInterface {
	s := &SettingsService{
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
	defaults := models.DefaultSettings()
	s.current.Store(&defaults)
	return s
}

// Load reads the persisted settings over the defaults. Fields that cannot be
// parsed are logged and keep their default value.
func (s *SettingsService) Load() error {
	raw, err := s.store.Get(models.SettingsStorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	merged, err := models.MergeSettings(models.DefaultSettings(), raw)
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "Failed to load some settings, using defaults for them: %s", err)
	}
	s.current.Store(&merged)
	return nil
}

func (s *SettingsService) Get() models.SettingsConfig {
	return *s.current.Load()
}

func (s *SettingsService) Update(settings models.SettingsConfig) error {
	v := validate.Struct(&settings)
	if !v.Validate() {
		return fmt.Errorf("%w: %s", ErrInvalidSettings, v.Errors.One())
	}

	if err := s.persist(settings); err != nil {
		return err
	}
	s.current.Store(&settings)
	return nil
}

func (s *SettingsService) Reset() error {
	return s.Update(models.DefaultSettings())
}

func (s *SettingsService) persist(settings models.SettingsConfig) error {
	start := time.Now()
	defer func() {
		s.metrics.ObservePersistenceDuration(time.Since(start))
	}()

	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	if err := s.store.Put(models.SettingsStorageKey, data); err != nil {
		s.logger.Errorf(providers.TypeApp, "Failed to save settings: %s", err)
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
