package models

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

const SettingsStorageKey = "hn-time-blocks-settings"

type SettingsConfig struct {
	MinRanking       int  `json:"minRanking" validate:"min:0"`
	MinPoints        int  `json:"minPoints" validate:"min:0"`
	ShowRecentBlocks bool `json:"showRecentBlocks"`
}

func DefaultSettings() SettingsConfig {
	return SettingsConfig{
		MinRanking:       0,
		MinPoints:        0,
		ShowRecentBlocks: true,
	}
}

func (s SettingsConfig) HasFilters() bool {
	return s.MinRanking > 0 || s.MinPoints > 0
}

// MergeSettings decodes a stored settings value over base field by field.
// Fields that fail to decode or hold negative numbers keep the base value;
// the returned error lists them while the merged value stays usable.
func MergeSettings(base SettingsConfig, raw []byte) (SettingsConfig, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return base, fmt.Errorf("decode settings: %w", err)
	}

	for k, v := range fields {
		if string(v) == "null" {
			delete(fields, k)
		}
	}

	merged := base
	var errs []error
	if v, ok := fields["minRanking"]; ok {
		if n, err := decodeCount(v); err != nil {
			errs = append(errs, fmt.Errorf("minRanking: %w", err))
		} else {
			merged.MinRanking = n
		}
	}
	if v, ok := fields["minPoints"]; ok {
		if n, err := decodeCount(v); err != nil {
			errs = append(errs, fmt.Errorf("minPoints: %w", err))
		} else {
			merged.MinPoints = n
		}
	}
	if v, ok := fields["showRecentBlocks"]; ok {
		var b bool
		if err := json.Unmarshal(v, &b); err != nil {
			errs = append(errs, fmt.Errorf("showRecentBlocks: %w", err))
		} else {
			merged.ShowRecentBlocks = b
		}
	}
	return merged, errors.Join(errs...)
}

func decodeCount(raw json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value %d", n)
	}
	return n, nil
}
