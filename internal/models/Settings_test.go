package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 0, s.MinRanking)
	assert.Equal(t, 0, s.MinPoints)
	assert.True(t, s.ShowRecentBlocks)
	assert.False(t, s.HasFilters())
}

func TestHasFilters(t *testing.T) {
	assert.True(t, SettingsConfig{MinRanking: 10}.HasFilters())
	assert.True(t, SettingsConfig{MinPoints: 1}.HasFilters())
	assert.False(t, SettingsConfig{ShowRecentBlocks: false}.HasFilters())
}

func TestMergeSettings_PartialValue(t *testing.T) {
	merged, err := MergeSettings(DefaultSettings(), []byte(`{"minPoints":25}`))
	assert.NoError(t, err)
	assert.Equal(t, SettingsConfig{MinRanking: 0, MinPoints: 25, ShowRecentBlocks: true}, merged)
}

func TestMergeSettings_FullValue(t *testing.T) {
	merged, err := MergeSettings(DefaultSettings(), []byte(`{"minRanking":10,"minPoints":50,"showRecentBlocks":false}`))
	assert.NoError(t, err)
	assert.Equal(t, SettingsConfig{MinRanking: 10, MinPoints: 50, ShowRecentBlocks: false}, merged)
}

func TestMergeSettings_NullKeepsDefault(t *testing.T) {
	merged, err := MergeSettings(DefaultSettings(), []byte(`{"minRanking":null,"showRecentBlocks":null,"minPoints":5}`))
	assert.NoError(t, err)
	assert.Equal(t, SettingsConfig{MinRanking: 0, MinPoints: 5, ShowRecentBlocks: true}, merged)
}

func TestMergeSettings_InvalidFieldKeepsDefault(t *testing.T) {
	merged, err := MergeSettings(DefaultSettings(), []byte(`{"minRanking":"ten","minPoints":-3,"showRecentBlocks":false}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "minRanking")
	assert.Contains(t, err.Error(), "minPoints")
	assert.Equal(t, SettingsConfig{MinRanking: 0, MinPoints: 0, ShowRecentBlocks: false}, merged)
}

func TestMergeSettings_UnknownFieldsIgnored(t *testing.T) {
	merged, err := MergeSettings(DefaultSettings(), []byte(`{"theme":"dark","minRanking":3}`))
	assert.NoError(t, err)
	assert.Equal(t, 3, merged.MinRanking)
}

func TestMergeSettings_Garbage(t *testing.T) {
	merged, err := MergeSettings(DefaultSettings(), []byte(`not json`))
	assert.Error(t, err)
	assert.Equal(t, DefaultSettings(), merged)
}
