// Package console renders time blocks, stories and settings for the terminal.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"hnblocks/internal/models"
	"hnblocks/internal/providers"
	"hnblocks/internal/services"
	"hnblocks/internal/timeblocks"
)

// Overrides carries the optional values given on the command line.
type Overrides struct {
	MinRanking *int
	MinPoints  *int
	ShowRecent *bool
	Reset      bool
}

func (o Overrides) apply(s models.SettingsConfig) models.SettingsConfig {
	if o.Reset {
		s = models.DefaultSettings()
	}
	if o.MinRanking != nil {
		s.MinRanking = *o.MinRanking
	}
	if o.MinPoints != nil {
		s.MinPoints = *o.MinPoints
	}
	if o.ShowRecent != nil {
		s.ShowRecentBlocks = *o.ShowRecent
	}
	return s
}

func (o Overrides) changed() bool {
	return o.Reset || o.MinRanking != nil || o.MinPoints != nil || o.ShowRecent != nil
}

type Console struct {
	out      io.Writer
	stories  services.StoryServiceInterface
	settings services.SettingsServiceInterface
	logger   providers.Logger
	styles   styles
	now      func() time.Time
}

func NewConsole(stories services.StoryServiceInterface, settings services.SettingsServiceInterface, logger providers.Logger) *Console {
	return newConsole(os.Stdout, stories, settings, logger, time.Now)
}

func newConsole(out io.Writer, stories services.StoryServiceInterface, settings services.SettingsServiceInterface, logger providers.Logger, now func() time.Time) *Console {
	c := &Console{
		out:      out,
		stories:  stories,
		settings: settings,
		logger:   logger,
		styles:   newStyles(out),
		now:      now,
	}
	if err := settings.Load(); err != nil {
		logger.Errorf(providers.TypeApp, "Settings restore error: %s", err)
	}
	return c
}

func (c *Console) Blocks() error {
	_, err := io.WriteString(c.out, c.styles.renderBlocks(timeblocks.Generate(c.now()), c.settings.Get()))
	return err
}

// Stories prints the filtered view of the block index steps back from the
// newest one. Overrides apply to this call only.
func (c *Console) Stories(ctx context.Context, index int, o Overrides) error {
	if index < 0 || index >= timeblocks.Count {
		return fmt.Errorf("block index must be between 0 and %d", timeblocks.Count-1)
	}

	now := c.now()
	blocks := timeblocks.Generate(now)
	block := blocks[len(blocks)-1-index]

	view, err := c.stories.View(ctx, block.Start, block.End, o.apply(c.settings.Get()))
	if err != nil {
		return fmt.Errorf("fetch stories for %s: %w (retry the command)", block.Label, err)
	}
	_, err = io.WriteString(c.out, c.styles.renderView(view, now))
	return err
}

// Settings prints the persisted settings, storing the overrides first if any.
func (c *Console) Settings(o Overrides) error {
	if o.changed() {
		if err := c.settings.Update(o.apply(c.settings.Get())); err != nil {
			return err
		}
	}
	_, err := io.WriteString(c.out, c.styles.renderSettings(c.settings.Get()))
	return err
}
