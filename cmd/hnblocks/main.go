package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"hnblocks/internal/console"
	"hnblocks/internal/di"
	"hnblocks/internal/structures"
)

var flags structures.CliFlags

var rootCmd = &cobra.Command{
	Use:   "hnblocks",
	Short: "Hacker News stories grouped into 6-hour UTC blocks",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := di.InitApp(&flags)
		return err
	},
}

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "List the time blocks of the last 7 days",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := di.InitConsole(&flags)
		if err != nil {
			return err
		}
		return c.Blocks()
	},
}

var (
	storiesBlock int
	minRanking   int
	minPoints    int
	showRecent   bool
	resetFilters bool
)

// overrides picks up only the flags given explicitly.
func overrides(cmd *cobra.Command) console.Overrides {
	var o console.Overrides
	if cmd.Flags().Changed("min-ranking") {
		o.MinRanking = &minRanking
	}
	if cmd.Flags().Changed("min-points") {
		o.MinPoints = &minPoints
	}
	if f := cmd.Flags().Lookup("show-recent"); f != nil && f.Changed {
		o.ShowRecent = &showRecent
	}
	if f := cmd.Flags().Lookup("reset"); f != nil {
		o.Reset = resetFilters
	}
	return o
}

var storiesCmd = &cobra.Command{
	Use:   "stories",
	Short: "Show the filtered stories of one block",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := di.InitConsole(&flags)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return c.Stories(ctx, storiesBlock, overrides(cmd))
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the stored filter settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := di.InitConsole(&flags)
		if err != nil {
			return err
		}
		return c.Settings(overrides(cmd))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "log to stderr as well")

	storiesCmd.Flags().IntVarP(&storiesBlock, "block", "b", 0, "block index, 0 is the newest")
	storiesCmd.Flags().IntVar(&minRanking, "min-ranking", 0, "show only the top N stories")
	storiesCmd.Flags().IntVar(&minPoints, "min-points", 0, "show only stories with at least N points")

	settingsCmd.Flags().IntVar(&minRanking, "min-ranking", 0, "store the rank filter (0 disables it)")
	settingsCmd.Flags().IntVar(&minPoints, "min-points", 0, "store the points filter (0 disables it)")
	settingsCmd.Flags().BoolVar(&showRecent, "show-recent", true, "highlight recent blocks")
	settingsCmd.Flags().BoolVar(&resetFilters, "reset", false, "restore the default settings")

	rootCmd.AddCommand(serveCmd, blocksCmd, storiesCmd, settingsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
