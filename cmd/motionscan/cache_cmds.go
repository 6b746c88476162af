package main

import (
	"fmt"
	"os"

	"github.com/quantmind-br/motionscan/internal/cache"
	"github.com/quantmind-br/motionscan/internal/config"
	"github.com/quantmind-br/motionscan/internal/utils"
	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the metadata cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show the cache location and entry count",
		Args:  cobra.NoArgs,
		RunE:  runCacheStats,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached entry",
		Args:  cobra.NoArgs,
		RunE:  runCacheClear,
	})
	return cmd
}

// openCache opens the configured cache directory. It reports false when
// the directory does not exist yet, so nothing is created just to be read.
func openCache() (*cache.BadgerCache, string, bool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", false, fmt.Errorf("failed to load config: %w", err)
	}
	dir := utils.ExpandPath(cfg.Cache.Directory)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, dir, false, nil
	}
	c, err := cache.NewBadgerCache(cache.Options{Directory: dir})
	if err != nil {
		return nil, dir, false, fmt.Errorf("open cache %s: %w", dir, err)
	}
	return c, dir, true, nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	c, dir, ok, err := openCache()
	if err != nil {
		return err
	}
	var entries int64
	if ok {
		defer c.Close()
		entries = c.Size()
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries\n", dir, entries)
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	c, dir, ok, err := openCache()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: nothing to clear\n", dir)
		return nil
	}
	defer c.Close()

	n := c.Size()
	if err := c.Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: removed %d entries\n", dir, n)
	return nil
}
