package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// cacheCommand creates the cache management command. It covers both the API
// response cache and the icon cache.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the API response and icon caches",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var icons bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cached API responses (and icons with --icons)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.Config()
			if err != nil {
				return err
			}

			dirs := []string{cfg.CacheDir}
			if icons {
				dirs = append(dirs, cfg.IconDir)
			}

			total := 0
			for _, dir := range dirs {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					continue
				}
				count, err := clearDir(dir)
				if err != nil {
					return err
				}
				total += count
				printDetail("Directory: %s", dir)
			}

			if total == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", total)
			return nil
		},
	}

	cmd.Flags().BoolVar(&icons, "icons", false, "also clear downloaded attribute icons")
	return cmd
}

// clearDir removes every file under dir, keeping dir itself. The icon cache
// lives inside the response cache directory by default, so a plain response
// clear must not descend into it.
func clearDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read cache dir: %w", err)
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err == nil {
			count++
		}
	}
	return count, nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.Config()
			if err != nil {
				return err
			}
			fmt.Println(cfg.CacheDir)
			fmt.Println(cfg.IconDir)
			return nil
		},
	}
}
