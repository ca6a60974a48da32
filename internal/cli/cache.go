package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scenepatch/pkg/cache"
	"github.com/matzehuels/scenepatch/pkg/config"
)

// cacheCommand creates the artifact cache command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
		Long: `Rendered artifacts, compiled animations and scene hashes are cached
on disk by default. These commands operate on the file cache only; a
Redis cache expires entries on its own.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.fileCache()
			if err != nil {
				return err
			}
			n, err := fc.Clear()
			if err != nil {
				return err
			}
			printSuccess("Cleared %d cached entries", n)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show cache location and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.fileCache()
			if err != nil {
				return err
			}
			entries, size, err := fc.Usage()
			if err != nil {
				return err
			}
			printKeyValue("directory", fc.Dir())
			printKeyValue("entries", strconv.Itoa(entries))
			printKeyValue("size", formatBytes(size))
			printKeyValue("ttl", c.Config.Cache.TTL.String())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.Config.CacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(stdout, dir)
			return nil
		},
	})

	return cmd
}

// fileCache opens the configured file cache directory.
func (c *CLI) fileCache() (*cache.FileCache, error) {
	if b := c.Config.Cache.Backend; b != config.CacheFile {
		return nil, fmt.Errorf("cache backend is %q, not %q", b, config.CacheFile)
	}
	dir, err := c.Config.CacheDir()
	if err != nil {
		return nil, fmt.Errorf("get cache dir: %w", err)
	}
	return cache.NewFileCache(dir)
}

// formatBytes renders n with a binary unit suffix.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
