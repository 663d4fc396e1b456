// cmd/storefront/main.go
//
// Storefront CLI entry point.
//
// Command life-cycle
// ------------------
//
//  1. Start the daily rotating logger (tees to console in a TTY).
//
//  2. Load configuration: conf/.env, conf/global.yaml, then
//     STOREFRONT_-prefixed environment overrides, with vault: references
//     resolved in place.
//
//  3. Dispatch:
//
//     • build          – render the static tree and redirect table
//     • serve          – render on demand, rebuilding on content changes
//     • validate-cart  – reconcile a stored cart from the command line
//
// Large comment blocks are framed by blank "//" lines; inline comments use
// a single "//".
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oakmoor/storefront/internal/build"
	"github.com/oakmoor/storefront/internal/cart"
	"github.com/oakmoor/storefront/internal/config"
	"github.com/oakmoor/storefront/internal/logger"
	"github.com/oakmoor/storefront/internal/notify"
	"github.com/oakmoor/storefront/internal/product"
	"github.com/oakmoor/storefront/internal/server"
	"github.com/oakmoor/storefront/internal/watch"
)

var (
	verbose       bool
	noWatch       bool
	watchDebounce time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Static storefront generator with filterable product listings",
	Long: `storefront renders a product collection into a filterable listing
site: one static page per reachable filter combination, a redirect table
for renamed slugs and moved listings, and a serve mode that renders the
same pages on demand.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		if _, err := logger.New(cwd, runningInTTY(), verbose); err != nil {
			return fmt.Errorf("start logger: %w", err)
		}
		if _, err := config.Load(cmd.Context()); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the static site and its redirect table",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := build.Run(cmd.Context(), config.Get())
		if err != nil {
			return err
		}
		fmt.Printf("%d items, %d pages, %d redirects in %s\n",
			res.Items, res.Pages, res.Redirects, res.Elapsed.Round(time.Millisecond))
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the listing over HTTP, reloading on content changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		site, err := build.NewSite(cfg)
		if err != nil {
			return err
		}
		srv, err := server.New(cfg, site)
		if err != nil {
			return err
		}

		if !noWatch {
			w, err := watch.New(watchRoots(cfg), watchDebounce, func() {
				if err := srv.Refresh(); err != nil {
					zap.S().Errorw("reload failed, serving previous snapshot", "error", err)
				}
			})
			if err != nil {
				zap.S().Warnw("watcher unavailable, serving without reloads", "error", err)
			} else if err := w.Start(cmd.Context()); err != nil {
				zap.S().Warnw("watcher start failed, serving without reloads", "error", err)
			} else {
				defer w.Stop()
			}
		}

		return srv.Run(cmd.Context())
	},
}

var validateCartCmd = &cobra.Command{
	Use:   "validate-cart <storage.json>",
	Short: "Reconcile a stored cart against the products API",
	Long: `validate-cart runs one reconciliation pass over a local-storage
dump: buy items whose SKU is missing or out of stock are removed, stale
unit prices are corrected, and the repaired cart is written back to the
file.  The pass result prints as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		if cfg.Ecommerce.Host == "" {
			return fmt.Errorf("validate-cart: ecommerce.host is not configured")
		}

		client := product.NewClient(cfg.Ecommerce.Host, 10*time.Second)
		source := product.NewCache(client, product.NewMemoryStore(), cfg.Ecommerce.CacheTTL)
		notifier := notify.New(cfg.Notify.Endpoint)

		res := cart.New(cart.NewFileStorage(args[0]), source, notifier).Run(cmd.Context())
		notifier.Flush()

		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

// watchRoots lists the directories whose changes should trigger a reload.
func watchRoots(cfg *config.Config) []string {
	abs := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(cfg.Paths.Root, p)
	}

	roots := []string{abs(cfg.Listing.ContentDir)}
	if cfg.Listing.AssetsDir != "" {
		roots = append(roots, abs(cfg.Listing.AssetsDir))
	}
	if cfg.Listing.DisplayLookup != "" {
		roots = append(roots, filepath.Dir(abs(cfg.Listing.DisplayLookup)))
	}
	roots = append(roots, filepath.Join(cfg.Paths.Root, "themes", cfg.Theme.Name))
	if cfg.Theme.OverridesDir != "" {
		roots = append(roots, abs(cfg.Theme.OverridesDir))
	}
	return roots
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug-level logging")
	serveCmd.Flags().BoolVar(&noWatch, "no-watch", false, "serve without reloading on content changes")
	serveCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond,
		"quiet period before a content change triggers a reload")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCartCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
