// internal/build/run.go
//
// One-shot build: load, render, write, and persist redirects.  This is the
// whole `storefront build` command behind a single function so tests can
// drive it without cobra.

package build

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/oakmoor/storefront/internal/config"
	"github.com/oakmoor/storefront/internal/database"
	"github.com/oakmoor/storefront/internal/redirect"
)

// Result summarizes one completed build.
type Result struct {
	Items     int
	Pages     int
	Redirects int
	Elapsed   time.Duration
}

// Run performs a full static build.  Redirect rows are written to MySQL
// when a DSN is configured and to JSON when an output path is configured;
// with neither, rows are computed but only logged.
func Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	start := time.Now()

	site, err := NewSite(cfg)
	if err != nil {
		return nil, err
	}

	written, err := site.WriteStatic(site.abs(cfg.Build.OutDir))
	if err != nil {
		return nil, err
	}

	rows := site.RedirectRows()
	if len(rows) > 0 {
		if cfg.Redirects.DSN != "" {
			if err := saveRedirects(ctx, cfg, rows); err != nil {
				return nil, err
			}
		}
		if cfg.Redirects.JSONOut != "" {
			if err := redirect.WriteJSON(site.abs(cfg.Redirects.JSONOut), rows); err != nil {
				return nil, err
			}
		}
	}

	res := &Result{
		Items:     len(site.Items()),
		Pages:     written,
		Redirects: len(rows),
		Elapsed:   time.Since(start),
	}
	zap.S().Infow("build complete",
		"items", res.Items,
		"pages", res.Pages,
		"redirects", res.Redirects,
		"out", cfg.Build.OutDir,
		"elapsed", res.Elapsed,
	)
	return res, nil
}

// saveRedirects opens a short-lived pool, replaces the redirect table, and
// closes it.  Builds run from CI as much as from laptops, so the pool never
// outlives the call.
func saveRedirects(ctx context.Context, cfg *config.Config, rows []redirect.Row) error {
	dsn := database.BuildDSN(cfg.Redirects.DSN, cfg.Redirects.Password)
	db, err := database.OpenWithOptions(dsn, 2, 1)
	if err != nil {
		return fmt.Errorf("build: redirect db: %w", err)
	}
	defer db.Close()

	return redirect.Save(ctx, db, rows)
}
