// internal/build/static.go
//
// Static output.  Every page renders to <out>/<url>/index.html so plain
// file servers (and the serve command's fallback) map URLs to files with no
// rewrite rules.  Item images and theme assets are copied under the same
// prefixes the templates emit.

package build

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/oakmoor/storefront/internal/listing"
	"github.com/oakmoor/storefront/internal/metrics"
)

// WriteStatic renders every page with the default sort and writes the
// output tree.  It returns the number of pages written; on error the count
// covers pages completed before the failure.
func (s *Site) WriteStatic(outDir string) (int, error) {
	st := s.state.Load()
	written := 0

	for _, pg := range st.pages {
		data := s.PageData(pg, listing.SortDefault)
		html, err := st.view.RenderToString("listing", data)
		if err != nil {
			return written, fmt.Errorf("build: render %s: %w", pg.URL, err)
		}

		dir := filepath.Join(outDir, filepath.FromSlash(strings.TrimPrefix(pg.URL, "/")))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return written, fmt.Errorf("build: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(html), 0o644); err != nil {
			return written, fmt.Errorf("build: %w", err)
		}
		written++
	}
	metrics.PagesGeneratedTotal.Add(float64(written))

	if s.cfg.Listing.AssetsDir != "" {
		if err := copyDir(s.abs(s.cfg.Listing.AssetsDir), filepath.Join(outDir, "assets")); err != nil {
			return written, fmt.Errorf("build: copy assets: %w", err)
		}
	}

	themeAssets := filepath.Join(st.theme.Root, "assets")
	if _, err := os.Stat(themeAssets); err == nil {
		dst := filepath.Join(outDir, "themes", st.theme.Name, "assets")
		if err := copyDir(themeAssets, dst); err != nil {
			return written, fmt.Errorf("build: copy theme assets: %w", err)
		}
	}

	return written, nil
}

// copyDir mirrors src into dst, creating directories as needed.
func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
