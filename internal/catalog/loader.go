// internal/catalog/loader.go
//
// Content loading.  Walks a directory of Markdown files with YAML
// frontmatter and produces the ordered collection every later build stage
// consumes.
//
// Context
// -------
// • Files are visited in lexical path order, so the collection order (and
//   everything derived from it: index buckets, page emission, default sort)
//   is stable across runs.
// • Content problems stop the build.  A storefront with a missing image or
//   two items claiming one URL should never ship, so the loader returns the
//   first such error instead of skipping the file.

package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakmoor/storefront/internal/attr"
	"github.com/oakmoor/storefront/internal/slug"
)

// Load reads every .md file under contentDir into a collection.  When
// assetsDir is non-empty, each referenced image must exist under it.
func Load(contentDir, assetsDir string) ([]*Item, error) {
	var items []*Item
	seen := make(map[string]string) // id → source path

	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}
		item, err := parseItem(path, raw)
		if err != nil {
			return err
		}
		if prev, dup := seen[item.ID]; dup {
			return fmt.Errorf("catalog: duplicate item id %q (%s and %s)", item.ID, prev, path)
		}
		seen[item.ID] = path

		if assetsDir != "" && item.Image != "" {
			img := filepath.Join(assetsDir, item.Image)
			if _, err := os.Stat(img); err != nil {
				return fmt.Errorf("catalog: item %q references missing image %s", item.ID, img)
			}
		}

		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func parseItem(path string, raw []byte) (*Item, error) {
	fm, body, err := splitFrontmatter(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}

	var meta frontmatter
	if err := yaml.Unmarshal(fm, &meta); err != nil {
		return nil, fmt.Errorf("catalog: %s: frontmatter: %w", path, err)
	}

	id := slug.FromRef(path)
	if id == "" {
		return nil, fmt.Errorf("catalog: %s: filename yields empty id", path)
	}

	pairs := make([]attr.Pair, 0, len(meta.Attributes))
	for _, a := range meta.Attributes {
		pairs = append(pairs, attr.Pair{Name: a.Name, Value: a.Value})
	}

	title := meta.Title
	if title == "" {
		title = id
	}

	return &Item{
		ID:          id,
		Title:       title,
		Price:       meta.Price,
		SKU:         meta.SKU,
		ProductMode: meta.ProductMode,
		Category:    meta.Category,
		Image:       meta.Image,
		Attributes:  attr.Parse(pairs),
		Body:        strings.TrimSpace(body),
	}, nil
}

// splitFrontmatter returns the YAML between the leading "---" fences and the
// remaining body.  A product file without frontmatter is a content error.
func splitFrontmatter(raw []byte) (fm []byte, body string, err error) {
	lines := strings.SplitAfter(string(raw), "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r\n") != "---" {
		return nil, "", errors.New("missing frontmatter fence")
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") == "---" {
			return []byte(strings.Join(lines[1:i], "")), strings.Join(lines[i+1:], ""), nil
		}
	}
	return nil, "", errors.New("unterminated frontmatter")
}
