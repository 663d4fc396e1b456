// internal/catalog/display.go
//
// Display lookup: slug → human label, authored as one JSON object.  The file
// is optional.  When a slug has no entry the UI falls back to the slug
// itself, so an absent file only costs label polish, never a build.

package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Display maps attribute and value slugs to their human-readable labels.
type Display map[string]string

// Label returns the display label for s, or s itself when no entry exists.
func (d Display) Label(s string) string {
	if label, ok := d[s]; ok && label != "" {
		return label
	}
	return s
}

// LoadDisplay reads the lookup file.  A missing file yields an empty lookup;
// a present but unparsable one is a build error.
func LoadDisplay(path string) (Display, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Display{}, nil
		}
		return nil, fmt.Errorf("catalog: read display lookup %s: %w", path, err)
	}

	var d Display
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("catalog: parse display lookup %s: %w", path, err)
	}
	return d, nil
}
