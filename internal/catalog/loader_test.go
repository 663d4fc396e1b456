package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeContent(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

const oakTable = `---
title: Oak Table
price: 249.5
sku: OAK-TBL-1
product_mode: buy
image: oak-table.jpg
attributes:
  - name: Size
    value: Large
  - name: Wood Type
    value: Solid Oak
---
A sturdy table.
`

func TestLoadParsesItems(t *testing.T) {
	content := t.TempDir()
	assets := t.TempDir()
	writeContent(t, content, "Oak-Table.md", oakTable)
	writeContent(t, assets, "oak-table.jpg", "jpg")

	items, err := Load(content, assets)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}

	it := items[0]
	if it.ID != "oak-table" {
		t.Errorf("ID = %q, want %q", it.ID, "oak-table")
	}
	if it.Title != "Oak Table" || it.Price != 249.5 || it.SKU != "OAK-TBL-1" {
		t.Errorf("metadata = %q/%v/%q, want Oak Table/249.5/OAK-TBL-1", it.Title, it.Price, it.SKU)
	}
	if v, _ := it.Attributes.Get("wood-type"); v != "solid-oak" {
		t.Errorf("wood-type = %q, want %q", v, "solid-oak")
	}
	if it.Body != "A sturdy table." {
		t.Errorf("Body = %q", it.Body)
	}
}

func TestLoadOrderIsLexical(t *testing.T) {
	content := t.TempDir()
	writeContent(t, content, "b-bench.md", "---\ntitle: Bench\n---\n")
	writeContent(t, content, "a-armchair.md", "---\ntitle: Armchair\n---\n")
	writeContent(t, content, "c-chest.md", "---\ntitle: Chest\n---\n")

	items, err := Load(content, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var ids []string
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	if got := strings.Join(ids, ","); got != "a-armchair,b-bench,c-chest" {
		t.Errorf("order = %s, want a-armchair,b-bench,c-chest", got)
	}
}

func TestLoadDuplicateID(t *testing.T) {
	content := t.TempDir()
	writeContent(t, content, "Oak-Table.md", "---\ntitle: One\n---\n")
	writeContent(t, content, "oak_table.md", "---\ntitle: Two\n---\n")

	if _, err := Load(content, ""); err == nil {
		t.Fatal("Load accepted duplicate item ids")
	}
}

func TestLoadMissingImage(t *testing.T) {
	content := t.TempDir()
	assets := t.TempDir()
	writeContent(t, content, "Oak-Table.md", oakTable)

	if _, err := Load(content, assets); err == nil {
		t.Fatal("Load accepted a missing image")
	}
}

func TestLoadMissingFrontmatter(t *testing.T) {
	content := t.TempDir()
	writeContent(t, content, "bare.md", "no fences here\n")

	if _, err := Load(content, ""); err == nil {
		t.Fatal("Load accepted a file without frontmatter")
	}
}

func TestLoadDisplay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "display.json")
	if err := os.WriteFile(path, []byte(`{"wood-type": "Wood Type"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := LoadDisplay(path)
	if err != nil {
		t.Fatalf("LoadDisplay: %v", err)
	}
	if got := d.Label("wood-type"); got != "Wood Type" {
		t.Errorf("Label(wood-type) = %q, want %q", got, "Wood Type")
	}
	if got := d.Label("unknown-slug"); got != "unknown-slug" {
		t.Errorf("Label(unknown-slug) = %q, want the slug back", got)
	}
}

func TestLoadDisplayAbsentFile(t *testing.T) {
	d, err := LoadDisplay(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadDisplay on absent file: %v", err)
	}
	if got := d.Label("size"); got != "size" {
		t.Errorf("Label(size) = %q, want %q", got, "size")
	}
}
