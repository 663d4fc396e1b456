package slug

import "testing"

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Solid Oak", "solid-oak"},
		{"  Wood Type  ", "wood-type"},
		{"100% Wool", "100-wool"},
		{"Café au_lait!!", "caf-au-lait"},
		{"a---b", "a-b"},
		{"--- --", ""},
		{"", ""},
		{"DUSK/Blue", "dusk-blue"},
		{"soap & glory", "soap-glory"},
	}
	for _, c := range cases {
		if got := Make(c.in); got != c.want {
			t.Errorf("Make(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPath(t *testing.T) {
	cases := []struct {
		parent, child, want string
	}{
		{"", "", "/"},
		{"", "oak-table", "/oak-table"},
		{"/products/", "oak-table", "/products/oak-table"},
		{"products", "/oak-table/", "/products/oak-table"},
		{"/products", "", "/products"},
	}
	for _, c := range cases {
		if got := Path(c.parent, c.child); got != c.want {
			t.Errorf("Path(%q, %q) = %q, want %q", c.parent, c.child, got, c.want)
		}
	}
}

func TestFromRef(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"content/products/Oak-Table.md", "oak-table"},
		{"Oak-Table.md", "oak-table"},
		{" Walnut Desk.MD ", "walnut-desk"},
		{"nested/dir/Brass_Lamp.markdown", "brass-lamp"},
		{"no-extension", "no-extension"},
	}
	for _, c := range cases {
		if got := FromRef(c.in); got != c.want {
			t.Errorf("FromRef(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
