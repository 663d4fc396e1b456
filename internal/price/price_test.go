package price

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{3.5, "3.50"},
		{3, "3"},
		{0, "0"},
		{12.99, "12.99"},
		{100, "100"},
		{0.05, "0.05"},
		{2.5, "2.50"},
	}
	for _, c := range cases {
		if got := Format(c.in); got != c.want {
			t.Errorf("Format(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFromPence(t *testing.T) {
	if got := FromPence(350); got != 3.5 {
		t.Errorf("FromPence(350) = %v, want 3.5", got)
	}
	if got := FromPence(1299); got != 12.99 {
		t.Errorf("FromPence(1299) = %v, want 12.99", got)
	}
	if got := FromPence(0); got != 0 {
		t.Errorf("FromPence(0) = %v, want 0", got)
	}
}
