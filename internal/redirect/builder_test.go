package redirect

import (
	"reflect"
	"testing"
)

func TestBuildValueRename(t *testing.T) {
	rows := Build("/rugs",
		[]string{"color/red", "color/red/size/large", "size/large"},
		[]Rename{{Kind: KindValue, Key: "color", From: "crimson", To: "red"}},
		nil)

	want := []Row{
		{FromPath: "/rugs/color/crimson", ToPath: "/rugs/color/red"},
		{FromPath: "/rugs/color/crimson/size/large", ToPath: "/rugs/color/red/size/large"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestBuildKeyRename(t *testing.T) {
	rows := Build("/rugs",
		[]string{"color/red"},
		[]Rename{{Kind: KindKey, From: "colour", To: "color"}},
		nil)

	want := []Row{{FromPath: "/rugs/colour/red", ToPath: "/rugs/color/red"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestBuildBaseMove(t *testing.T) {
	rows := Build("/rugs",
		[]string{"size/large"},
		nil,
		[]BaseMove{{From: "/shop", To: "/rugs"}})

	want := []Row{
		{FromPath: "/shop", ToPath: "/rugs"},
		{FromPath: "/shop/size/large", ToPath: "/rugs/size/large"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestBuildCombined(t *testing.T) {
	rows := Build("/rugs",
		[]string{"color/red"},
		[]Rename{{Kind: KindValue, From: "crimson", To: "red"}},
		[]BaseMove{{From: "/shop", To: "/rugs"}})

	want := []Row{
		{FromPath: "/shop", ToPath: "/rugs"},
		{FromPath: "/rugs/color/crimson", ToPath: "/rugs/color/red"},
		{FromPath: "/shop/color/red", ToPath: "/rugs/color/red"},
		{FromPath: "/shop/color/crimson", ToPath: "/rugs/color/red"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestBuildScopedValueRenameLeavesOtherKeys(t *testing.T) {
	rows := Build("/rugs",
		[]string{"finish/red", "color/red"},
		[]Rename{{Kind: KindValue, Key: "color", From: "crimson", To: "red"}},
		nil)

	// Only the color key's value is rewritten; finish/red stays.
	want := []Row{{FromPath: "/rugs/color/crimson", ToPath: "/rugs/color/red"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestBuildNoRenamesNoRows(t *testing.T) {
	if rows := Build("/rugs", []string{"color/red"}, nil, nil); len(rows) != 0 {
		t.Errorf("rows = %v, want none", rows)
	}
}

func TestBuildMoveForOtherBaseSkipped(t *testing.T) {
	rows := Build("/rugs",
		[]string{"size/large"},
		nil,
		[]BaseMove{{From: "/old-mats", To: "/mats"}})

	if len(rows) != 0 {
		t.Errorf("rows = %v, want none for a move onto a different base", rows)
	}
}
