package tableview

import (
	"strings"
	"testing"
)

func renderCols() []Column {
	return []Column{{Title: "Name", Width: 20}, {Title: "Email", Width: 24}}
}

func personCells(p person) []string { return []string{p.Name, p.Email} }

func TestChooseLayout(t *testing.T) {
	if got := ChooseLayout(80); got != LayoutCompact {
		t.Fatalf("width 80: got layout %v, want compact", got)
	}
	if got := ChooseLayout(120); got != LayoutWide {
		t.Fatalf("width 120: got layout %v, want wide", got)
	}
}

func TestBothLayoutsRenderSameRows(t *testing.T) {
	v := New(personFields, 5)
	v.SetItems([]person{
		{Name: "Juan Pérez", Email: "juan@lab.mx"},
		{Name: "Ana Torres", Email: "ana@lab.mx"},
		{Name: "Luis Vega", Email: "luis@lab.mx"},
	})
	v.SetQuery("a") // Juan, Ana, Vega all contain "a"

	wide := v.Render(renderCols(), personCells, LayoutWide, -1, Styles{})
	compact := v.Render(renderCols(), personCells, LayoutCompact, -1, Styles{})

	for _, name := range []string{"Juan Pérez", "Ana Torres", "Luis Vega"} {
		if !strings.Contains(wide, name) {
			t.Errorf("wide layout missing %q:\n%s", name, wide)
		}
		if !strings.Contains(compact, name) {
			t.Errorf("compact layout missing %q:\n%s", name, compact)
		}
	}
}

func TestWideLayoutHasHeaderCompactDoesNot(t *testing.T) {
	v := New(personFields, 5)
	v.SetItems([]person{{Name: "Ana", Email: "ana@lab.mx"}})

	wide := v.Render(renderCols(), personCells, LayoutWide, -1, Styles{})
	if !strings.HasPrefix(wide, "Name") {
		t.Fatalf("wide layout should start with the header row:\n%s", wide)
	}

	compact := v.Render(renderCols(), personCells, LayoutCompact, -1, Styles{})
	if strings.HasPrefix(compact, "Name ") {
		t.Fatalf("compact layout should not render a header row:\n%s", compact)
	}
}

func TestRenderOnlyCurrentPage(t *testing.T) {
	v := newPeopleView(12)
	v.SetPage(2)

	out := v.Render(renderCols(), personCells, LayoutWide, -1, Styles{})
	if strings.Contains(out, "Person 01") {
		t.Fatalf("page 2 render must not include first-page rows:\n%s", out)
	}
	if !strings.Contains(out, "Person 11") || !strings.Contains(out, "Person 12") {
		t.Fatalf("page 2 render missing its rows:\n%s", out)
	}
}

func TestCompactSelectionMarker(t *testing.T) {
	v := New(personFields, 5)
	v.SetItems([]person{{Name: "Ana"}, {Name: "Luis"}})

	out := v.Render(renderCols(), personCells, LayoutCompact, 1, Styles{})
	if !strings.Contains(out, "> Luis") {
		t.Fatalf("selected row marker missing:\n%s", out)
	}
}

func TestPadTruncatesLongCells(t *testing.T) {
	got := pad("a very long cell value beyond width", 10)
	if len([]rune(got)) == 0 {
		t.Fatal("empty pad result")
	}
	if w := len([]rune(got)); w > 11 { // width plus ellipsis slack
		t.Fatalf("pad did not truncate: %q", got)
	}
}
