package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/labsys/labclient/internal/api"
	"github.com/labsys/labclient/internal/tableview"
)

// screenState is the per-entity view state: the table derivation plus the
// screen-local cursor, search box, and the request generation guard.
type screenState[T any] struct {
	view      *tableview.View[T]
	cursor    int // index within the visible page
	gen       int // bumped per refresh; stale results are dropped
	loading   bool
	loaded    bool
	search    textinput.Model
	searching bool
}

func newScreenState[T any](fields func(T) []string, pageSize int) *screenState[T] {
	in := textinput.New()
	in.Placeholder = "filter"
	in.Prompt = "/ "
	in.CharLimit = 64
	return &screenState[T]{
		view:   tableview.New(fields, pageSize),
		search: in,
	}
}

// apply installs a fresh result set, preserving the live filter.
func (s *screenState[T]) apply(items []T) {
	s.view.SetItems(items)
	s.loaded = true
	s.cursor = 0
}

func (s *screenState[T]) clampCursor() {
	n := len(s.view.Page())
	if n == 0 {
		s.cursor = 0
		return
	}
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// selected returns the entity under the cursor on the visible page.
func (s *screenState[T]) selected() (T, bool) {
	var zero T
	page := s.view.Page()
	if len(page) == 0 || s.cursor >= len(page) {
		return zero, false
	}
	return page[s.cursor], true
}

func (s *screenState[T]) setQueryFromSearch() {
	s.view.SetQuery(s.search.Value())
	s.cursor = 0
}

// Fields the filter box matches against, per entity.

func patientFields(p api.Patient) []string {
	return []string{p.Name, p.Phone}
}

func doctorFields(d api.Doctor) []string {
	return []string{d.Name, d.Specialty, d.Email}
}

func sampleFields(s api.Sample) []string {
	return []string{s.Name}
}

func patientColumns() []tableview.Column {
	return []tableview.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 28},
		{Title: "Birth date", Width: 12},
		{Title: "Gender", Width: 7},
		{Title: "Phone", Width: 16},
	}
}

func patientCells(p api.Patient) []string {
	return []string{strconv.Itoa(p.ID), p.Name, p.BirthDate, string(p.Gender), p.Phone}
}

func doctorColumns() []tableview.Column {
	return []tableview.Column{
		{Title: "ID", Width: 5},
		{Title: "Name", Width: 24},
		{Title: "Specialty", Width: 16},
		{Title: "License", Width: 10},
		{Title: "Phone", Width: 14},
		{Title: "Email", Width: 24},
		{Title: "Role", Width: 10},
	}
}

func doctorCells(d api.Doctor) []string {
	return []string{strconv.Itoa(d.ID), d.Name, d.Specialty, d.License, d.Phone, d.Email, d.Role}
}

func sampleColumns() []tableview.Column {
	return []tableview.Column{
		{Title: "ID", Width: 5},
		{Title: "Label", Width: 32},
	}
}

func sampleCells(s api.Sample) []string {
	return []string{strconv.Itoa(s.ID), s.Name}
}
