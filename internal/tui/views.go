package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/labsys/labclient/internal/tableview"
)

var tabTitles = map[viewState]string{
	viewPatients: "Patients",
	viewDoctors:  "Doctors",
	viewSamples:  "Samples",
	viewSession:  "Session",
}

func (a *App) View() string {
	if a.state == viewLogin {
		return a.viewLoginScreen()
	}

	var body string
	switch {
	case a.modal == modalForm && a.form != nil:
		body = a.viewForm()
	case a.modal == modalConfirmDelete && a.confirm != nil:
		body = a.viewConfirm()
	case a.state == viewPatients:
		body = renderEntityScreen(a, a.patientsTab, patientColumns(), patientCells)
	case a.state == viewDoctors:
		body = renderEntityScreen(a, a.doctorsTab, doctorColumns(), doctorCells)
	case a.state == viewSamples:
		body = renderEntityScreen(a, a.samplesTab, sampleColumns(), sampleCells)
	case a.state == viewSession:
		body = a.viewSessionScreen()
	}

	var b strings.Builder
	b.WriteString(a.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(a.viewStatusBar())
	b.WriteString("\n")
	b.WriteString(a.viewFooter())
	return b.String()
}

func (a *App) viewHeader() string {
	parts := []string{headerStyle.Render(" " + appName + " ")}
	for _, t := range entityTabs {
		style := inactiveTabStyle
		if t == a.state {
			style = activeTabStyle
		}
		parts = append(parts, style.Render(tabTitles[t]))
	}
	return renderBar(headerBar, max(1, a.width), lipgloss.JoinHorizontal(lipgloss.Top, parts...), colorMantle)
}

// renderEntityScreen draws the filter box, the table in the layout the
// terminal width calls for, and the pagination line.
func renderEntityScreen[T any](a *App, s *screenState[T], cols []tableview.Column, cells func(T) []string) string {
	var b strings.Builder

	if s.searching || s.search.Value() != "" {
		b.WriteString(s.search.View())
		b.WriteString("\n\n")
	}

	switch {
	case s.loading && !s.loaded:
		b.WriteString(labelStyle.Render("Loading..."))
	case len(s.view.Filtered()) == 0:
		if hint, ok := s.view.ClosestMatch(); ok {
			b.WriteString(hintStyle.Render(fmt.Sprintf("No matches. Closest: %s", hint)))
		} else if s.view.Query() != "" {
			b.WriteString(labelStyle.Render("No matches"))
		} else {
			b.WriteString(labelStyle.Render("No records"))
		}
	default:
		layout := tableview.ChooseLayout(a.width)
		b.WriteString(s.view.Render(cols, cells, layout, s.cursor, tableStyles()))
	}

	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf(
		"page %d/%d · %d of %d records · page size %d",
		s.view.PageIndex()+1, s.view.PageCount(),
		len(s.view.Page()), len(s.view.Filtered()), s.view.PageSize(),
	)))
	return b.String()
}

func (a *App) viewSessionScreen() string {
	sess := a.holder.Get()
	if sess == nil {
		return labelStyle.Render("Not signed in")
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Session") + "\n\n")
	row := func(k, v string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", k)) + v + "\n")
	}
	row("Name", sess.Name)
	row("Email", sess.Email)
	row("Role", sess.Role)
	row("Server", a.cfg.Server.BaseURL)
	if exp := sess.ExpiresAt(); !exp.IsZero() {
		// informational only; expiry is not enforced anywhere
		row("Expires", exp.Format("2006-01-02 15:04"))
	}
	b.WriteString("\n" + descHelpStyle.Render("x: sign out"))
	return b.String()
}

func (a *App) viewForm() string {
	f := a.form
	var b strings.Builder
	b.WriteString(titleStyle.Render(formTitle(f)) + "\n\n")
	for _, fl := range f.fields {
		b.WriteString(labelStyle.Render(fl.label) + "\n")
		b.WriteString(fl.input.View() + "\n")
		if msg, ok := f.errs[fl.key]; ok {
			b.WriteString(errStyle.Render(msg) + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(descHelpStyle.Render("enter: next/submit · ctrl+s: submit · esc: cancel"))
	return b.String()
}

func (a *App) viewConfirm() string {
	c := a.confirm
	var b strings.Builder
	b.WriteString(titleStyle.Render("Delete "+string(c.kind)) + "\n\n")
	b.WriteString(fmt.Sprintf("Delete %s %q (id %d)?\n\n", c.kind, c.label, c.id))
	b.WriteString(descHelpStyle.Render("y: delete · n: keep"))
	return b.String()
}

func (a *App) viewStatusBar() string {
	msg := strings.TrimSpace(a.status)
	if msg == "" {
		msg = "Ready"
	}
	if a.statusErr {
		return renderBar(statusErrBarStyle, max(1, a.width), msg, colorSurface0)
	}
	return renderBar(statusBarStyle, max(1, a.width), msg, colorSurface0)
}

func (a *App) viewFooter() string {
	type help struct{ key, desc string }
	var items []help
	switch {
	case a.modal == modalForm:
		items = []help{{"enter", "next/submit"}, {"ctrl+s", "submit"}, {"esc", "cancel"}}
	case a.modal == modalConfirmDelete:
		items = []help{{"y", "delete"}, {"n", "keep"}}
	case a.state == viewSession:
		items = []help{{"tab", "next tab"}, {"x", "sign out"}, {"q", "quit"}}
	default:
		items = []help{
			{"/", "filter"}, {"n", "new"}, {"e", "edit"}, {"d", "delete"},
			{"r", "refresh"}, {"[ ]", "page"}, {"s", "page size"},
			{"tab", "next tab"}, {"q", "quit"},
		}
	}
	parts := make([]string, 0, len(items))
	for _, h := range items {
		parts = append(parts, keyHelpStyle.Render(h.key)+descHelpStyle.Render(" "+h.desc))
	}
	sep := lipgloss.NewStyle().Background(colorMantle).Render("  ")
	return renderBar(footerStyle, max(1, a.width), strings.Join(parts, sep), colorMantle)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
