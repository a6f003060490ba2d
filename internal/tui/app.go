// Package tui is the terminal front end: a login screen plus one searchable
// paginated table per entity, all driven by the bubbletea update loop.
package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/labsys/labclient/internal/api"
	"github.com/labsys/labclient/internal/config"
	"github.com/labsys/labclient/internal/session"
)

const appName = "LabClient"

type viewState string

const (
	viewLogin    viewState = "login"
	viewPatients viewState = "patients"
	viewDoctors  viewState = "doctors"
	viewSamples  viewState = "samples"
	viewSession  viewState = "session"
)

// entityTabs is the cycle order for tab/shift+tab.
var entityTabs = []viewState{viewPatients, viewDoctors, viewSamples, viewSession}

type modalState string

const (
	modalNone          modalState = ""
	modalForm          modalState = "form"
	modalConfirmDelete modalState = "confirmDelete"
)

type confirmDelete struct {
	kind  entityKind
	id    int
	label string
}

// App ties the screens together. One instance owns all view state; there are
// no package-level singletons.
type App struct {
	ctx    context.Context
	cfg    config.Config
	log    zerolog.Logger
	repos  Repos
	store  *session.Store
	holder *session.Holder

	state viewState
	modal modalState

	width  int
	height int

	login       loginForm
	patientsTab *screenState[api.Patient]
	doctorsTab  *screenState[api.Doctor]
	samplesTab  *screenState[api.Sample]

	form    *entityForm
	confirm *confirmDelete

	status    string
	statusErr bool

	now func() time.Time // injectable clock for the age derivation
}

func New(ctx context.Context, cfg config.Config, log zerolog.Logger, repos Repos, store *session.Store, holder *session.Holder) *App {
	if holder == nil {
		holder = session.NewHolder(nil)
	}
	a := &App{
		ctx:         ctx,
		cfg:         cfg,
		log:         log,
		repos:       repos,
		store:       store,
		holder:      holder,
		state:       viewLogin,
		login:       newLoginForm(),
		patientsTab: newScreenState(patientFields, cfg.UI.PageSize),
		doctorsTab:  newScreenState(doctorFields, cfg.UI.PageSize),
		samplesTab:  newScreenState(sampleFields, cfg.UI.PageSize),
		now:         time.Now,
	}
	if holder.Get() != nil {
		a.state = viewPatients
	}
	return a
}

func (a *App) Init() tea.Cmd {
	if a.holder.Get() != nil {
		return a.loadActiveTab()
	}
	return nil
}

func (a *App) setStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
}

// loadActiveTab refreshes whichever entity screen is showing.
func (a *App) loadActiveTab() tea.Cmd {
	switch a.state {
	case viewPatients:
		return a.loadPatientsCmd()
	case viewDoctors:
		return a.loadDoctorsCmd()
	case viewSamples:
		return a.loadSamplesCmd()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		return a, nil

	case loginDoneMsg:
		return a.handleLoginDone(m)

	case resetDoneMsg:
		a.login.submitting = false
		if m.err != nil {
			a.setStatus(userMessage(m.err), true)
			return a, nil
		}
		a.login.resetMode = false
		a.setStatus(m.message, false)
		return a, nil

	case patientsLoadedMsg:
		applyLoaded(a, a.patientsTab, m.gen, m.items, m.err, "patients")
		return a, nil
	case doctorsLoadedMsg:
		applyLoaded(a, a.doctorsTab, m.gen, m.items, m.err, "doctors")
		return a, nil
	case samplesLoadedMsg:
		applyLoaded(a, a.samplesTab, m.gen, m.items, m.err, "samples")
		return a, nil

	case saveDoneMsg:
		if a.form != nil {
			a.form.submitting = false
		}
		if m.err != nil {
			a.setStatus(userMessage(m.err), true)
			return a, nil
		}
		a.form = nil
		a.modal = modalNone
		a.setStatus("Saved "+string(m.kind), false)
		return a, a.loadActiveTab()

	case deleteDoneMsg:
		if m.err != nil {
			// items stay untouched until the next successful refresh
			a.setStatus(userMessage(m.err), true)
			return a, nil
		}
		a.setStatus("Deleted "+string(m.kind), false)
		return a, a.loadActiveTab()

	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a, nil
}

// applyLoaded installs a list result, dropping stale generations and keeping
// the previous items on failure.
func applyLoaded[T any](a *App, s *screenState[T], gen int, items []T, err error, what string) {
	s.loading = false
	if gen != s.gen {
		a.log.Debug().Str("screen", what).Int("got", gen).Int("want", s.gen).Msg("dropping stale list result")
		return
	}
	if err != nil {
		a.setStatus(userMessage(err), true)
		return
	}
	s.apply(items)
}

func (a *App) handleLoginDone(m loginDoneMsg) (tea.Model, tea.Cmd) {
	a.login.submitting = false
	if m.err != nil {
		var ve *api.ValidationError
		if errors.As(m.err, &ve) {
			a.login.errs = ve.Fields
			a.setStatus("Fix the highlighted fields", true)
			return a, nil
		}
		a.login.errs = nil
		a.setStatus(userMessage(m.err), true)
		return a, nil
	}
	s := m.sess
	a.holder.Set(&s)
	a.login = newLoginForm()
	if err := a.store.Save(m.sess); err != nil {
		a.log.Warn().Err(err).Msg("persist session")
	}
	a.state = viewPatients
	a.setStatus("Signed in as "+m.sess.Name, false)
	return a, a.loadActiveTab()
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.state == viewLogin {
		return a.handleLoginKey(msg)
	}
	if a.modal == modalForm && a.form != nil {
		return a.handleFormKey(msg)
	}
	if a.modal == modalConfirmDelete && a.confirm != nil {
		return a.handleConfirmKey(msg)
	}

	var cmd tea.Cmd
	switch a.state {
	case viewPatients:
		if a.patientsTab.searching {
			cmd = searchKey(a.patientsTab, msg)
			return a, cmd
		}
	case viewDoctors:
		if a.doctorsTab.searching {
			cmd = searchKey(a.doctorsTab, msg)
			return a, cmd
		}
	case viewSamples:
		if a.samplesTab.searching {
			cmd = searchKey(a.samplesTab, msg)
			return a, cmd
		}
	}
	return a.handleBrowseKey(msg)
}

func (a *App) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "tab":
		return a.switchTab(1)
	case "shift+tab":
		return a.switchTab(-1)
	}

	if a.state == viewSession {
		return a.handleSessionKey(msg)
	}

	switch msg.String() {
	case "r":
		a.setStatus("Refreshing...", false)
		return a, a.loadActiveTab()
	case "/":
		a.startSearch()
	case "esc":
		a.clearSearch()
	case "up", "k":
		a.moveCursor(-1)
	case "down", "j":
		a.moveCursor(1)
	case "]", "right":
		a.pageStep(1)
	case "[", "left":
		a.pageStep(-1)
	case "s":
		a.cyclePageSize()
	case "n":
		a.openCreateForm()
	case "e":
		a.openEditForm()
	case "d":
		a.openDeleteConfirm()
	}
	return a, nil
}

func (a *App) switchTab(dir int) (tea.Model, tea.Cmd) {
	cur := 0
	for i, t := range entityTabs {
		if t == a.state {
			cur = i
			break
		}
	}
	a.state = entityTabs[(cur+dir+len(entityTabs))%len(entityTabs)]
	a.setStatus("", false)
	if a.state == viewSession {
		return a, nil
	}
	// refresh on focus; the generation guard disposes of whatever was in flight
	return a, a.loadActiveTab()
}

func (a *App) handleSessionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "x" {
		if err := a.store.Clear(); err != nil {
			a.log.Warn().Err(err).Msg("clear session")
		}
		a.holder.Set(nil)
		a.state = viewLogin
		a.login = newLoginForm()
		a.setStatus("Signed out", false)
	}
	return a, nil
}

func (a *App) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		c := *a.confirm
		a.confirm = nil
		a.modal = modalNone
		a.setStatus("Deleting...", false)
		return a, a.deleteCmd(c.kind, c.id)
	case "n", "esc":
		a.confirm = nil
		a.modal = modalNone
	}
	return a, nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := a.form
	switch msg.String() {
	case "esc":
		a.form = nil
		a.modal = modalNone
		return a, nil
	case "tab", "down":
		f.nextField()
		return a, nil
	case "shift+tab", "up":
		f.prevField()
		return a, nil
	case "enter":
		if f.focus < len(f.fields)-1 {
			f.nextField()
			return a, nil
		}
		return a.submitForm()
	case "ctrl+s":
		return a.submitForm()
	}
	return a, f.handleInput(msg)
}

func (a *App) submitForm() (tea.Model, tea.Cmd) {
	f := a.form
	if f.submitting {
		return a, nil
	}
	if errs := f.validate(); len(errs) > 0 {
		f.errs = errs
		a.setStatus("Fix the highlighted fields", true)
		return a, nil
	}
	f.errs = nil
	f.submitting = true
	a.setStatus("Saving...", false)
	switch f.kind {
	case kindPatient:
		return a, a.savePatientCmd(f.editID, f.patientInput(a.now()))
	case kindDoctor:
		return a, a.saveDoctorCmd(f.editID, f.doctorInput())
	case kindSample:
		return a, a.saveSampleCmd(f.editID, f.sampleInput())
	}
	return a, nil
}

func (a *App) openCreateForm() {
	switch a.state {
	case viewPatients:
		a.form = newPatientForm(nil, a.now())
	case viewDoctors:
		a.form = newDoctorForm(nil)
	case viewSamples:
		a.form = newSampleForm(nil)
	default:
		return
	}
	a.modal = modalForm
}

func (a *App) openEditForm() {
	switch a.state {
	case viewPatients:
		if p, ok := a.patientsTab.selected(); ok {
			a.form = newPatientForm(&p, a.now())
			a.modal = modalForm
		}
	case viewDoctors:
		if d, ok := a.doctorsTab.selected(); ok {
			a.form = newDoctorForm(&d)
			a.modal = modalForm
		}
	case viewSamples:
		if s, ok := a.samplesTab.selected(); ok {
			a.form = newSampleForm(&s)
			a.modal = modalForm
		}
	}
}

func (a *App) openDeleteConfirm() {
	switch a.state {
	case viewPatients:
		if p, ok := a.patientsTab.selected(); ok {
			a.confirm = &confirmDelete{kind: kindPatient, id: p.ID, label: p.Name}
			a.modal = modalConfirmDelete
		}
	case viewDoctors:
		if d, ok := a.doctorsTab.selected(); ok {
			a.confirm = &confirmDelete{kind: kindDoctor, id: d.ID, label: d.Name}
			a.modal = modalConfirmDelete
		}
	case viewSamples:
		if s, ok := a.samplesTab.selected(); ok {
			a.confirm = &confirmDelete{kind: kindSample, id: s.ID, label: s.Name}
			a.modal = modalConfirmDelete
		}
	}
}

func (a *App) startSearch() {
	switch a.state {
	case viewPatients:
		a.patientsTab.searching = true
		a.patientsTab.search.Focus()
	case viewDoctors:
		a.doctorsTab.searching = true
		a.doctorsTab.search.Focus()
	case viewSamples:
		a.samplesTab.searching = true
		a.samplesTab.search.Focus()
	}
}

func (a *App) clearSearch() {
	switch a.state {
	case viewPatients:
		resetSearch(a.patientsTab)
	case viewDoctors:
		resetSearch(a.doctorsTab)
	case viewSamples:
		resetSearch(a.samplesTab)
	}
}

func resetSearch[T any](s *screenState[T]) {
	s.search.SetValue("")
	s.search.Blur()
	s.searching = false
	s.setQueryFromSearch()
}

// searchKey feeds keystrokes to the filter box; the derived view updates
// live on every keystroke.
func searchKey[T any](s *screenState[T], msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		resetSearch(s)
		return nil
	case "enter":
		s.searching = false
		s.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	s.setQueryFromSearch()
	return cmd
}

func (a *App) moveCursor(dir int) {
	switch a.state {
	case viewPatients:
		a.patientsTab.cursor += dir
		a.patientsTab.clampCursor()
	case viewDoctors:
		a.doctorsTab.cursor += dir
		a.doctorsTab.clampCursor()
	case viewSamples:
		a.samplesTab.cursor += dir
		a.samplesTab.clampCursor()
	}
}

func (a *App) pageStep(dir int) {
	switch a.state {
	case viewPatients:
		stepPage(a.patientsTab, dir)
	case viewDoctors:
		stepPage(a.doctorsTab, dir)
	case viewSamples:
		stepPage(a.samplesTab, dir)
	}
}

func stepPage[T any](s *screenState[T], dir int) {
	if dir > 0 {
		s.view.NextPage()
	} else {
		s.view.PrevPage()
	}
	s.cursor = 0
}

func (a *App) cyclePageSize() {
	switch a.state {
	case viewPatients:
		a.patientsTab.view.CyclePageSize()
		a.patientsTab.cursor = 0
	case viewDoctors:
		a.doctorsTab.view.CyclePageSize()
		a.doctorsTab.cursor = 0
	case viewSamples:
		a.samplesTab.view.CyclePageSize()
		a.samplesTab.cursor = 0
	}
}

// userMessage maps typed API errors to status-bar text.
func userMessage(err error) string {
	var (
		ve *api.ValidationError
		ae *api.AuthError
		ne *api.NetworkError
		nf *api.NotFoundError
		se *api.ServerError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &ae):
		return ae.Error()
	case errors.As(err, &ne):
		return "Could not reach the server"
	case errors.As(err, &nf):
		return nf.Error()
	case errors.As(err, &se):
		return se.Error()
	}
	return err.Error()
}
