package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/labsys/labclient/internal/api"
	"github.com/labsys/labclient/internal/session"
)

// The app talks to the backend through these; production wiring passes the
// api repos, tests pass fakes.

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (session.Session, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
}

type PatientAPI interface {
	List(ctx context.Context) ([]api.Patient, error)
	Create(ctx context.Context, in api.PatientInput) (api.Patient, error)
	Update(ctx context.Context, id int, in api.PatientInput) error
	Delete(ctx context.Context, id int) error
}

type DoctorAPI interface {
	List(ctx context.Context) ([]api.Doctor, error)
	Create(ctx context.Context, in api.DoctorInput) (api.Doctor, error)
	Update(ctx context.Context, id int, in api.DoctorInput) error
	Delete(ctx context.Context, id int) error
}

type SampleAPI interface {
	List(ctx context.Context) ([]api.Sample, error)
	Create(ctx context.Context, in api.SampleInput) (api.Sample, error)
	Update(ctx context.Context, id int, in api.SampleInput) error
	Delete(ctx context.Context, id int) error
}

// Repos groups the backend clients the screens dispatch to.
type Repos struct {
	Auth     AuthAPI
	Patients PatientAPI
	Doctors  DoctorAPI
	Samples  SampleAPI
}

type entityKind string

const (
	kindPatient entityKind = "patient"
	kindDoctor  entityKind = "doctor"
	kindSample  entityKind = "sample"
)

// Messages posted back into Update by async commands.

type loginDoneMsg struct {
	sess session.Session
	err  error
}

type resetDoneMsg struct {
	message string
	err     error
}

type patientsLoadedMsg struct {
	gen   int
	items []api.Patient
	err   error
}

type doctorsLoadedMsg struct {
	gen   int
	items []api.Doctor
	err   error
}

type samplesLoadedMsg struct {
	gen   int
	items []api.Sample
	err   error
}

type saveDoneMsg struct {
	kind entityKind
	err  error
}

type deleteDoneMsg struct {
	kind entityKind
	err  error
}

func (a *App) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		s, err := a.repos.Auth.Login(a.ctx, email, password)
		return loginDoneMsg{sess: s, err: err}
	}
}

func (a *App) resetCmd(email string) tea.Cmd {
	return func() tea.Msg {
		msg, err := a.repos.Auth.RequestPasswordReset(a.ctx, email)
		return resetDoneMsg{message: msg, err: err}
	}
}

// Each load bumps the screen's generation; the handler drops results stamped
// with an older one. That covers overlapping refreshes and responses landing
// after the screen moved on.

func (a *App) loadPatientsCmd() tea.Cmd {
	a.patientsTab.loading = true
	a.patientsTab.gen++
	gen := a.patientsTab.gen
	return func() tea.Msg {
		items, err := a.repos.Patients.List(a.ctx)
		return patientsLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (a *App) loadDoctorsCmd() tea.Cmd {
	a.doctorsTab.loading = true
	a.doctorsTab.gen++
	gen := a.doctorsTab.gen
	return func() tea.Msg {
		items, err := a.repos.Doctors.List(a.ctx)
		return doctorsLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (a *App) loadSamplesCmd() tea.Cmd {
	a.samplesTab.loading = true
	a.samplesTab.gen++
	gen := a.samplesTab.gen
	return func() tea.Msg {
		items, err := a.repos.Samples.List(a.ctx)
		return samplesLoadedMsg{gen: gen, items: items, err: err}
	}
}

func (a *App) savePatientCmd(id int, in api.PatientInput) tea.Cmd {
	return func() tea.Msg {
		var err error
		if id == 0 {
			_, err = a.repos.Patients.Create(a.ctx, in)
		} else {
			err = a.repos.Patients.Update(a.ctx, id, in)
		}
		return saveDoneMsg{kind: kindPatient, err: err}
	}
}

func (a *App) saveDoctorCmd(id int, in api.DoctorInput) tea.Cmd {
	return func() tea.Msg {
		var err error
		if id == 0 {
			_, err = a.repos.Doctors.Create(a.ctx, in)
		} else {
			err = a.repos.Doctors.Update(a.ctx, id, in)
		}
		return saveDoneMsg{kind: kindDoctor, err: err}
	}
}

func (a *App) saveSampleCmd(id int, in api.SampleInput) tea.Cmd {
	return func() tea.Msg {
		var err error
		if id == 0 {
			_, err = a.repos.Samples.Create(a.ctx, in)
		} else {
			err = a.repos.Samples.Update(a.ctx, id, in)
		}
		return saveDoneMsg{kind: kindSample, err: err}
	}
}

func (a *App) deleteCmd(kind entityKind, id int) tea.Cmd {
	return func() tea.Msg {
		var err error
		switch kind {
		case kindPatient:
			err = a.repos.Patients.Delete(a.ctx, id)
		case kindDoctor:
			err = a.repos.Doctors.Delete(a.ctx, id)
		case kindSample:
			err = a.repos.Samples.Delete(a.ctx, id)
		}
		return deleteDoneMsg{kind: kind, err: err}
	}
}
