package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loginForm is the unauthenticated entry surface. resetMode reuses the email
// input for the forgot-password request.
type loginForm struct {
	email      textinput.Model
	password   textinput.Model
	focus      int // 0 email, 1 password
	errs       map[string]string
	submitting bool
	resetMode  bool
}

func newLoginForm() loginForm {
	email := textinput.New()
	email.Placeholder = "name@domain.tld"
	email.CharLimit = 80
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 80
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginForm{email: email, password: password}
}

func (l *loginForm) focusField(i int) {
	if i == 0 {
		l.email.Focus()
		l.password.Blur()
	} else {
		l.email.Blur()
		l.password.Focus()
	}
	l.focus = i
}

func (a *App) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := &a.login
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "tab", "down":
		if !l.resetMode {
			l.focusField((l.focus + 1) % 2)
		}
		return a, nil
	case "shift+tab", "up":
		if !l.resetMode {
			l.focusField((l.focus + 1) % 2)
		}
		return a, nil
	case "ctrl+r":
		l.resetMode = !l.resetMode
		l.errs = nil
		l.focusField(0)
		if l.resetMode {
			a.setStatus("Enter your email and press enter to request a reset", false)
		} else {
			a.setStatus("", false)
		}
		return a, nil
	case "enter":
		if l.submitting {
			return a, nil
		}
		if l.resetMode {
			l.submitting = true
			a.setStatus("Requesting password reset...", false)
			return a, a.resetCmd(strings.TrimSpace(l.email.Value()))
		}
		if l.focus == 0 {
			l.focusField(1)
			return a, nil
		}
		l.submitting = true
		a.setStatus("Signing in...", false)
		return a, a.loginCmd(strings.TrimSpace(l.email.Value()), l.password.Value())
	}

	var cmd tea.Cmd
	if l.focus == 0 {
		l.email, cmd = l.email.Update(msg)
	} else {
		l.password, cmd = l.password.Update(msg)
	}
	return a, cmd
}

func (a *App) viewLoginScreen() string {
	l := a.login
	var b strings.Builder
	b.WriteString(titleStyle.Render(appName) + "\n\n")
	if l.resetMode {
		b.WriteString(headerStyle.Render("Password reset") + "\n\n")
	} else {
		b.WriteString(headerStyle.Render("Sign in") + "\n\n")
	}

	b.WriteString(labelStyle.Render("Email") + "\n")
	b.WriteString(l.email.View() + "\n")
	if msg, ok := l.errs["email"]; ok {
		b.WriteString(errStyle.Render(msg) + "\n")
	}
	if !l.resetMode {
		b.WriteString("\n" + labelStyle.Render("Password") + "\n")
		b.WriteString(l.password.View() + "\n")
		if msg, ok := l.errs["password"]; ok {
			b.WriteString(errStyle.Render(msg) + "\n")
		}
	}

	b.WriteString("\n" + descHelpStyle.Render("enter: submit · ctrl+r: forgot password · ctrl+c: quit"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
