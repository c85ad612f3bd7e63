package cli

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/riceyield/internal/domain"
	"github.com/alexanderramin/riceyield/internal/session"
	"github.com/alexanderramin/riceyield/internal/teatest"
)

// TestDriver wraps teatest.Driver with access to appModel internals.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel for app, sizes the terminal and
// drains Init.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(context.Background(), app)
	d := teatest.New(t, m, teatest.WithSize(120, 60))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// Session returns the live session behind the model.
func (d *TestDriver) Session() *session.Session {
	return d.appModel().sess
}

func (d *TestDriver) Screen() screen {
	return d.appModel().screen
}

// SetInputs replaces every form value in place, as typing would.
func (d *TestDriver) SetInputs(in domain.FormInputs) {
	d.Session().Inputs = in
}

// Submit sets the inputs and submits the form, draining the prediction.
func (d *TestDriver) Submit(in domain.FormInputs) {
	d.T.Helper()
	d.SetInputs(in)
	d.Send(submitMsg{})
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
