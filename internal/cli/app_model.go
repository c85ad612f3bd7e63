package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/alexanderramin/riceyield/internal/advice"
	"github.com/alexanderramin/riceyield/internal/cli/formatter"
	"github.com/alexanderramin/riceyield/internal/predict"
	"github.com/alexanderramin/riceyield/internal/session"
)

type screen int

const (
	screenForm screen = iota
	screenResult
)

// submitMsg asks the model to validate the inputs and start a prediction.
type submitMsg struct{}

// predictionMsg carries the outcome of one prediction call.
type predictionMsg struct {
	cycle string
	yield float64
	err   error
}

// adviceMsg carries the text of one advice call.
type adviceMsg struct {
	token string
	text  string
}

type resultKeyMap struct {
	Advice key.Binding
	Edit   key.Binding
	Again  key.Binding
	Quit   key.Binding
}

func newResultKeyMap() resultKeyMap {
	return resultKeyMap{
		Advice: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "advice")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit inputs")),
		Again:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "predict again")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k resultKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Advice, k.Edit, k.Again, k.Quit}
}

func (k resultKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// appModel is the root bubbletea Model for the TUI. It owns the form, the
// session state and the loading indicators; network calls run as Cmds and
// report back through predictionMsg and adviceMsg.
type appModel struct {
	ctx       context.Context
	predictor predict.Predictor
	advisor   advice.Advisor

	sess    *session.Session
	form    *huh.Form
	screen  screen
	spinner spinner.Model
	help    help.Model
	keys    resultKeyMap

	width    int
	height   int
	quitting bool
}

func newAppModel(ctx context.Context, app *App) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	sess := session.New()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	return appModel{
		ctx:       ctx,
		predictor: app.predictor(),
		advisor:   app.advisor(),
		sess:      sess,
		form:      newInputForm(&sess.Inputs),
		screen:    screenForm,
		spinner:   sp,
		help:      help.New(),
		keys:      newResultKeyMap(),
	}
}

func (m appModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.screen == screenForm {
			return m.updateForm(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if m.screen == screenResult {
			return m.handleResultKey(msg)
		}
		if msg.Type == tea.KeyEsc {
			return m.leaveForm()
		}
		return m.updateForm(msg)

	case submitMsg:
		return m.submit()

	case predictionMsg:
		m.sess.CompletePrediction(msg.cycle, msg.yield, msg.err)
		return m, nil

	case adviceMsg:
		m.sess.CompleteAdvice(msg.token, msg.text)
		return m, nil

	case spinner.TickMsg:
		if !m.sess.Predicting && !m.sess.AdviceLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.screen == screenForm {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m appModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, tea.Batch(cmd, func() tea.Msg { return submitMsg{} })
	}
	return m, cmd
}

// leaveForm returns to the last result, or quits when there is none.
func (m appModel) leaveForm() (tea.Model, tea.Cmd) {
	if m.sess.Cycle() == "" {
		m.quitting = true
		return m, tea.Quit
	}
	m.screen = screenResult
	return m, nil
}

// submit validates a snapshot of the inputs. A validation error reopens the
// form with an inline message and makes no network call.
func (m appModel) submit() (tea.Model, tea.Cmd) {
	sub, err := m.sess.Submit()
	if err != nil {
		return m.reopenForm()
	}

	m.screen = screenResult
	return m, tea.Batch(m.spinner.Tick, predictCmd(m.ctx, m.predictor, sub))
}

// reopenForm rebuilds the form over the same inputs. A completed huh form
// cannot be resumed.
func (m appModel) reopenForm() (tea.Model, tea.Cmd) {
	m.form = newInputForm(&m.sess.Inputs)
	m.screen = screenForm
	return m, m.form.Init()
}

func (m appModel) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Edit):
		m.sess.ValidationErr = nil
		return m.reopenForm()

	case key.Matches(msg, m.keys.Again):
		return m.submit()

	case key.Matches(msg, m.keys.Advice):
		req, ok := m.sess.RequestAdvice()
		if !ok {
			return m, nil
		}
		return m, tea.Batch(m.spinner.Tick, adviceCmd(m.ctx, m.advisor, req))
	}
	return m, nil
}

func predictCmd(ctx context.Context, p predict.Predictor, sub session.Submission) tea.Cmd {
	return func() tea.Msg {
		y, err := p.Predict(ctx, sub.Features)
		return predictionMsg{cycle: sub.Cycle, yield: y, err: err}
	}
}

func adviceCmd(ctx context.Context, a advice.Advisor, req session.AdviceRequest) tea.Cmd {
	return func() tea.Msg {
		return adviceMsg{token: req.Token, text: a.Advise(ctx, req.Features, req.Yield)}
	}
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.Header("Rice Yield Prediction"))
	b.WriteString("\n\n")

	if m.screen == screenForm {
		if m.sess.ValidationErr != nil {
			b.WriteString(formatter.FormatValidationError(m.sess.ValidationErr))
			b.WriteString("\n\n")
		}
		b.WriteString(m.form.View())
		return b.String()
	}

	switch res, ok := m.sess.Result(); {
	case m.sess.Predicting:
		b.WriteString(m.spinner.View() + " " + formatter.Dim("Predicting yield..."))
	case m.sess.PredictErr != nil:
		b.WriteString(formatter.FormatPredictionError())
	case ok:
		b.WriteString(formatter.FormatPrediction(m.sess.Features(), res))
	}
	b.WriteString("\n\n")

	if m.sess.AdviceLoading {
		b.WriteString(m.spinner.View() + " " + formatter.Dim("Getting advice..."))
		b.WriteString("\n\n")
	} else if m.sess.Advice != "" {
		b.WriteString(formatter.FormatAdvice(m.sess.Advice, m.adviceWidth()))
		b.WriteString("\n\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m appModel) adviceWidth() int {
	if m.width <= 0 {
		return 80
	}
	if m.width < 40 {
		return 40
	}
	return m.width - 4
}
