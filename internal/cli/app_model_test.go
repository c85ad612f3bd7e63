package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/riceyield/internal/cli/formatter"
	"github.com/alexanderramin/riceyield/internal/domain"
	"github.com/alexanderramin/riceyield/internal/predict"
	"github.com/alexanderramin/riceyield/internal/testutil"
)

func TestAppModel_StartsOnForm(t *testing.T) {
	app, _, _ := testApp(t)
	d := NewTestDriver(t, app)

	assert.Equal(t, screenForm, d.Screen())
	assert.Contains(t, d.View(), "RICE YIELD PREDICTION")
	assert.Contains(t, d.View(), "Climate Data")
	assert.Equal(t, domain.ClimateYearly, d.Session().Inputs.Mode)
}

func TestAppModel_SubmitShowsPrediction(t *testing.T) {
	app, p, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.Submit(testutil.NewTestInputs())

	require.Equal(t, screenResult, d.Screen())
	view := d.View()
	assert.Contains(t, view, "12.9400")
	assert.Contains(t, view, "High Yield")
	assert.NotContains(t, view, "Predicting yield...")
	assert.Equal(t, 1, p.callCount())
}

func TestAppModel_MonthlySubmit(t *testing.T) {
	app, p, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.Submit(testutil.NewTestInputs(testutil.WithMonthlyUniform("100", "27")))

	assert.Contains(t, d.View(), "12.9400")
	assert.Equal(t, 1200.0, p.last.TotalRainfallMm)
	assert.Equal(t, 27.0, p.last.AverageTemperatureC)
}

func TestAppModel_ValidationErrorStaysOnForm(t *testing.T) {
	app, p, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.Submit(testutil.NewTestInputs(testutil.WithSilt("")))

	assert.Equal(t, screenForm, d.Screen())
	assert.Contains(t, d.View(), "Please fill in Silt (%).")
	assert.Equal(t, 0, p.callCount())
	assert.Equal(t, "50", d.Session().Inputs.Nitrogen, "inputs kept")
}

func TestAppModel_PredictingShowsSpinner(t *testing.T) {
	app, _, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.SetInputs(testutil.NewTestInputs())
	cmd := d.Step(submitMsg{})

	assert.Contains(t, d.View(), "Predicting yield...")

	d.Run(cmd)
	assert.NotContains(t, d.View(), "Predicting yield...")
	assert.Contains(t, d.View(), "12.9400")
}

func TestAppModel_PredictionErrorShowsBanner(t *testing.T) {
	app, p, _ := testApp(t)
	p.setErr(predict.ErrNetwork)
	d := NewTestDriver(t, app)

	d.Submit(testutil.NewTestInputs())

	view := d.View()
	assert.Contains(t, view, formatter.PredictionErrorText)
	assert.NotContains(t, view, "High Yield")
}

func TestAppModel_PredictionErrorClearsPreviousYield(t *testing.T) {
	app, p, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.Submit(testutil.NewTestInputs())
	require.Contains(t, d.View(), "12.9400")

	p.setErr(predict.ErrParse)
	d.PressKey('n')

	view := d.View()
	assert.Contains(t, view, formatter.PredictionErrorText)
	assert.NotContains(t, view, "12.9400")
	assert.Equal(t, 2, p.callCount())
}

func TestAppModel_StalePredictionDiscarded(t *testing.T) {
	app, _, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.SetInputs(testutil.NewTestInputs(testutil.WithRainfall("100")))
	firstCmd := d.Step(submitMsg{})

	d.SetInputs(testutil.NewTestInputs())
	secondCmd := d.Step(submitMsg{})

	d.Run(secondCmd)
	d.Run(firstCmd)

	view := d.View()
	assert.Contains(t, view, "12.9400")
	assert.NotContains(t, view, "7.4400")
}

func TestAppModel_AdviceShown(t *testing.T) {
	app, _, a := testApp(t, "Apply nitrogen in split doses.")
	d := NewTestDriver(t, app)
	d.Submit(testutil.NewTestInputs())

	d.PressKey('a')

	view := d.View()
	assert.Contains(t, view, "ADVICE")
	assert.Contains(t, view, "Apply nitrogen in split doses.")
	assert.Contains(t, view, "12.9400", "prediction stays visible")
	assert.Equal(t, 1, a.callCount())
}

func TestAppModel_FallbackAdviceKeepsPrediction(t *testing.T) {
	app, _, _ := testApp(t)
	d := NewTestDriver(t, app)
	d.Submit(testutil.NewTestInputs())

	d.PressKey('a')

	view := d.View()
	assert.Contains(t, view, "Failed to get advice. Please try again.")
	assert.Contains(t, view, "High Yield")
	assert.NotContains(t, view, formatter.PredictionErrorText)
}

func TestAppModel_SecondAdviceRequestWins(t *testing.T) {
	app, _, _ := testApp(t, "current advice", "stale advice")
	d := NewTestDriver(t, app)
	d.Submit(testutil.NewTestInputs())

	firstCmd := d.Step(keyRune('a'))
	secondCmd := d.Step(keyRune('a'))

	d.Run(secondCmd)
	d.Run(firstCmd)

	view := d.View()
	assert.Contains(t, view, "current advice")
	assert.NotContains(t, view, "stale advice")
	assert.False(t, d.Session().AdviceLoading)
}

func TestAppModel_NewCycleDiscardsInFlightAdvice(t *testing.T) {
	app, _, a := testApp(t, "advice for the old cycle")
	d := NewTestDriver(t, app)
	d.Submit(testutil.NewTestInputs())

	adviceCmd := d.Step(keyRune('a'))
	d.PressKey('n')
	d.Run(adviceCmd)

	assert.NotContains(t, d.View(), "advice for the old cycle")
	assert.Empty(t, d.Session().Advice)
	assert.Equal(t, 1, a.callCount())
}

func TestAppModel_AdviceNeedsPrediction(t *testing.T) {
	app, p, a := testApp(t)
	p.setErr(predict.ErrNetwork)
	d := NewTestDriver(t, app)
	d.Submit(testutil.NewTestInputs())

	d.PressKey('a')

	assert.Equal(t, 0, a.callCount())
}

func TestAppModel_EditKeepsValues(t *testing.T) {
	app, _, _ := testApp(t)
	d := NewTestDriver(t, app)
	d.Submit(testutil.NewTestInputs())

	d.PressKey('e')

	assert.Equal(t, screenForm, d.Screen())
	assert.Contains(t, d.View(), "Climate Data")
	assert.Equal(t, testutil.NewTestInputs(), d.Session().Inputs)

	d.PressEsc()
	assert.Equal(t, screenResult, d.Screen())
	assert.Contains(t, d.View(), "12.9400")
}

func TestAppModel_EscOnEmptyFormQuits(t *testing.T) {
	app, _, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.PressEsc()

	assert.True(t, d.Quitting)
}

func TestAppModel_QuitFromResult(t *testing.T) {
	app, _, _ := testApp(t)
	d := NewTestDriver(t, app)
	d.Submit(testutil.NewTestInputs())

	d.PressKey('q')

	assert.True(t, d.Quitting)
	assert.Empty(t, d.View())
}
