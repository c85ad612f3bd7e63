package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/riceyield/internal/advice"
	"github.com/alexanderramin/riceyield/internal/domain"
	"github.com/alexanderramin/riceyield/internal/modelstub"
	"github.com/alexanderramin/riceyield/internal/predict"
)

// fakePredictor answers with the placeholder formula unless err is set.
type fakePredictor struct {
	mu    sync.Mutex
	err   error
	calls int
	last  domain.FeatureSet
}

func (f *fakePredictor) Predict(_ context.Context, fs domain.FeatureSet) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = fs
	if f.err != nil {
		return 0, f.err
	}
	return modelstub.Yield(fs), nil
}

func (f *fakePredictor) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakePredictor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeAdvisor hands out replies in call order, then the fallback text.
type fakeAdvisor struct {
	mu      sync.Mutex
	replies []string
	calls   int
}

func (f *fakeAdvisor) Advise(_ context.Context, _ domain.FeatureSet, _ float64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.replies) == 0 {
		return advice.FallbackText
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r
}

func (f *fakeAdvisor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// testApp returns an App wired to fakes, non-interactive.
func testApp(t *testing.T, replies ...string) (*App, *fakePredictor, *fakeAdvisor) {
	t.Helper()
	p := &fakePredictor{}
	a := &fakeAdvisor{replies: replies}
	return &App{
		PredictConfig: predict.DefaultConfig(),
		Version:       "test",
		IsInteractive: func() bool { return false },
		Predictor:     p,
		Advisor:       a,
	}, p, a
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}
