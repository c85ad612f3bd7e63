// Package session holds the state of one interactive form session and
// decides which asynchronous results are still current.
//
// A Session is owned by a single event loop and is not safe for
// concurrent use.
package session

import (
	"github.com/google/uuid"

	"github.com/alexanderramin/riceyield/internal/domain"
	"github.com/alexanderramin/riceyield/internal/features"
)

// Submission is an accepted submit: the cycle it opened and the
// feature set computed from the input snapshot.
type Submission struct {
	Cycle    string
	Features domain.FeatureSet
}

// AdviceRequest identifies one advice call. Token changes on every
// request so an older call that settles late is ignored.
type AdviceRequest struct {
	Token    string
	Cycle    string
	Features domain.FeatureSet
	Yield    float64
}

type Session struct {
	Inputs domain.FormInputs

	ValidationErr error
	PredictErr    error
	Advice        string

	Predicting    bool
	AdviceLoading bool

	cycle       string
	adviceToken string
	features    domain.FeatureSet
	result      *domain.PredictionResult

	newID func() string
}

// New returns a session with empty yearly inputs.
func New() *Session {
	return &Session{
		Inputs: domain.NewFormInputs(),
		newID:  uuid.NewString,
	}
}

// Submit validates a snapshot of the current inputs. On success it opens
// a new prediction cycle, which clears the previous result and advice and
// supersedes any call still in flight. A validation failure leaves the
// previous cycle untouched.
func (s *Session) Submit() (Submission, error) {
	snap := s.Inputs.Snapshot()

	fs, err := features.Validate(snap, snap.Mode)
	if err != nil {
		s.ValidationErr = err
		return Submission{}, err
	}

	s.cycle = s.newID()
	s.adviceToken = ""
	s.features = fs
	s.result = nil
	s.Advice = ""
	s.ValidationErr = nil
	s.PredictErr = nil
	s.Predicting = true
	s.AdviceLoading = false

	return Submission{Cycle: s.cycle, Features: fs}, nil
}

// CompletePrediction records the outcome of the prediction call for cycle.
// It reports false, changing nothing, when cycle is no longer current.
func (s *Session) CompletePrediction(cycle string, yield float64, err error) bool {
	if cycle == "" || cycle != s.cycle {
		return false
	}

	s.Predicting = false
	if err != nil {
		s.PredictErr = err
		s.result = nil
		return true
	}

	r := domain.NewPredictionResult(yield)
	s.result = &r
	return true
}

// RequestAdvice starts an advice call for the current result. It reports
// false when there is no result to advise on.
func (s *Session) RequestAdvice() (AdviceRequest, bool) {
	if s.result == nil {
		return AdviceRequest{}, false
	}

	s.adviceToken = s.newID()
	s.Advice = ""
	s.AdviceLoading = true

	return AdviceRequest{
		Token:    s.adviceToken,
		Cycle:    s.cycle,
		Features: s.features,
		Yield:    s.result.YieldValue,
	}, true
}

// CompleteAdvice stores text if token belongs to the latest advice
// request of the current cycle. Stale completions report false.
func (s *Session) CompleteAdvice(token, text string) bool {
	if token == "" || token != s.adviceToken {
		return false
	}
	s.Advice = text
	s.AdviceLoading = false
	return true
}

// Result returns the latest successful prediction, if any.
func (s *Session) Result() (domain.PredictionResult, bool) {
	if s.result == nil {
		return domain.PredictionResult{}, false
	}
	return *s.result, true
}

// Features returns the feature set of the current cycle.
func (s *Session) Features() domain.FeatureSet {
	return s.features
}

// Cycle returns the identifier of the current prediction cycle.
func (s *Session) Cycle() string {
	return s.cycle
}
