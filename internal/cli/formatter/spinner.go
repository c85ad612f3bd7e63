package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Braille dot spinner frames.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner keeps one status line alive on w (stderr for the predict
// command) while it waits on the model and then on the advice endpoint.
// A nil *Spinner ignores every call, so callers need not check whether the
// output is a terminal before using it.
type Spinner struct {
	mu      sync.Mutex
	w       io.Writer
	message string
	frame   int

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewSpinner creates a spinner that draws message on w.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start draws the first frame at once, so even a fast reply leaves a
// trace, then redraws until Stop.
func (s *Spinner) Start() {
	if s == nil {
		return
	}
	s.draw()
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.draw()
			}
		}
	}()
}

// SetMessage replaces the status text in place.
func (s *Spinner) SetMessage(message string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
	s.draw()
}

func (s *Spinner) draw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	frame := spinnerFrames[s.frame%len(spinnerFrames)]
	s.frame++
	fmt.Fprintf(s.w, "\r\033[K  %s %s", StylePurple.Render(frame), Dim(s.message))
}

// Stop ends the animation and clears the line. Only the first call has an
// effect.
func (s *Spinner) Stop() {
	if s == nil {
		return
	}
	s.stopOnce.Do(func() {
		close(s.stop)
		<-s.done
		s.mu.Lock()
		defer s.mu.Unlock()
		fmt.Fprint(s.w, "\r\033[K")
	})
}

// StartSpinner creates and starts a spinner on w.
func StartSpinner(w io.Writer, message string) *Spinner {
	s := NewSpinner(w, message)
	s.Start()
	return s
}
