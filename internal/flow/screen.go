// internal/flow/screen.go
//
// Screen is a closed set of variants: Intro, Loading, QuizStep, TourStop and
// Failed. Consumers switch on the concrete type; the unexported marker method
// keeps other packages from adding variants.

package flow

import (
	"github.com/kingrea/wanderguide/internal/quiz"
	"github.com/kingrea/wanderguide/internal/tour"
)

// Screen is the currently displayed step of a session.
type Screen interface {
	screen()
	// Name is a short label used in logs.
	Name() string
}

// Intro is the title card shown when a session starts.
type Intro struct{}

// Loading is shown while the tour is being generated.
type Loading struct{}

// QuizStep shows question Index.
type QuizStep struct {
	Question quiz.Question
	Index    int
}

// TourStop shows stop Index of the installed itinerary.
type TourStop struct {
	Stop  tour.Stop
	Index int
}

// Failed ends the session with a human-readable message.
type Failed struct {
	Message string
}

func (Intro) screen()    {}
func (Loading) screen()  {}
func (QuizStep) screen() {}
func (TourStop) screen() {}
func (Failed) screen()   {}

func (Intro) Name() string    { return "intro" }
func (Loading) Name() string  { return "loading" }
func (QuizStep) Name() string { return "quiz" }
func (TourStop) Name() string { return "tour" }
func (Failed) Name() string   { return "error" }
