package flow

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/kingrea/wanderguide/internal/quiz"
	"github.com/kingrea/wanderguide/internal/tour"
)

const (
	DefaultIntroDelay  = 800 * time.Millisecond
	DefaultAnswerDelay = 500 * time.Millisecond
	DefaultRevealDelay = 2 * time.Second
)

// Fetcher runs the tour pipeline for a completed answer set.
type Fetcher interface {
	Fetch(ctx context.Context, answers []string) ([]tour.Stop, error)
}

// FetcherFunc adapts a function into a Fetcher.
type FetcherFunc func(ctx context.Context, answers []string) ([]tour.Stop, error)

// Fetch executes f.
func (f FetcherFunc) Fetch(ctx context.Context, answers []string) ([]tour.Stop, error) {
	return f(ctx, answers)
}

// Journal records session progress. *logbook.Logbook satisfies it.
type Journal interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Timing holds the presentation delays between screens.
type Timing struct {
	Intro  time.Duration
	Answer time.Duration
	Reveal time.Duration
}

// DefaultTiming returns the stock delays.
func DefaultTiming() Timing {
	return Timing{Intro: DefaultIntroDelay, Answer: DefaultAnswerDelay, Reveal: DefaultRevealDelay}
}

// Option customizes a Session.
type Option func(*Session)

// WithScheduler overrides the timer used for delayed transitions.
func WithScheduler(s Scheduler) Option {
	return func(sess *Session) {
		if s != nil {
			sess.scheduler = s
		}
	}
}

// WithTiming overrides the presentation delays. Negative values become zero.
func WithTiming(t Timing) Option {
	return func(sess *Session) {
		sess.timing = Timing{
			Intro:  nonNegative(t.Intro),
			Answer: nonNegative(t.Answer),
			Reveal: nonNegative(t.Reveal),
		}
	}
}

// WithJournal records transitions to j.
func WithJournal(j Journal) Option {
	return func(sess *Session) {
		if j != nil {
			sess.journal = j
		}
	}
}

// WithContext ties the session lifetime to ctx in addition to Close.
func WithContext(ctx context.Context) Option {
	return func(sess *Session) {
		if ctx != nil {
			sess.parent = ctx
		}
	}
}

type introElapsedMsg struct{ session string }

type answerElapsedMsg struct {
	session string
	index   int
	value   string
}

type fetchFinishedMsg struct {
	session string
	stops   []tour.Stop
	err     error
}

type revealElapsedMsg struct{ session string }

// Session drives one run from the intro card to either a tour or an error.
//
// All methods must be called from the same goroutine (the bubbletea update
// loop). Blocking work happens inside the returned commands and comes back as
// messages for Update.
type Session struct {
	id        string
	parent    context.Context
	ctx       context.Context
	cancel    context.CancelFunc
	sheet     *quiz.Sheet
	fetcher   Fetcher
	scheduler Scheduler
	timing    Timing
	journal   Journal

	screen    Screen
	quizIndex int
	advancing bool
	started   bool
	fetched   bool
	closed    bool
	stops     []tour.Stop
}

// New prepares a session over a copy of bank. Call Start to begin.
func New(bank quiz.Bank, fetcher Fetcher, opts ...Option) *Session {
	s := &Session{
		id:        uuid.NewString(),
		parent:    context.Background(),
		sheet:     quiz.NewSheet(bank),
		fetcher:   fetcher,
		scheduler: TimerScheduler{},
		timing:    DefaultTiming(),
		journal:   nopJournal{},
		screen:    Intro{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.ctx, s.cancel = context.WithCancel(s.parent)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Screen returns the current screen.
func (s *Session) Screen() Screen { return s.screen }

// QuizIndex returns the index of the question being asked, or the question
// count once the quiz is complete.
func (s *Session) QuizIndex() int { return s.quizIndex }

// QuestionCount returns the number of quiz questions.
func (s *Session) QuestionCount() int { return s.sheet.Len() }

// Answers returns the answers recorded so far, in question order.
func (s *Session) Answers() []string { return s.sheet.Answers().Values() }

// Itinerary returns the installed stops.
func (s *Session) Itinerary() []tour.Stop {
	out := make([]tour.Stop, len(s.stops))
	copy(out, s.stops)
	return out
}

// TourCoordinates lists the itinerary coordinates in order.
func (s *Session) TourCoordinates() []tour.Coordinate {
	return tour.Coordinates(s.stops)
}

// NavigationURL returns the maps hand-off link for the current stop.
func (s *Session) NavigationURL() (string, bool) {
	current, ok := s.screen.(TourStop)
	if !ok {
		return "", false
	}
	return tour.NavigationURL(s.TourCoordinates(), current.Index)
}

// Start schedules the move from Intro to the first question.
func (s *Session) Start() tea.Cmd {
	if s.started || s.closed {
		return nil
	}
	s.started = true
	s.journal.Info("Session %s opened · %d question(s)", s.shortID(), s.sheet.Len())
	return s.scheduler.After(s.ctx, s.timing.Intro, introElapsedMsg{session: s.id})
}

// SubmitAnswer answers the question currently on screen.
func (s *Session) SubmitAnswer(value string) tea.Cmd {
	step, ok := s.screen.(QuizStep)
	if !ok {
		return nil
	}
	return s.SubmitAnswerAt(step.Index, value)
}

// SubmitAnswerAt records value for question index and schedules the next
// screen. It is ignored unless question index is on screen and no earlier
// answer is still waiting for its transition.
func (s *Session) SubmitAnswerAt(index int, value string) tea.Cmd {
	if s.closed || s.advancing {
		return nil
	}
	step, ok := s.screen.(QuizStep)
	if !ok || step.Index != index {
		return nil
	}
	if err := s.sheet.Answers().Record(index, value); err != nil {
		s.journal.Warn("Answer %d rejected: %v", index, err)
		return nil
	}
	s.advancing = true
	s.journal.Info("Answer %d/%d · %s", index+1, s.sheet.Len(), value)
	return s.scheduler.After(s.ctx, s.timing.Answer, answerElapsedMsg{session: s.id, index: index, value: value})
}

// NavigateTo shows stop index. Out-of-range indices and calls outside the
// tour leave the screen unchanged.
func (s *Session) NavigateTo(index int) {
	if _, ok := s.screen.(TourStop); !ok {
		return
	}
	if index < 0 || index >= len(s.stops) {
		return
	}
	s.screen = TourStop{Stop: s.stops[index], Index: index}
	s.journal.Info("Stop %d/%d · %s", index+1, len(s.stops), s.stops[index].Title)
}

// Swipe moves one stop in dir.
func (s *Session) Swipe(dir Direction) {
	current, ok := s.screen.(TourStop)
	if !ok {
		return
	}
	switch dir {
	case Left:
		s.NavigateTo(current.Index - 1)
	case Right:
		s.NavigateTo(current.Index + 1)
	}
}

// Close cancels pending timers and the in-flight fetch. Messages that arrive
// afterwards are ignored.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
	s.journal.Info("Session %s closed on %s screen", s.shortID(), s.screen.Name())
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool { return s.closed }

// Update applies session messages. Messages for other sessions, or any
// message after Close, are dropped.
func (s *Session) Update(msg tea.Msg) tea.Cmd {
	if s.closed {
		return nil
	}
	switch m := msg.(type) {
	case introElapsedMsg:
		if m.session != s.id {
			return nil
		}
		return s.handleIntroElapsed()
	case answerElapsedMsg:
		if m.session != s.id {
			return nil
		}
		return s.handleAnswerElapsed(m)
	case fetchFinishedMsg:
		if m.session != s.id {
			return nil
		}
		return s.handleFetchFinished(m)
	case revealElapsedMsg:
		if m.session != s.id {
			return nil
		}
		s.handleRevealElapsed()
	}
	return nil
}

func (s *Session) handleIntroElapsed() tea.Cmd {
	if _, ok := s.screen.(Intro); !ok {
		return nil
	}
	if s.sheet.Len() == 0 {
		return s.beginFetch()
	}
	s.showQuestion(0)
	return nil
}

func (s *Session) handleAnswerElapsed(m answerElapsedMsg) tea.Cmd {
	s.advancing = false
	next := m.index + 1
	s.quizIndex = next
	if next < s.sheet.Len() {
		s.sheet.Exclude(m.index, m.value)
		s.showQuestion(next)
		return nil
	}
	return s.beginFetch()
}

func (s *Session) showQuestion(index int) {
	question, _ := s.sheet.Question(index)
	s.quizIndex = index
	s.screen = QuizStep{Question: question, Index: index}
}

func (s *Session) beginFetch() tea.Cmd {
	if s.fetched {
		return nil
	}
	s.fetched = true
	s.screen = Loading{}
	answers := s.sheet.Answers().Values()
	ctx := s.ctx
	fetcher := s.fetcher
	id := s.id
	s.journal.Info("Generating tour · answers=%q", answers)
	return func() tea.Msg {
		if fetcher == nil {
			return fetchFinishedMsg{session: id, err: fmt.Errorf("flow: no tour fetcher configured")}
		}
		stops, err := fetcher.Fetch(ctx, answers)
		return fetchFinishedMsg{session: id, stops: stops, err: err}
	}
}

func (s *Session) handleFetchFinished(m fetchFinishedMsg) tea.Cmd {
	if _, ok := s.screen.(Loading); !ok {
		return nil
	}
	err := m.err
	if err == nil && len(m.stops) == 0 {
		err = tour.ErrEmptyItinerary
	}
	if err != nil {
		s.screen = Failed{Message: tour.Describe(err)}
		s.journal.Error("Tour generation failed: %v", err)
		return nil
	}
	s.stops = append([]tour.Stop(nil), m.stops...)
	s.journal.Info("Itinerary installed · %d stop(s)", len(s.stops))
	return s.scheduler.After(s.ctx, s.timing.Reveal, revealElapsedMsg{session: s.id})
}

func (s *Session) handleRevealElapsed() {
	if _, ok := s.screen.(Loading); !ok || len(s.stops) == 0 {
		return
	}
	s.screen = TourStop{Stop: s.stops[0], Index: 0}
	s.journal.Info("Stop 1/%d · %s", len(s.stops), s.stops[0].Title)
}

func (s *Session) shortID() string {
	if len(s.id) > 8 {
		return s.id[:8]
	}
	return s.id
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

type nopJournal struct{}

func (nopJournal) Info(string, ...any)  {}
func (nopJournal) Warn(string, ...any)  {}
func (nopJournal) Error(string, ...any) {}
