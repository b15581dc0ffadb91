package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/wanderguide/internal/config"
	"github.com/kingrea/wanderguide/internal/flow"
	"github.com/kingrea/wanderguide/internal/tour"
)

func TestQuizWalkthroughReachesTour(t *testing.T) {
	fetcher := &recordingFetcher{stops: testStops(3)}
	app := newTestApp(t, t.TempDir(), WithFetcher(fetcher))
	app = runCommands(t, app, app.Init())
	if step, ok := app.Session().Screen().(flow.QuizStep); !ok || step.Index != 0 {
		t.Fatalf("expected first question, got %#v", app.Session().Screen())
	}
	if !strings.Contains(app.View(), "Question 1/6") {
		t.Fatalf("view should show the question counter")
	}

	for i := 0; i < 6; i++ {
		app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	}

	want := []string{"History", "None", "1 hour", "1/2 mile", "1 mile", "No Money"}
	if !reflect.DeepEqual(fetcher.answers, want) {
		t.Fatalf("fetched with %v, want %v", fetcher.answers, want)
	}
	stop, ok := app.Session().Screen().(flow.TourStop)
	if !ok || stop.Index != 0 {
		t.Fatalf("expected first stop, got %#v", app.Session().Screen())
	}
	if view := app.View(); !strings.Contains(view, "Stop 1/3") || !strings.Contains(view, "Stop 0") {
		t.Fatalf("unexpected tour view:\n%s", view)
	}

	app = press(t, app, tea.KeyMsg{Type: tea.KeyRight})
	if stop := app.Session().Screen().(flow.TourStop); stop.Index != 1 {
		t.Fatalf("right arrow moved to %d, want 1", stop.Index)
	}
	app = press(t, app, runeKey('3'))
	if stop := app.Session().Screen().(flow.TourStop); stop.Index != 2 {
		t.Fatalf("jump moved to %d, want 2", stop.Index)
	}
	app = press(t, app, runeKey('9'))
	if stop := app.Session().Screen().(flow.TourStop); stop.Index != 2 {
		t.Fatalf("out-of-range jump moved to %d", stop.Index)
	}
	app = press(t, app, runeKey('h'))
	if stop := app.Session().Screen().(flow.TourStop); stop.Index != 1 {
		t.Fatalf("h moved to %d, want 1", stop.Index)
	}
	app = press(t, app, runeKey('n'))
	if !strings.Contains(app.View(), "comgooglemaps://") {
		t.Fatalf("expected maps link in view")
	}
}

func TestLoadingScreenStartsSpinner(t *testing.T) {
	app := newTestApp(t, t.TempDir(), WithFetcher(&recordingFetcher{stops: testStops(1)}))
	app = runCommands(t, app, app.Init())
	for i := 0; i < 5; i++ {
		app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	}
	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)
	if cmd == nil {
		t.Fatalf("expected transition command")
	}
	model, cmd = app.Update(cmd())
	app = model.(*App)
	if _, ok := app.Session().Screen().(flow.Loading); !ok {
		t.Fatalf("expected loading screen, got %#v", app.Session().Screen())
	}
	if !strings.Contains(app.View(), "Generating your tour") {
		t.Fatalf("loading view missing")
	}
	if _, ok := cmd().(tea.BatchMsg); !ok {
		t.Fatalf("expected fetch and spinner to be batched")
	}
}

func TestFailureShowsMessageAndRetry(t *testing.T) {
	fetcher := &recordingFetcher{err: &tour.TransportError{Message: "connection refused"}}
	app := newTestApp(t, t.TempDir(), WithFetcher(fetcher))
	app = runCommands(t, app, app.Init())
	for i := 0; i < 6; i++ {
		app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	}
	if _, ok := app.Session().Screen().(flow.Failed); !ok {
		t.Fatalf("expected error screen, got %#v", app.Session().Screen())
	}
	if !strings.Contains(app.View(), "Could not reach the tour service: connection refused") {
		t.Fatalf("error view missing message:\n%s", app.View())
	}

	first := app.Session()
	app = press(t, app, runeKey('r'))
	if !first.Closed() {
		t.Fatalf("retry should close the failed session")
	}
	if app.Session().ID() == first.ID() {
		t.Fatalf("retry should start a new session")
	}
	if step, ok := app.Session().Screen().(flow.QuizStep); !ok || step.Index != 0 {
		t.Fatalf("expected fresh quiz after retry, got %#v", app.Session().Screen())
	}
}

func TestQuitClosesSession(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	model, cmd := app.Update(runeKey('q'))
	app = model.(*App)
	if !app.Session().Closed() {
		t.Fatalf("quit should close the session")
	}
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if msg := cmd(); msg == nil {
		t.Fatalf("expected quit message")
	} else if _, ok := msg.(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg, got %T", msg)
	}
}

func TestJournalPanelShowsSessionLog(t *testing.T) {
	projectDir := t.TempDir()
	if err := config.InitProjectDir(projectDir); err != nil {
		t.Fatalf("init project dir: %v", err)
	}
	app := newTestApp(t, projectDir)
	app = runCommands(t, app, app.Init())
	view := app.View()
	if !strings.Contains(view, "LOG · session.log") {
		t.Fatalf("journal panel missing:\n%s", view)
	}
	data, err := os.ReadFile(filepath.Join(projectDir, ".wanderguide", "logs", "session.log"))
	if err != nil {
		t.Fatalf("read journal: %v", err)
	}
	if !strings.Contains(string(data), "opened") {
		t.Fatalf("journal should record the session opening, got %q", data)
	}
}

func TestStopNavHidesArrowsAtEnds(t *testing.T) {
	cases := []struct {
		index, total int
		left, right  bool
	}{
		{0, 1, false, false},
		{0, 3, false, true},
		{1, 3, true, true},
		{2, 3, true, false},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d_of_%d", tc.index, tc.total), func(t *testing.T) {
			nav := stopNav(tc.index, tc.total)
			if got := strings.Contains(nav, arrowLeft); got != tc.left {
				t.Fatalf("%q: left arrow shown=%v, want %v", nav, got, tc.left)
			}
			if got := strings.Contains(nav, arrowRight); got != tc.right {
				t.Fatalf("%q: right arrow shown=%v, want %v", nav, got, tc.right)
			}
		})
	}
}

func newTestApp(t *testing.T, projectDir string, opts ...AppOption) *App {
	t.Helper()
	baseOpts := []AppOption{WithScheduler(flow.ImmediateScheduler{})}
	baseOpts = append(baseOpts, opts...)
	app, err := NewApp(projectDir, baseOpts...)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return app
}

func press(t *testing.T, app *App, msg tea.KeyMsg) *App {
	t.Helper()
	model, cmd := app.Update(msg)
	return runCommands(t, model, cmd)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// runCommands executes cmd and feeds the results back into the model until
// nothing is left. Batches are expanded and spinner ticks are dropped so the
// loop terminates.
func runCommands(t *testing.T, model tea.Model, cmd tea.Cmd) *App {
	t.Helper()
	app, ok := model.(*App)
	if !ok {
		t.Fatalf("unexpected model type: %T", model)
	}
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 64 {
			t.Fatalf("commands did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg:
		default:
			nextModel, nextCmd := app.Update(msg)
			app, ok = nextModel.(*App)
			if !ok {
				t.Fatalf("unexpected model type: %T", nextModel)
			}
			queue = append(queue, nextCmd)
		}
	}
	return app
}

type recordingFetcher struct {
	answers []string
	stops   []tour.Stop
	err     error
}

func (f *recordingFetcher) Fetch(_ context.Context, answers []string) ([]tour.Stop, error) {
	f.answers = append([]string(nil), answers...)
	return f.stops, f.err
}

func testStops(n int) []tour.Stop {
	stops := make([]tour.Stop, n)
	for i := range stops {
		stops[i] = tour.Stop{
			Title:       fmt.Sprintf("Stop %d", i),
			Category:    "Park",
			TourSummary: "Test walk",
			Story:       "A short story.",
			Coordinates: &tour.Coordinate{Latitude: 32.7 + float64(i)/100, Longitude: -79.9},
		}
	}
	return stops
}
