// internal/tui/app.go
//
// This is the main TUI (Terminal User Interface) for WanderGuide.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The screen state itself lives in flow.Session. App only renders the current
// screen and turns key presses into session calls.

package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/wanderguide/internal/config"
	"github.com/kingrea/wanderguide/internal/flow"
	"github.com/kingrea/wanderguide/internal/logbook"
	"github.com/kingrea/wanderguide/internal/quiz"
	"github.com/kingrea/wanderguide/internal/tour"
)

const (
	journalLines = 6

	arrowLeft  = "◀"
	arrowRight = "▶"
)

var (
	colorAccent = lipgloss.Color("#FF6B6B")
	colorBlue   = lipgloss.Color("#5B8DEF")
	colorBorder = lipgloss.Color("#444444")
	colorMuted  = lipgloss.Color("#888888")
	colorText   = lipgloss.Color("#AAAAAA")
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithFetcher replaces the HTTP tour pipeline.
func WithFetcher(f flow.Fetcher) AppOption {
	return func(a *App) {
		if f != nil {
			a.fetcher = f
		}
	}
}

// WithScheduler replaces the timer used for screen transitions.
func WithScheduler(s flow.Scheduler) AppOption {
	return func(a *App) {
		if s != nil {
			a.scheduler = s
		}
	}
}

// WithBank replaces the question bank loaded from config.
func WithBank(bank quiz.Bank) AppOption {
	return func(a *App) {
		a.bank = bank.Clone()
	}
}

// optionItem implements list.Item for one quiz answer.
type optionItem string

func (o optionItem) Title() string       { return string(o) }
func (o optionItem) Description() string { return "" }
func (o optionItem) FilterValue() string { return string(o) }

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	config    *config.Config
	logbook   *logbook.Logbook
	bank      quiz.Bank
	fetcher   flow.Fetcher
	scheduler flow.Scheduler
	timing    flow.Timing
	session   *flow.Session
	keys      keyMap

	// UI components
	options    list.Model     // answers for the current question
	optionsFor int            // quiz index the list was built for, -1 if none
	spinner    spinner.Model  // shown while the tour is generated
	spinning   bool
	story      viewport.Model // scrollable story for the current stop
	storyFor   int            // stop index the viewport was built for, -1 if none
	showLink   bool
	statusMsg  string

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// NewApp creates a new App instance
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	lb, err := logbook.New(cfg.SessionLogPath())
	if err != nil {
		lb = nil
	}

	delays := cfg.Delays()
	app := &App{
		config:    cfg,
		logbook:   lb,
		scheduler: flow.TimerScheduler{},
		timing:    flow.Timing{Intro: delays.Intro, Answer: delays.Answer, Reveal: delays.Reveal},
		keys:      defaultKeyMap(),
		spinner:   newSpinner(),
		story:     viewport.New(60, 8),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if app.bank.Len() == 0 {
		bank, err := quiz.LoadBankFile(cfg.QuestionBankPath())
		if err != nil {
			return nil, err
		}
		app.bank = bank
	}
	if app.fetcher == nil {
		client := tour.NewClient(cfg.Endpoint(), tour.WithTimeout(cfg.Timeout()))
		app.fetcher = tour.NewPipeline(client, tour.WithJournal(app.journal()))
	}
	app.options = newOptionList()
	app.resetSession()
	return app, nil
}

func newOptionList() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	options := list.New(nil, delegate, 50, 10)
	options.SetShowStatusBar(false)
	options.SetFilteringEnabled(false)
	options.SetShowHelp(false)
	options.SetShowTitle(false)
	options.SetShowPagination(false)
	options.KeyMap.Quit.SetEnabled(false)
	options.KeyMap.ForceQuit.SetEnabled(false)
	return options
}

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorAccent)
	return s
}

// resetSession closes the running session, if any, and prepares a fresh one.
func (a *App) resetSession() {
	if a.session != nil {
		a.session.Close()
	}
	a.session = flow.New(a.bank, a.fetcher,
		flow.WithScheduler(a.scheduler),
		flow.WithTiming(a.timing),
		flow.WithJournal(a.journal()),
	)
	a.optionsFor = -1
	a.storyFor = -1
	a.showLink = false
	a.statusMsg = ""
}

// journal returns the logbook as a flow.Journal. A missing logbook yields nil
// so the session falls back to its no-op journal.
func (a *App) journal() flow.Journal {
	if a.logbook == nil {
		return nil
	}
	return a.logbook
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

// Session exposes the running session.
func (a *App) Session() *flow.Session {
	return a.session
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return a.session.Start()
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.options.SetSize(max(20, msg.Width/2), max(6, msg.Height-16))
		a.story.Width = max(20, msg.Width/2)
		a.story.Height = max(4, msg.Height-20)
		return a, nil

	case spinner.TickMsg:
		if _, ok := a.session.Screen().(flow.Loading); !ok {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			a.session.Close()
			a.logInfo("Quit requested")
			return a, tea.Quit
		}
		return a.handleKey(msg)
	}

	return a, a.afterSession(a.session.Update(msg))
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch screen := a.session.Screen().(type) {
	case flow.QuizStep:
		if key.Matches(msg, a.keys.Choose) {
			item, ok := a.options.SelectedItem().(optionItem)
			if !ok {
				return a, nil
			}
			a.statusMsg = fmt.Sprintf("Picked %s", item)
			return a, a.afterSession(a.session.SubmitAnswerAt(screen.Index, string(item)))
		}
		var cmd tea.Cmd
		a.options, cmd = a.options.Update(msg)
		return a, cmd

	case flow.TourStop:
		switch {
		case key.Matches(msg, a.keys.Prev):
			a.session.Swipe(flow.Left)
		case key.Matches(msg, a.keys.Next):
			a.session.Swipe(flow.Right)
		case key.Matches(msg, a.keys.Jump):
			a.session.NavigateTo(int(msg.Runes[0] - '1'))
		case key.Matches(msg, a.keys.Link):
			a.showLink = !a.showLink
		default:
			var cmd tea.Cmd
			a.story, cmd = a.story.Update(msg)
			return a, cmd
		}
		a.sync()
		return a, nil

	case flow.Failed:
		if key.Matches(msg, a.keys.Retry) {
			a.logInfo("Retrying after error: %s", screen.Message)
			a.resetSession()
			return a, a.session.Start()
		}
	}
	return a, nil
}

// afterSession refreshes widgets after the session may have moved and starts
// the spinner when the loading screen appears.
func (a *App) afterSession(cmd tea.Cmd) tea.Cmd {
	a.sync()
	if _, ok := a.session.Screen().(flow.Loading); ok && !a.spinning {
		a.spinning = true
		return tea.Batch(cmd, a.spinner.Tick)
	}
	return cmd
}

// sync rebuilds the option list and story viewport when the screen changes.
func (a *App) sync() {
	if _, ok := a.session.Screen().(flow.Loading); !ok {
		a.spinning = false
	}
	switch screen := a.session.Screen().(type) {
	case flow.QuizStep:
		if a.optionsFor == screen.Index {
			return
		}
		items := make([]list.Item, len(screen.Question.Options))
		for i, option := range screen.Question.Options {
			items[i] = optionItem(option)
		}
		a.options.SetItems(items)
		a.options.ResetSelected()
		a.optionsFor = screen.Index
	case flow.Loading:
		return
	case flow.TourStop:
		a.optionsFor = -1
		if a.storyFor == screen.Index {
			return
		}
		a.story.SetContent(wrap(screen.Stop.Story, a.story.Width))
		a.story.GotoTop()
		a.storyFor = screen.Index
	default:
		a.optionsFor = -1
	}
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	rightWidth := max(32, width/3)
	leftWidth := width - rightWidth - 4
	if leftWidth < 40 {
		leftWidth = width - 4
		rightWidth = 0
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorAccent).
		MarginBottom(1).
		Render("⬡ WANDERGUIDE")

	leftBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(max(20, leftWidth)).
		Render(a.renderScreen(leftWidth - 4))
	body := leftBox
	if rightWidth > 0 {
		if panel := a.renderJournalPanel(rightWidth - 4); panel != "" {
			body = lipgloss.JoinHorizontal(lipgloss.Top, leftBox, panel)
		}
	}

	footer := lipgloss.NewStyle().
		Foreground(colorMuted).
		MarginTop(1).
		Render(a.footer())
	return strings.Join([]string{header, body, footer}, "\n")
}

func (a *App) renderScreen(width int) string {
	switch screen := a.session.Screen().(type) {
	case flow.Intro:
		return a.renderIntro()
	case flow.Loading:
		return fmt.Sprintf("%s Generating your tour of %s...", a.spinner.View(), tour.DefaultLocation)
	case flow.QuizStep:
		return a.renderQuestion(screen)
	case flow.TourStop:
		return a.renderStop(screen, width)
	case flow.Failed:
		return a.renderFailure(screen)
	}
	return ""
}

func (a *App) renderIntro() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorBlue).Render("Welcome to WanderGuide")
	sub := lipgloss.NewStyle().Foreground(colorText).Render(
		fmt.Sprintf("Answer %d quick questions and we'll plan a walk through %s.", a.session.QuestionCount(), tour.DefaultLocation))
	return lipgloss.JoinVertical(lipgloss.Left, title, "", sub)
}

func (a *App) renderQuestion(step flow.QuizStep) string {
	counter := lipgloss.NewStyle().
		Foreground(colorMuted).
		Render(fmt.Sprintf("Question %d/%d", step.Index+1, a.session.QuestionCount()))
	prompt := lipgloss.NewStyle().Bold(true).Foreground(colorBlue).Render(step.Question.Prompt)
	parts := []string{counter, prompt}
	if cta := strings.TrimSpace(step.Question.CallToAction); cta != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorText).Render(cta))
	}
	parts = append(parts, "", a.options.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderStop(stop flow.TourStop, width int) string {
	total := len(a.session.Itinerary())
	var parts []string
	if name := strings.TrimSpace(stop.Stop.TourSummary); name != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorAccent).Render(name))
	}
	parts = append(parts,
		stopNav(stop.Index, total),
		lipgloss.NewStyle().Bold(true).Foreground(colorBlue).Render(stop.Stop.Title),
		lipgloss.NewStyle().Foreground(colorMuted).Render(stop.Stop.Category),
		"",
		a.story.View(),
	)
	if a.showLink {
		if link, ok := a.session.NavigationURL(); ok {
			parts = append(parts, "", lipgloss.NewStyle().Foreground(colorText).Width(max(20, width)).Render(link))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderFailure(failed flow.Failed) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("Something went wrong")
	msg := lipgloss.NewStyle().Foreground(colorText).Render(failed.Message)
	return lipgloss.JoinVertical(lipgloss.Left, title, "", msg)
}

// stopNav renders "◀ Stop 2/7 ▶", hiding an arrow at either end.
func stopNav(index, total int) string {
	left, right := " ", " "
	if index > 0 {
		left = arrowLeft
	}
	if index < total-1 {
		right = arrowRight
	}
	return fmt.Sprintf("%s Stop %d/%d %s", left, index+1, total, right)
}

func (a *App) renderJournalPanel(width int) string {
	if a.logbook == nil {
		return ""
	}
	lines, total := a.logbook.Tail(journalLines)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorBlue).
		Render(fmt.Sprintf("LOG · %s (%d)", fileName, total))
	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		rendered = append(rendered, renderJournalLine(line))
	}
	body := lipgloss.NewStyle().
		Width(max(20, width)).
		Render(strings.Join(rendered, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}

func renderJournalLine(line string) string {
	entry, ok := logbook.ParseLine(line)
	if !ok {
		return lipgloss.NewStyle().Foreground(colorText).Render(line)
	}
	color := colorText
	switch entry.Level {
	case logbook.LevelWarn:
		color = colorBlue
	case logbook.LevelError:
		color = colorAccent
	}
	return lipgloss.NewStyle().Foreground(color).Render(
		fmt.Sprintf("%s %s", entry.Time.Local().Format("15:04:05"), entry.Message))
}

func (a *App) footer() string {
	help := a.keys.helpFor(a.session.Screen())
	if a.statusMsg == "" {
		return help
	}
	return a.statusMsg + "    " + help
}

// wrap breaks text on spaces so each line fits width.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
