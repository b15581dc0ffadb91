package flow

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduler turns a delayed transition into a command. The command must
// deliver msg after d, or nothing at all once ctx is done.
type Scheduler interface {
	After(ctx context.Context, d time.Duration, msg tea.Msg) tea.Cmd
}

// TimerScheduler waits on a real timer.
type TimerScheduler struct{}

// After implements Scheduler.
func (TimerScheduler) After(ctx context.Context, d time.Duration, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			return msg
		}
	}
}

// ImmediateScheduler skips the delay. Tests use it to step through a session
// deterministically.
type ImmediateScheduler struct{}

// After implements Scheduler.
func (ImmediateScheduler) After(ctx context.Context, _ time.Duration, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		if ctx.Err() != nil {
			return nil
		}
		return msg
	}
}
