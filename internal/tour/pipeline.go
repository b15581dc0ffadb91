package tour

import (
	"context"
	"fmt"
)

// Journal receives progress lines from the pipeline. *logbook.Logbook
// satisfies it.
type Journal interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
}

// Pipeline runs build → send → decode → map for one set of answers.
type Pipeline struct {
	sender  Sender
	journal Journal
}

// PipelineOption customizes a Pipeline.
type PipelineOption func(*Pipeline)

// WithJournal records request and outcome details.
func WithJournal(j Journal) PipelineOption {
	return func(p *Pipeline) {
		if j != nil {
			p.journal = j
		}
	}
}

// NewPipeline wires a pipeline to sender.
func NewPipeline(sender Sender, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{sender: sender, journal: nopJournal{}}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Fetch turns answers into an itinerary. A rejection from the service comes
// back as *ValidationRejected and an empty tour as ErrEmptyItinerary.
func (p *Pipeline) Fetch(ctx context.Context, answers []string) ([]Stop, error) {
	if p == nil || p.sender == nil {
		return nil, &TransportError{Message: "no tour service configured"}
	}
	req := BuildRequest(answers)
	p.journal.Info("Request · location=%s interests=%s budget=%d duration=%d distance=%d start_time=%s",
		req.Location, req.Interests, req.Budget, req.Duration, req.Distance, req.StartTime)

	body, err := p.sender.Send(ctx, req)
	if err != nil {
		p.journal.Warn("Request failed: %v", err)
		return nil, err
	}
	resp, err := Decode(body)
	if err != nil {
		p.journal.Warn("Response unreadable (%d bytes): %v", len(body), err)
		return nil, err
	}
	if resp.Rejected() {
		rejected := &ValidationRejected{Issues: resp.Issues}
		p.journal.Warn("Request rejected: %s", rejected.Summary())
		return nil, rejected
	}
	stops := ToStops(*resp.Tour)
	if len(stops) == 0 {
		return nil, fmt.Errorf("tour %q: %w", resp.Tour.Name(), ErrEmptyItinerary)
	}
	p.journal.Info("Tour received · %q with %d stop(s)", resp.Tour.Name(), len(stops))
	return stops, nil
}

type nopJournal struct{}

func (nopJournal) Info(string, ...any) {}
func (nopJournal) Warn(string, ...any) {}
