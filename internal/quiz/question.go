// internal/quiz/question.go
//
// Questions are the unit of the onboarding quiz. A bank holds the immutable
// template; each session works on its own copy (see Sheet) so that option
// filtering never leaks between sessions.

package quiz

import "strings"

// Question is a single multiple-choice prompt shown to the traveller.
type Question struct {
	Prompt       string   `yaml:"prompt"`
	CallToAction string   `yaml:"call_to_action"`
	Options      []string `yaml:"options"`
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	clone := Question{Prompt: q.Prompt, CallToAction: q.CallToAction}
	if len(q.Options) > 0 {
		clone.Options = make([]string, len(q.Options))
		copy(clone.Options, q.Options)
	}
	return clone
}

// Without returns a copy of the question with the first option textually equal
// to value removed. Remaining options keep their order.
func (q Question) Without(value string) Question {
	clone := q.Clone()
	for i, option := range clone.Options {
		if option == value {
			clone.Options = append(clone.Options[:i], clone.Options[i+1:]...)
			break
		}
	}
	return clone
}

// HasOption reports whether value is one of the question's options.
func (q Question) HasOption(value string) bool {
	for _, option := range q.Options {
		if option == value {
			return true
		}
	}
	return false
}

func (q *Question) normalize() {
	q.Prompt = strings.TrimSpace(q.Prompt)
	q.CallToAction = strings.TrimSpace(q.CallToAction)
	options := q.Options[:0]
	for _, option := range q.Options {
		if trimmed := strings.TrimSpace(option); trimmed != "" {
			options = append(options, trimmed)
		}
	}
	q.Options = options
}
