package quiz

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when an answer index falls outside the question count.
var ErrOutOfRange = errors.New("quiz: answer index out of range")

// AnswerSet collects one answer per question slot. Its length is fixed at
// creation and slots start empty.
//
// Record does not refuse a second write to the same slot; callers that need
// write-once semantics enforce it themselves.
type AnswerSet struct {
	values []string
}

// NewAnswerSet allocates count empty slots.
func NewAnswerSet(count int) *AnswerSet {
	if count < 0 {
		count = 0
	}
	return &AnswerSet{values: make([]string, count)}
}

// Len returns the number of slots.
func (a *AnswerSet) Len() int {
	if a == nil {
		return 0
	}
	return len(a.values)
}

// Record writes value into slot index.
func (a *AnswerSet) Record(index int, value string) error {
	if a == nil || index < 0 || index >= len(a.values) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, index, a.Len())
	}
	a.values[index] = value
	return nil
}

// At returns the answer at index, or "" when the slot is empty or out of range.
func (a *AnswerSet) At(index int) string {
	if a == nil || index < 0 || index >= len(a.values) {
		return ""
	}
	return a.values[index]
}

// AllAnswered reports whether every slot holds a non-empty answer.
func (a *AnswerSet) AllAnswered() bool {
	if a == nil {
		return false
	}
	for _, value := range a.values {
		if value == "" {
			return false
		}
	}
	return true
}

// Values returns a copy of the answers in question order.
func (a *AnswerSet) Values() []string {
	if a == nil {
		return nil
	}
	out := make([]string, len(a.values))
	copy(out, a.values)
	return out
}
