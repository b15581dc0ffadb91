package quiz

import "fmt"

// TourQuestionCount is the number of answers the tour request builder expects.
const TourQuestionCount = 6

// Bank is an ordered, immutable set of questions that seeds every session.
type Bank struct {
	Name      string     `yaml:"name"`
	Questions []Question `yaml:"questions"`
}

// DefaultBank returns the built-in Charleston walking tour questionnaire.
func DefaultBank() Bank {
	distances := []string{"1/2 mile", "1 mile", "2 miles", "3 miles", "5 miles", "8 miles"}
	return Bank{
		Name: "charleston-walk",
		Questions: []Question{
			{
				Prompt:       "What's the focus you'd like for your walk?",
				CallToAction: "Choose one",
				Options:      []string{"History", "Architecture", "Art", "Food", "Nature", "Culture"},
			},
			{
				Prompt:       "Want an extra touch to your experience?",
				CallToAction: "Choose one",
				Options:      []string{"None", "History", "Architecture", "Art", "Food", "Nature", "Culture"},
			},
			{
				Prompt:       "How long would you like to walk?",
				CallToAction: "Pick a duration",
				Options:      []string{"1 hour", "2 hours", "3 hours", "5 hours", "8 hours"},
			},
			{
				Prompt:       "How far do you feel like walking?",
				CallToAction: "Choose a distance",
				Options:      append([]string(nil), distances...),
			},
			{
				Prompt:       "What's your walking distance preference?",
				CallToAction: "Choose one",
				Options:      append([]string(nil), distances...),
			},
			{
				Prompt:       "How much moolah are you willing to spend on activities?",
				CallToAction: "Choose one",
				Options:      []string{"No Money", "$10", "$25", "$50", "$100", "No Limit"},
			},
		},
	}
}

// Len returns the number of questions in the bank.
func (b Bank) Len() int {
	return len(b.Questions)
}

// Clone returns a deep copy of the bank.
func (b Bank) Clone() Bank {
	clone := Bank{Name: b.Name}
	if len(b.Questions) > 0 {
		clone.Questions = make([]Question, len(b.Questions))
		for i, q := range b.Questions {
			clone.Questions[i] = q.Clone()
		}
	}
	return clone
}

// Validate ensures the bank can drive a full tour questionnaire.
func (b Bank) Validate() error {
	if len(b.Questions) != TourQuestionCount {
		return fmt.Errorf("quiz: bank %q has %d questions, want %d", b.Name, len(b.Questions), TourQuestionCount)
	}
	for idx, q := range b.Questions {
		if q.Prompt == "" {
			return fmt.Errorf("quiz: question[%d]: prompt is required", idx)
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("quiz: question[%d]: at least one option is required", idx)
		}
		seen := make(map[string]struct{}, len(q.Options))
		for _, option := range q.Options {
			if _, dup := seen[option]; dup {
				return fmt.Errorf("quiz: question[%d]: duplicate option %q", idx, option)
			}
			seen[option] = struct{}{}
		}
	}
	return nil
}

// Normalized trims whitespace, drops blank options and validates the result.
func (b Bank) Normalized() (Bank, error) {
	clone := b.Clone()
	for i := range clone.Questions {
		clone.Questions[i].normalize()
	}
	if clone.Name == "" {
		clone.Name = "custom"
	}
	if err := clone.Validate(); err != nil {
		return Bank{}, err
	}
	return clone, nil
}
