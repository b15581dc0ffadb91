package quiz

// Sheet is one session's working copy of a bank: the questions still to be
// shown (with options filtered as answers arrive) plus the answers so far.
type Sheet struct {
	questions []Question
	answers   *AnswerSet
}

// NewSheet copies bank so later filtering never touches the template.
func NewSheet(bank Bank) *Sheet {
	clone := bank.Clone()
	return &Sheet{
		questions: clone.Questions,
		answers:   NewAnswerSet(len(clone.Questions)),
	}
}

// Len returns the number of questions on the sheet.
func (s *Sheet) Len() int {
	return len(s.questions)
}

// Question returns a copy of the question at index.
func (s *Sheet) Question(index int) (Question, bool) {
	if index < 0 || index >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[index].Clone(), true
}

// Answers exposes the answer collector.
func (s *Sheet) Answers() *AnswerSet {
	return s.answers
}

// Exclude removes value from every question after index.
func (s *Sheet) Exclude(index int, value string) {
	for i := index + 1; i < len(s.questions); i++ {
		s.questions[i] = s.questions[i].Without(value)
	}
}
