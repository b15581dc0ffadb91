package quiz

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestAnswerSetRecordBounds(t *testing.T) {
	answers := NewAnswerSet(3)
	for _, idx := range []int{-1, 3, 10} {
		if err := answers.Record(idx, "x"); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("Record(%d) err = %v, want ErrOutOfRange", idx, err)
		}
	}
	if err := answers.Record(0, "History"); err != nil {
		t.Fatalf("Record(0): %v", err)
	}
	if answers.AllAnswered() {
		t.Fatalf("expected unanswered slots to remain")
	}
	_ = answers.Record(1, "None")
	_ = answers.Record(2, "1 hour")
	if !answers.AllAnswered() {
		t.Fatalf("expected all slots answered, got %v", answers.Values())
	}
}

func TestAnswerSetAllowsOverwrite(t *testing.T) {
	answers := NewAnswerSet(1)
	_ = answers.Record(0, "Art")
	if err := answers.Record(0, "Food"); err != nil {
		t.Fatalf("overwrite rejected: %v", err)
	}
	if got := answers.At(0); got != "Food" {
		t.Fatalf("At(0) = %q, want Food", got)
	}
}

func TestQuestionWithoutRemovesSingleMatchInOrder(t *testing.T) {
	q := Question{Prompt: "p", Options: []string{"A", "B", "A", "C"}}
	got := q.Without("A")
	if want := []string{"B", "A", "C"}; !reflect.DeepEqual(got.Options, want) {
		t.Fatalf("Without(A) = %v, want %v", got.Options, want)
	}
	if want := []string{"A", "B", "A", "C"}; !reflect.DeepEqual(q.Options, want) {
		t.Fatalf("original mutated: %v", q.Options)
	}
	if got := q.Without("Z"); !reflect.DeepEqual(got.Options, q.Options) {
		t.Fatalf("Without(missing) changed options: %v", got.Options)
	}
}

func TestSheetExcludeLeavesBankUntouched(t *testing.T) {
	bank := DefaultBank()
	sheet := NewSheet(bank)
	sheet.Exclude(0, "Art")
	next, ok := sheet.Question(1)
	if !ok {
		t.Fatalf("question 1 missing")
	}
	if next.HasOption("Art") {
		t.Fatalf("Art should be filtered from the next question: %v", next.Options)
	}
	if !bank.Questions[1].HasOption("Art") {
		t.Fatalf("bank template must not be mutated")
	}
	fresh := NewSheet(bank)
	if q, _ := fresh.Question(1); !q.HasOption("Art") {
		t.Fatalf("a new sheet must start from the unfiltered template")
	}
}

func TestDefaultBankIsValid(t *testing.T) {
	if err := DefaultBank().Validate(); err != nil {
		t.Fatalf("default bank invalid: %v", err)
	}
}

func TestParseBankYAML(t *testing.T) {
	payload := `
name: savannah
questions:
  - prompt: "Focus?"
    call_to_action: Choose one
    options: [History, Art]
  - prompt: "Extra?"
    options: [None, Art]
  - prompt: "How long?"
    options: ["1 hour"]
  - prompt: "How far?"
    options: ["1 mile"]
  - prompt: "Preference?"
    options: ["1 mile", "  "]
  - prompt: "Budget?"
    options: ["$10", "no limit"]
`
	bank, err := ParseBankYAML([]byte(payload))
	if err != nil {
		t.Fatalf("parse bank: %v", err)
	}
	if bank.Name != "savannah" || bank.Len() != TourQuestionCount {
		t.Fatalf("unexpected bank: %+v", bank)
	}
	if got := bank.Questions[4].Options; len(got) != 1 {
		t.Fatalf("blank options should be dropped, got %v", got)
	}
}

func TestParseBankYAMLRejectsShortBank(t *testing.T) {
	_, err := ParseBankYAML([]byte("questions:\n  - prompt: one\n    options: [a]\n"))
	if err == nil || !strings.Contains(err.Error(), "want 6") {
		t.Fatalf("expected question count error, got %v", err)
	}
}

func TestLoadBankFile(t *testing.T) {
	bank, err := LoadBankFile("")
	if err != nil || bank.Name != DefaultBank().Name {
		t.Fatalf("empty path should yield default bank, got %+v err=%v", bank, err)
	}
	path := filepath.Join(t.TempDir(), "bank.yaml")
	if err := os.WriteFile(path, []byte("questions: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBankFile(path); err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error naming %s, got %v", path, err)
	}
}
