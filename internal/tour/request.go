// internal/tour/request.go
//
// Turns the six quiz answers into the request sent to the tour generator.
// Parsing is deliberately forgiving: anything that does not look like a
// number degrades to a fallback integer instead of failing.

package tour

import (
	"strconv"
	"strings"
)

const (
	// DefaultLocation is the only city this deployment generates tours for.
	DefaultLocation = "Charleston, SC"
	// DefaultStartTime is the only time of day requested.
	DefaultStartTime = "morning"

	// NoSecondaryInterest is the answer that skips the second interest.
	NoSecondaryInterest = "None"
	// UnlimitedBudgetAnswer selects UnlimitedBudget when the budget answer is not a number.
	UnlimitedBudgetAnswer = "no limit"
	// UnlimitedBudget is the budget sent for UnlimitedBudgetAnswer.
	UnlimitedBudget = 1000
)

// Answer positions expected by BuildRequest.
const (
	answerPrimaryInterest = iota
	answerSecondaryInterest
	answerDuration
	answerDistance
	answerBudget
	answerBudgetFallback
)

// Request is the payload the tour generator expects.
type Request struct {
	Location  string
	Interests string
	Budget    int
	Duration  int
	Distance  int
	StartTime string
}

// BuildRequest maps ordered quiz answers onto a Request. Missing answers are
// treated as empty strings.
func BuildRequest(answers []string) Request {
	at := func(i int) string {
		if i < len(answers) {
			return answers[i]
		}
		return ""
	}

	interests := strings.ToLower(at(answerPrimaryInterest))
	if len(answers) > answerSecondaryInterest && at(answerSecondaryInterest) != NoSecondaryInterest {
		interests += ", " + strings.ToLower(at(answerSecondaryInterest))
	}

	budget, ok := atoi(strings.TrimPrefix(at(answerBudget), "$"))
	if !ok {
		budget = 0
		if at(answerBudgetFallback) == UnlimitedBudgetAnswer {
			budget = UnlimitedBudget
		}
	}

	duration, _ := atoi(trimUnit(at(answerDuration), " hours", " hour"))
	distance, _ := atoi(trimUnit(at(answerDistance), " miles", " mile"))

	return Request{
		Location:  DefaultLocation,
		Interests: interests,
		Budget:    budget,
		Duration:  duration,
		Distance:  distance,
		StartTime: DefaultStartTime,
	}
}

// Encode renders the form body. Values are written verbatim, without
// percent-encoding, so a value containing '&' or '=' corrupts the body.
func (r Request) Encode() string {
	pairs := []string{
		"location=" + r.Location,
		"interests=" + r.Interests,
		"budget=" + strconv.Itoa(r.Budget),
		"duration=" + strconv.Itoa(r.Duration),
		"distance=" + strconv.Itoa(r.Distance),
		"start_time=" + r.StartTime,
	}
	return strings.Join(pairs, "&")
}

// trimUnit lowercases value and strips the first matching suffix. Longer
// suffixes must come first.
func trimUnit(value string, suffixes ...string) string {
	lower := strings.ToLower(value)
	for _, suffix := range suffixes {
		if strings.HasSuffix(lower, suffix) {
			return lower[:len(lower)-len(suffix)]
		}
	}
	return lower
}

func atoi(value string) (int, bool) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}
