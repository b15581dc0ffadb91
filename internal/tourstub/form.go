package tourstub

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	msgFieldRequired = "field required"
	msgNotInteger    = "value is not a valid integer"
	typeMissing      = "value_error.missing"
	typeInteger      = "type_error.integer"
)

// issue mirrors one entry of the generator's "detail" rejection list.
type issue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type detailResponse struct {
	Detail []issue `json:"detail"`
}

// parseTourForm validates the six form fields in wire order. Every problem is
// reported, not just the first.
func parseTourForm(values url.Values) (tourForm, []issue) {
	var (
		form   tourForm
		issues []issue
	)
	text := func(field string, dst *string) {
		raw, ok := lookup(values, field)
		if !ok {
			issues = append(issues, missing(field))
			return
		}
		*dst = raw
	}
	integer := func(field string, dst *int) {
		raw, ok := lookup(values, field)
		if !ok {
			issues = append(issues, missing(field))
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			issues = append(issues, issue{Loc: []string{"body", field}, Msg: msgNotInteger, Type: typeInteger})
			return
		}
		*dst = n
	}
	text("location", &form.Location)
	text("interests", &form.Interests)
	integer("budget", &form.Budget)
	integer("duration", &form.Duration)
	integer("distance", &form.Distance)
	text("start_time", &form.StartTime)
	return form, issues
}

func lookup(values url.Values, field string) (string, bool) {
	raw, ok := values[field]
	if !ok || len(raw) == 0 {
		return "", false
	}
	return raw[0], true
}

func missing(field string) issue {
	return issue{Loc: []string{"body", field}, Msg: msgFieldRequired, Type: typeMissing}
}

func summarize(issues []issue) string {
	parts := make([]string, 0, len(issues))
	for _, is := range issues {
		parts = append(parts, strings.Join(is.Loc, ".")+": "+is.Msg)
	}
	return strings.Join(parts, "; ")
}
