package tour

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ParsedTour is a successfully decoded itinerary. Only Locations is mandatory.
type ParsedTour struct {
	TourName      *string
	StartTime     *string
	TotalDuration *string
	TotalDistance *string
	Budget        *string
	Locations     []LocationRecord
}

// Name returns the tour name or "" when the service omitted it.
func (p ParsedTour) Name() string {
	if p.TourName == nil {
		return ""
	}
	return *p.TourName
}

// LocationRecord is one raw location from the response.
type LocationRecord struct {
	Name                   string
	Category               string
	Story                  string
	SuggestedVisitDuration string
	Geolocation            Coordinate
}

// ValidationIssue mirrors one entry of the service's "detail" rejection list.
type ValidationIssue struct {
	Path    []string `json:"loc"`
	Message string   `json:"msg"`
	Kind    string   `json:"type"`
}

func (v ValidationIssue) String() string {
	if len(v.Path) == 0 {
		return v.Message
	}
	return fmt.Sprintf("%s (%s)", v.Message, strings.Join(v.Path, "."))
}

// Response holds exactly one of Tour or Issues.
type Response struct {
	Tour   *ParsedTour
	Issues []ValidationIssue
}

// Rejected reports whether the service refused the request.
func (r Response) Rejected() bool {
	return r.Tour == nil && len(r.Issues) > 0
}

type wireEnvelope struct {
	Locations json.RawMessage `json:"locations"`
	Detail    json.RawMessage `json:"detail"`
}

type wireTour struct {
	TourName      *string         `json:"tour_name"`
	StartTime     *string         `json:"start_time"`
	TotalDuration *string         `json:"total_duration"`
	TotalDistance *string         `json:"total_distance"`
	Budget        *string         `json:"budget"`
	Locations     []*wireLocation `json:"locations"`
}

type wireLocation struct {
	LocationName           *string          `json:"location_name"`
	Category               *string          `json:"category"`
	Story                  *string          `json:"story"`
	SuggestedVisitDuration *string          `json:"suggested_visit_duration"`
	Geolocation            *wireGeolocation `json:"geolocation"`
}

type wireGeolocation struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type wireIssue struct {
	Loc  []string `json:"loc"`
	Msg  *string  `json:"msg"`
	Type *string  `json:"type"`
}

// Decode parses a response body. A body carrying "locations" decodes as a
// tour; otherwise a non-empty "detail" list decodes as a rejection. Anything
// else is a *DecodeError and nothing is partially returned.
func Decode(data []byte) (Response, error) {
	var envelope wireEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return Response{}, decodeFailure(err)
	}
	if present(envelope.Locations) {
		parsed, err := decodeTour(data)
		if err != nil {
			return Response{}, err
		}
		return Response{Tour: &parsed}, nil
	}
	if present(envelope.Detail) {
		issues, err := decodeIssues(envelope.Detail)
		if err != nil {
			return Response{}, err
		}
		if len(issues) > 0 {
			return Response{Issues: issues}, nil
		}
	}
	return Response{}, &DecodeError{Message: `missing required key "locations"`}
}

func decodeTour(data []byte) (ParsedTour, error) {
	var wire wireTour
	if err := json.Unmarshal(data, &wire); err != nil {
		return ParsedTour{}, decodeFailure(err)
	}
	parsed := ParsedTour{
		TourName:      wire.TourName,
		StartTime:     wire.StartTime,
		TotalDuration: wire.TotalDuration,
		TotalDistance: wire.TotalDistance,
		Budget:        wire.Budget,
		Locations:     make([]LocationRecord, 0, len(wire.Locations)),
	}
	for idx, loc := range wire.Locations {
		record, err := loc.record()
		if err != nil {
			return ParsedTour{}, &DecodeError{Message: fmt.Sprintf("locations[%d]: %s", idx, err.Error())}
		}
		parsed.Locations = append(parsed.Locations, record)
	}
	return parsed, nil
}

func (w *wireLocation) record() (LocationRecord, error) {
	if w == nil {
		return LocationRecord{}, fmt.Errorf("entry is null")
	}
	required := []struct {
		key   string
		value *string
	}{
		{"location_name", w.LocationName},
		{"category", w.Category},
		{"story", w.Story},
		{"suggested_visit_duration", w.SuggestedVisitDuration},
	}
	for _, field := range required {
		if field.value == nil {
			return LocationRecord{}, fmt.Errorf("missing required key %q", field.key)
		}
	}
	if w.Geolocation == nil {
		return LocationRecord{}, fmt.Errorf(`missing required key "geolocation"`)
	}
	if w.Geolocation.Latitude == nil || w.Geolocation.Longitude == nil {
		return LocationRecord{}, fmt.Errorf("geolocation requires latitude and longitude")
	}
	return LocationRecord{
		Name:                   *w.LocationName,
		Category:               *w.Category,
		Story:                  *w.Story,
		SuggestedVisitDuration: *w.SuggestedVisitDuration,
		Geolocation: Coordinate{
			Latitude:  *w.Geolocation.Latitude,
			Longitude: *w.Geolocation.Longitude,
		},
	}, nil
}

func decodeIssues(raw json.RawMessage) ([]ValidationIssue, error) {
	var wire []*wireIssue
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, decodeFailure(err)
	}
	issues := make([]ValidationIssue, 0, len(wire))
	for idx, item := range wire {
		if item == nil || item.Loc == nil || item.Msg == nil || item.Type == nil {
			return nil, &DecodeError{Message: fmt.Sprintf("detail[%d]: loc, msg and type are required", idx)}
		}
		issues = append(issues, ValidationIssue{Path: item.Loc, Message: *item.Msg, Kind: *item.Type})
	}
	return issues, nil
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func decodeFailure(err error) *DecodeError {
	return &DecodeError{Message: err.Error(), Err: err}
}
