package tourstub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kingrea/wanderguide/internal/config"
	"github.com/kingrea/wanderguide/internal/tour"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestSettingsFromConfigHonorsEnv(t *testing.T) {
	t.Setenv(config.EnvStubPort, "9001")
	t.Setenv(config.EnvStubHost, "0.0.0.0")
	cfg, err := config.NewConfig(t.TempDir())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	settings := SettingsFromConfig(cfg)
	if settings.Port != 9001 {
		t.Fatalf("expected port 9001, got %d", settings.Port)
	}
	if settings.Host != "0.0.0.0" {
		t.Fatalf("expected host override, got %s", settings.Host)
	}
	if settings.TourURL() != "http://0.0.0.0:9001/tour/" {
		t.Fatalf("unexpected tour url %s", settings.TourURL())
	}
}

func TestSettingsFromNilConfigUsesDefaults(t *testing.T) {
	settings := SettingsFromConfig(nil)
	if settings.Host != DefaultHost || settings.Port != DefaultPort {
		t.Fatalf("unexpected defaults %s:%d", settings.Host, settings.Port)
	}
	if settings.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Fatalf("expected default body limit, got %d", settings.MaxBodyBytes)
	}
}

func TestTourEndpointServesCannedItinerary(t *testing.T) {
	stub := NewServer(Settings{})
	ts := httptest.NewServer(stub.Handler())
	defer ts.Close()

	client := tour.NewClient(ts.URL + TourPath)
	body, err := client.Send(context.Background(), tour.BuildRequest([]string{"Art", "Food", "2 hours", "1 mile", "$10", "no"}))
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	resp, err := tour.Decode(body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Rejected() {
		t.Fatalf("unexpected rejection: %v", resp.Issues)
	}
	stops := tour.ToStops(*resp.Tour)
	if len(stops) != 7 {
		t.Fatalf("expected 7 stops, got %d", len(stops))
	}
	if stops[0].Title != "Charleston City Market" || stops[6].Title != "Kaminsky's Dessert Cafe" {
		t.Fatalf("unexpected stop order: %q ... %q", stops[0].Title, stops[6].Title)
	}
	if stops[0].TourSummary != "Your art and food walk through Charleston, SC" {
		t.Fatalf("unexpected tour name %q", stops[0].TourSummary)
	}
	if c := stops[4].Coordinates; c == nil || c.Latitude != 32.768 || c.Longitude != -79.9307 {
		t.Fatalf("unexpected coordinates %+v", stops[4].Coordinates)
	}
	if stub.Served() != 1 || stub.Rejected() != 0 {
		t.Fatalf("counters served=%d rejected=%d", stub.Served(), stub.Rejected())
	}
}

func TestTourEndpointRejectsBadForms(t *testing.T) {
	stub := NewServer(Settings{})
	ts := httptest.NewServer(stub.Handler())
	defer ts.Close()

	cases := map[string]struct {
		body     string
		wantType string
		wantMsg  string
		wantLoc  string
	}{
		"non integer budget": {
			body:     "location=Charleston, SC&interests=art&budget=$10&duration=2&distance=1&start_time=morning",
			wantType: "type_error.integer",
			wantMsg:  "value is not a valid integer",
			wantLoc:  "budget",
		},
		"missing distance": {
			body:     "location=Charleston, SC&interests=art&budget=10&duration=2&start_time=morning",
			wantType: "value_error.missing",
			wantMsg:  "field required",
			wantLoc:  "distance",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/tour", "application/x-www-form-urlencoded", strings.NewReader(tc.body))
			if err != nil {
				t.Fatalf("post: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", resp.StatusCode)
			}
			var payload detailResponse
			if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
				t.Fatalf("decode detail: %v", err)
			}
			if len(payload.Detail) != 1 {
				t.Fatalf("expected one issue, got %+v", payload.Detail)
			}
			got := payload.Detail[0]
			if got.Type != tc.wantType || got.Msg != tc.wantMsg || got.Loc[len(got.Loc)-1] != tc.wantLoc {
				t.Fatalf("unexpected issue %+v", got)
			}
		})
	}
	if stub.Rejected() != 2 {
		t.Fatalf("rejected counter = %d, want 2", stub.Rejected())
	}
}

func TestRejectionDecodesIntoValidationRejected(t *testing.T) {
	stub := NewServer(Settings{})
	ts := httptest.NewServer(stub.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+TourPath, "application/x-www-form-urlencoded", strings.NewReader("location=x&interests=y"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatal(err)
	}
	decoded, err := tour.Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !decoded.Rejected() || len(decoded.Issues) != 4 {
		t.Fatalf("expected four issues, got %+v", decoded.Issues)
	}
	rejected := &tour.ValidationRejected{Issues: decoded.Issues}
	if !strings.Contains(tour.Describe(rejected), "field required (body.budget)") {
		t.Fatalf("unexpected description %q", tour.Describe(rejected))
	}
}

func TestTraceIDIsEchoedOrGenerated(t *testing.T) {
	stub := NewServer(Settings{})
	ts := httptest.NewServer(stub.Handler())
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	req.Header.Set(TraceHeader, "trace-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(TraceHeader); got != "trace-123" {
		t.Fatalf("expected echoed trace id, got %q", got)
	}

	resp, err = http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(TraceHeader); len(got) != 36 {
		t.Fatalf("expected generated uuid trace id, got %q", got)
	}
}

func TestLatencyTriggersClientTimeout(t *testing.T) {
	stub := NewServer(Settings{}, WithLatency(time.Second))
	ts := httptest.NewServer(stub.Handler())
	defer ts.Close()

	client := tour.NewClient(ts.URL+TourPath, tour.WithTimeout(50*time.Millisecond))
	_, err := client.Send(context.Background(), tour.BuildRequest(nil))
	var transport *tour.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestServerLifecycle(t *testing.T) {
	t.Parallel()
	fixed := time.Unix(1730000000, 0).UTC()
	logger := &recordingLogger{}
	srv := NewServer(Settings{Host: "127.0.0.1", Port: 0},
		WithClock(func() time.Time { return fixed }),
		WithLogger(logger),
		WithPlaces([]Place{{Name: "Only", Latitude: 1, Longitude: 2}}))
	t.Cleanup(func() {
		_ = srv.Shutdown(context.Background())
	})
	if srv.Status() != StatusStarting {
		t.Fatalf("expected starting status, got %s", srv.Status())
	}
	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("start server: %v", err)
	}
	if err := srv.Start(context.Background()); err == nil {
		t.Fatalf("expected second start to fail")
	}
	resp, err := http.Get(srv.BaseURL() + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	resp.Body.Close()
	if health.Status != string(StatusReady) || health.Version != ProtocolVersion {
		t.Fatalf("unexpected health %+v", health)
	}

	body, err := tour.NewClient(srv.TourURL()).Send(context.Background(), tour.BuildRequest(nil))
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	decoded, err := tour.Decode(body)
	if err != nil || decoded.Tour == nil || len(decoded.Tour.Locations) != 1 {
		t.Fatalf("unexpected decode %+v (%v)", decoded, err)
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if srv.Addr() != "" {
		t.Fatalf("expected no address after shutdown")
	}
	if srv.Status() != StatusDraining {
		t.Fatalf("expected draining status, got %s", srv.Status())
	}
	if !logger.contains("tourstub: listening on") || !logger.contains("POST") {
		t.Fatalf("expected lifecycle and request lines, got %v", logger.lines())
	}
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (r *recordingLogger) Printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, fmt.Sprintf(format, args...))
}

func (r *recordingLogger) lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.entries...)
}

func (r *recordingLogger) contains(fragment string) bool {
	for _, line := range r.lines() {
		if strings.Contains(line, fragment) {
			return true
		}
	}
	return false
}
