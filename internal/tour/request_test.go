package tour

import "testing"

func TestBuildRequestFallbacks(t *testing.T) {
	cases := []struct {
		name    string
		answers []string
		want    Request
	}{
		{
			name:    "unparseable distance degrades to zero",
			answers: []string{"History", "None", "3 hours", "not-a-number", "$25", "no"},
			want:    Request{Interests: "history", Duration: 3, Distance: 0, Budget: 25},
		},
		{
			name:    "no limit budget",
			answers: []string{"History", "None", "3 hours", "2 miles", "$bogus", "no limit"},
			want:    Request{Interests: "history", Duration: 3, Distance: 2, Budget: UnlimitedBudget},
		},
		{
			name:    "unparseable budget without no limit",
			answers: []string{"History", "None", "3 hours", "2 miles", "$bogus", "No Limit"},
			want:    Request{Interests: "history", Duration: 3, Distance: 2, Budget: 0},
		},
		{
			name:    "secondary interest appended lowercased",
			answers: []string{"Art", "Food", "2 hours", "1 mile", "$10", "no"},
			want:    Request{Interests: "art, food", Duration: 2, Distance: 1, Budget: 10},
		},
		{
			name:    "none sentinel is case sensitive",
			answers: []string{"Art", "none", "1 Hour", "1 MILE", "10", "no"},
			want:    Request{Interests: "art, none", Duration: 1, Distance: 1, Budget: 10},
		},
		{
			name:    "fractional distance is not a number",
			answers: []string{"Nature", "None", "8 hours", "1/2 mile", "No Money", "no"},
			want:    Request{Interests: "nature", Duration: 8, Distance: 0, Budget: 0},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildRequest(tc.answers)
			tc.want.Location = DefaultLocation
			tc.want.StartTime = DefaultStartTime
			if got != tc.want {
				t.Fatalf("BuildRequest(%q) = %+v, want %+v", tc.answers, got, tc.want)
			}
		})
	}
}

func TestBuildRequestToleratesShortAnswers(t *testing.T) {
	got := BuildRequest([]string{"Food"})
	if got.Interests != "food" || got.Budget != 0 || got.Duration != 0 {
		t.Fatalf("unexpected request for short answers: %+v", got)
	}
}

func TestRequestEncodeIsNotEscaped(t *testing.T) {
	req := BuildRequest([]string{"Art", "Food", "2 hours", "1 mile", "$10", "no"})
	want := "location=Charleston, SC&interests=art, food&budget=10&duration=2&distance=1&start_time=morning"
	if got := req.Encode(); got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}
