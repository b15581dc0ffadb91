package tour

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Stop is one point of interest in an itinerary.
type Stop struct {
	Title       string
	Category    string
	TourSummary string
	Story       string
	Coordinates *Coordinate
}

// ToStops maps decoded locations onto stops in the order received. Every stop
// carries the tour-level name as its summary.
func ToStops(parsed ParsedTour) []Stop {
	summary := parsed.Name()
	stops := make([]Stop, 0, len(parsed.Locations))
	for _, loc := range parsed.Locations {
		coords := loc.Geolocation
		stops = append(stops, Stop{
			Title:       loc.Name,
			Category:    loc.Category,
			TourSummary: summary,
			Story:       loc.Story,
			Coordinates: &coords,
		})
	}
	return stops
}

// Coordinates lists the coordinates of stops that have them, in order.
func Coordinates(stops []Stop) []Coordinate {
	out := make([]Coordinate, 0, len(stops))
	for _, stop := range stops {
		if stop.Coordinates != nil {
			out = append(out, *stop.Coordinates)
		}
	}
	return out
}
