package tourstub

import (
	"fmt"
	"strings"
)

// Place is one canned stop served by the stub.
type Place struct {
	Name          string
	Category      string
	Story         string
	VisitDuration string
	Latitude      float64
	Longitude     float64
}

// CharlestonPlaces is the sample walk served when no itinerary is injected.
func CharlestonPlaces() []Place {
	return []Place{
		{
			Name:          "Charleston City Market",
			Category:      "Historic Market",
			Story:         "The Charleston City Market is a historic market complex that dates back to the 1790s. It originally consisted of a Meat Market, Beef Market, and a Fish Market. Its architectural design showcases an interesting mix of Greek Revival and Roman architectural styles. The four block-long sheds, with their open sides and towering columns, have been the commercial hub of the city for centuries.",
			VisitDuration: "45 minutes",
			Latitude:      32.7811,
			Longitude:     -79.9297,
		},
		{
			Name:          "Carriage Tour",
			Category:      "Guided Tour",
			Story:         "While the carriage tour is more of an experience than a place, it's your window into the architectural history of Charleston. The guide will provide detailed information about a variety of architectural styles seen in the city, from the grand mansions in the South of Broad district to the quaint and colorful houses of Rainbow Row.",
			VisitDuration: "1 hour",
			Latitude:      32.7795,
			Longitude:     -79.9364,
		},
		{
			Name:          "Rainbow Row",
			Category:      "Historic Houses",
			Story:         "Rainbow Row is a series of thirteen brightly colored, Georgian-style row houses. They date back to 1740 and represent the longest cluster of Georgian row houses in the United States. After being restored in the early 20th century, the owners painted the houses in pastel colors, leading to the name 'Rainbow Row'.",
			VisitDuration: "20 minutes",
			Latitude:      32.7715,
			Longitude:     -79.9282,
		},
		{
			Name:          "Waterfront Park",
			Category:      "Park",
			Story:         "Waterfront Park is a testament to modern landscape architecture. Opened in 1990, the park was built on reclaimed land that was once marshes and docks. The Pineapple Fountain, a centerpiece of the park, embodies the city's Southern hospitality. The architecture of the park is designed to seamlessly integrate with the historic landscape of the city.",
			VisitDuration: "30 minutes",
			Latitude:      32.7715,
			Longitude:     -79.9236,
		},
		{
			Name:          "Husk Restaurant",
			Category:      "Restaurant",
			Story:         "Housed in a late 19th-century Victorian mansion, Husk is a visual and culinary delight. The building is beautifully restored, featuring intricate woodworking and period-specific architectural details throughout. The restaurant adeptly combines the old-world charm of its architectural surroundings with a modern, southern-inspired menu.",
			VisitDuration: "1 hour 30 minutes",
			Latitude:      32.7680,
			Longitude:     -79.9307,
		},
		{
			Name:          "Nathaniel Russell House Museum",
			Category:      "Historic House Museum",
			Story:         "The Nathaniel Russell House, built in 1808, is considered one of the finest examples of neoclassical architecture in the United States. It is well-known for its magnificent free-flying staircase that ascends three stories, its gracefully proportioned rooms, and elaborate decorative plasterwork. The house stands as a testament to the wealthy merchant class of Charleston's past.",
			VisitDuration: "45 minutes",
			Latitude:      32.7695,
			Longitude:     -79.9307,
		},
		{
			Name:          "Kaminsky's Dessert Cafe",
			Category:      "Cafe",
			Story:         "Kaminsky's occupies a charming, rustic building in the bustling Deco District. While it may not be as historically significant as some other buildings, its cozy and warm interiors, along with a vintage-inspired decor, provide a comforting environment that complements its deliciously sweet offerings.",
			VisitDuration: "30 minutes",
			Latitude:      32.7908,
			Longitude:     -79.9367,
		},
	}
}

// tourForm is a validated tour request.
type tourForm struct {
	Location  string
	Interests string
	Budget    int
	Duration  int
	Distance  int
	StartTime string
}

type tourResponse struct {
	TourName      string          `json:"tour_name"`
	StartTime     string          `json:"start_time"`
	TotalDuration string          `json:"total_duration"`
	TotalDistance string          `json:"total_distance"`
	Budget        string          `json:"budget"`
	Locations     []placeResponse `json:"locations"`
}

type placeResponse struct {
	LocationName           string      `json:"location_name"`
	Category               string      `json:"category"`
	Story                  string      `json:"story"`
	SuggestedVisitDuration string      `json:"suggested_visit_duration"`
	Geolocation            geolocation `json:"geolocation"`
}

type geolocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func buildTour(form tourForm, places []Place) tourResponse {
	resp := tourResponse{
		TourName:      tourName(form),
		StartTime:     form.StartTime,
		TotalDuration: plural(form.Duration, "hour"),
		TotalDistance: plural(form.Distance, "mile"),
		Budget:        fmt.Sprintf("$%d", form.Budget),
		Locations:     make([]placeResponse, 0, len(places)),
	}
	for _, p := range places {
		resp.Locations = append(resp.Locations, placeResponse{
			LocationName:           p.Name,
			Category:               p.Category,
			Story:                  p.Story,
			SuggestedVisitDuration: p.VisitDuration,
			Geolocation:            geolocation{Latitude: p.Latitude, Longitude: p.Longitude},
		})
	}
	return resp
}

func tourName(form tourForm) string {
	interests := strings.TrimSpace(form.Interests)
	if interests == "" {
		return "Your walk through " + form.Location
	}
	return fmt.Sprintf("Your %s walk through %s", strings.ReplaceAll(interests, ", ", " and "), form.Location)
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
