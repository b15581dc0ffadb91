package tour

import (
	"strconv"
	"strings"
)

// NavigationURL builds a Google Maps directions link starting at coords[start].
// The stops after start are listed first and the start stop is appended last.
func NavigationURL(coords []Coordinate, start int) (string, bool) {
	if start < 0 || start >= len(coords) {
		return "", false
	}
	var b strings.Builder
	b.WriteString("comgooglemaps://?saddr=&daddr=")
	for _, c := range coords[start+1:] {
		b.WriteString(formatCoordinate(c))
		b.WriteString("+to:")
	}
	b.WriteString(formatCoordinate(coords[start]))
	return b.String(), true
}

func formatCoordinate(c Coordinate) string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}
