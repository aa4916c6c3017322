package geo

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePoint parses "lat,lon" into a Point and validates its range.
func ParsePoint(s string) (Point, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return Point{}, fmt.Errorf("point %q must be formatted as lat,lon", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Point{}, fmt.Errorf("parsing latitude %q: %w", latStr, err)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return Point{}, fmt.Errorf("parsing longitude %q: %w", lonStr, err)
	}

	p := Point{Lat: lat, Lon: lon}
	if !p.Valid() {
		return Point{}, fmt.Errorf("point %q is out of range", s)
	}

	return p, nil
}
