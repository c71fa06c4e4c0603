// Package station holds the radio station directory and its loader.
package station

import (
	"errors"
	"fmt"
)

// Validation errors for station records.
var (
	ErrMissingStream  = errors.New("station has no stream URL")
	ErrLatitudeRange  = errors.New("latitude out of range [-90, 90]")
	ErrLongitudeRange = errors.New("longitude out of range [-180, 180]")
)

// Record is an immutable station entry. The stream URL doubles as the unique
// key used for favorites and history membership. Markers, history and
// favorites reference records by value and never mutate them.
type Record struct {
	StreamURL string  `json:"stream_url"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"`
	Homepage  string  `json:"homepage,omitempty"`
}

// Key returns the unique station key.
func (r Record) Key() string {
	return r.StreamURL
}

// CoordKey returns the coordinate grouping key. Multiple stations may share
// a coordinate; they still get individual markers.
func (r Record) CoordKey() string {
	return fmt.Sprintf("%.6f,%.6f", r.Latitude, r.Longitude)
}

// Location returns a short human-readable place string.
func (r Record) Location() string {
	switch {
	case r.City != "" && r.Country != "":
		return r.City + ", " + r.Country
	case r.Country != "":
		return r.Country
	default:
		return r.City
	}
}

// Validate checks that the record can be placed on the globe and played.
func (r Record) Validate() error {
	if r.StreamURL == "" {
		return ErrMissingStream
	}
	if r.Latitude < -90 || r.Latitude > 90 {
		return fmt.Errorf("%w: %v", ErrLatitudeRange, r.Latitude)
	}
	if r.Longitude < -180 || r.Longitude > 180 {
		return fmt.Errorf("%w: %v", ErrLongitudeRange, r.Longitude)
	}
	return nil
}
