// File: internal/user/location.go
package user

import (
	"fmt"
	"math"
	"strconv"

	"nopea_backend/internal/common"
)

// Finland's bounding box, inclusive on both ends.
const (
	MinLatitude  = 59.0
	MaxLatitude  = 70.0
	MinLongitude = 19.0
	MaxLongitude = 32.0
)

const earthRadiusKm = 6371.0

// Location is a coordinate pair inside Finland's bounding box.
type Location struct {
	latitude  float64
	longitude float64
}

// NewLocation validates the coordinates against Finland's bounding box and
// returns the value object, or an INVALID_ARGUMENT error naming the violated
// bound.
func NewLocation(latitude, longitude float64) (Location, error) {
	if latitude < MinLatitude || latitude > MaxLatitude {
		return Location{}, common.NewInvalidArgumentError(
			fmt.Sprintf("Latitude must be within Finland boundaries (%v to %v)", MinLatitude, MaxLatitude))
	}
	if longitude < MinLongitude || longitude > MaxLongitude {
		return Location{}, common.NewInvalidArgumentError(
			fmt.Sprintf("Longitude must be within Finland boundaries (%v to %v)", MinLongitude, MaxLongitude))
	}
	return Location{latitude: latitude, longitude: longitude}, nil
}

func (l Location) Latitude() float64 { return l.latitude }

func (l Location) Longitude() float64 { return l.longitude }

// DistanceTo calculates the great-circle distance to another location using
// the haversine formula. The result is in kilometers.
func (l Location) DistanceTo(other Location) float64 {
	dLat := toRadians(other.latitude - l.latitude)
	dLon := toRadians(other.longitude - l.longitude)

	lat1Rad := toRadians(l.latitude)
	lat2Rad := toRadians(other.latitude)

	a := math.Pow(math.Sin(dLat/2), 2) + math.Pow(math.Sin(dLon/2), 2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusKm * c
}

// IsWithinDeliveryRadius reports whether this location is within radiusKm of
// center. The boundary is inclusive.
func (l Location) IsWithinDeliveryRadius(center Location, radiusKm float64) bool {
	return l.DistanceTo(center) <= radiusKm
}

// CoordinateString returns the canonical "lat,lon" form.
func (l Location) CoordinateString() string {
	return strconv.FormatFloat(l.latitude, 'f', -1, 64) + "," + strconv.FormatFloat(l.longitude, 'f', -1, 64)
}

// IsInFinland is always true by construction.
func (l Location) IsInFinland() bool {
	return true
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
