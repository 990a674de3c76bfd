package geocode

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("geocode not found")

// ReverseGeocoder resolves a lat/lng pair into a human-readable address.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lng float64) (address string, err error)
}
