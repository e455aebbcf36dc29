package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("catalog: not found")

type CatalogRepository interface {
	// Write paths (ingestor)
	UpsertTours(ctx context.Context, ts []Tour) error
	UpsertHotels(ctx context.Context, hs []Hotel) error
	UpsertVehicles(ctx context.Context, vs []Vehicle) error
	UpsertDestinations(ctx context.Context, ds []Destination) error
	LogMiss(ctx context.Context, kind string, id int64, reason string) error

	// Read paths (API)
	ListTours(ctx context.Context) ([]Tour, error)
	ListHotels(ctx context.Context) ([]Hotel, error)
	ListVehicles(ctx context.Context) ([]Vehicle, error)
	ListDestinations(ctx context.Context) ([]Destination, error)
	GetTour(ctx context.Context, id int64) (Tour, error)
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	GetVehicle(ctx context.Context, id int64) (Vehicle, error)
	GetDestination(ctx context.Context, id int64) (Destination, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Geocoder resolves coordinates into a human-readable place. A failed or
// timed-out lookup must never block catalog queries; callers log and move on.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (Place, error)
}

type Place struct {
	Label   string `json:"label"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}
