package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tripcatalog/internal/catalog"
	"tripcatalog/internal/domain"
)

var (
	tourSchema        = catalog.Tours()
	hotelSchema       = catalog.Hotels()
	vehicleSchema     = catalog.Vehicles()
	destinationSchema = catalog.Destinations()
)

// SearchService serves catalog queries from a cache-aside snapshot of each
// variant. The catalogs are small and static per run; caching the full list
// and evaluating per request keeps every query consistent with one snapshot.
type SearchService struct {
	repo     domain.CatalogRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewSearchService(r domain.CatalogRepository, c domain.Cache, ttl time.Duration) *SearchService {
	return &SearchService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *SearchService) SearchTours(ctx context.Context, q catalog.Query) ([]domain.Tour, error) {
	recs, err := snapshot(ctx, s, domain.KindTour, s.repo.ListTours)
	if err != nil {
		return nil, err
	}
	return catalog.Evaluate(tourSchema, recs, q), nil
}

func (s *SearchService) SearchHotels(ctx context.Context, q catalog.Query) ([]domain.Hotel, error) {
	recs, err := snapshot(ctx, s, domain.KindHotel, s.repo.ListHotels)
	if err != nil {
		return nil, err
	}
	return catalog.Evaluate(hotelSchema, recs, q), nil
}

func (s *SearchService) SearchVehicles(ctx context.Context, q catalog.Query) ([]domain.Vehicle, error) {
	recs, err := snapshot(ctx, s, domain.KindVehicle, s.repo.ListVehicles)
	if err != nil {
		return nil, err
	}
	return catalog.Evaluate(vehicleSchema, recs, q), nil
}

func (s *SearchService) SearchDestinations(ctx context.Context, q catalog.Query) ([]domain.Destination, error) {
	recs, err := snapshot(ctx, s, domain.KindDestination, s.repo.ListDestinations)
	if err != nil {
		return nil, err
	}
	return catalog.Evaluate(destinationSchema, recs, q), nil
}

func (s *SearchService) GetTour(ctx context.Context, id int64) (domain.Tour, error) {
	return detail(ctx, s, "tour", id, s.repo.GetTour)
}

func (s *SearchService) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	return detail(ctx, s, "hotel", id, s.repo.GetHotel)
}

func (s *SearchService) GetVehicle(ctx context.Context, id int64) (domain.Vehicle, error) {
	return detail(ctx, s, "vehicle", id, s.repo.GetVehicle)
}

func (s *SearchService) GetDestination(ctx context.Context, id int64) (domain.Destination, error) {
	return detail(ctx, s, "destination", id, s.repo.GetDestination)
}

// snapshot loads the full record list for one variant through the cache.
// The cached copy is detached from the repo's backing array, and oversized
// payloads are served uncached rather than stuffed into redis.
func snapshot[T any](ctx context.Context, s *SearchService, kind string, load func(context.Context) ([]T, error)) ([]T, error) {
	key := "catalog:" + kind
	var recs []T
	if ok, _ := s.cache.Get(ctx, key, &recs); ok {
		return recs, nil
	}
	recs, err := load(ctx)
	if err != nil {
		return nil, err
	}
	cp := make([]T, len(recs))
	copy(cp, recs)
	if b, _ := json.Marshal(cp); len(b) < 1_000_000 {
		_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
	}
	return recs, nil
}

func detail[T any](ctx context.Context, s *SearchService, kind string, id int64, load func(context.Context, int64) (T, error)) (T, error) {
	key := fmt.Sprintf("%s:%d", kind, id)
	var rec T
	if ok, _ := s.cache.Get(ctx, key, &rec); ok {
		return rec, nil
	}
	rec, err := load(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	_ = s.cache.Set(ctx, key, rec, int(s.cacheTTL.Seconds()))
	return rec, nil
}
