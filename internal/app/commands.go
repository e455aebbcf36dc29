package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"tripcatalog/internal/domain"
)

// IngestionService seeds one catalog variant at a time: records missing a
// location label are enriched by reverse geocoding (bounded concurrency),
// then the batch is upserted and the variant's cache entries dropped.
//
// Geocode failures are fail-open: the record still ships, with its label
// left empty, and the miss is recorded for a later manual pass.
type IngestionService struct {
	geo     domain.Geocoder
	repo    domain.CatalogRepository
	cache   domain.Cache
	workers int64
}

func NewIngestionService(g domain.Geocoder, r domain.CatalogRepository, cache domain.Cache, workers int) *IngestionService {
	if workers <= 0 {
		workers = 4
	}
	return &IngestionService{geo: g, repo: r, cache: cache, workers: int64(workers)}
}

func (s *IngestionService) IngestTours(ctx context.Context, ts []domain.Tour) error {
	s.enrich(ctx, domain.KindTour, len(ts),
		func(i int) (int64, *float64, *float64, bool) {
			return ts[i].ID, ts[i].Lat, ts[i].Lon, ts[i].Location == ""
		},
		func(i int, p domain.Place) { ts[i].Location = placeLabel(p) },
	)
	if err := s.repo.UpsertTours(ctx, ts); err != nil {
		return fmt.Errorf("upsert tours: %w", err)
	}
	s.invalidate(ctx, domain.KindTour, "tour", collectIDs(len(ts), func(i int) int64 { return ts[i].ID }))
	return nil
}

func (s *IngestionService) IngestHotels(ctx context.Context, hs []domain.Hotel) error {
	s.enrich(ctx, domain.KindHotel, len(hs),
		func(i int) (int64, *float64, *float64, bool) {
			return hs[i].ID, hs[i].Lat, hs[i].Lon, hs[i].Location == ""
		},
		func(i int, p domain.Place) { hs[i].Location = placeLabel(p) },
	)
	if err := s.repo.UpsertHotels(ctx, hs); err != nil {
		return fmt.Errorf("upsert hotels: %w", err)
	}
	s.invalidate(ctx, domain.KindHotel, "hotel", collectIDs(len(hs), func(i int) int64 { return hs[i].ID }))
	return nil
}

func (s *IngestionService) IngestVehicles(ctx context.Context, vs []domain.Vehicle) error {
	s.enrich(ctx, domain.KindVehicle, len(vs),
		func(i int) (int64, *float64, *float64, bool) {
			return vs[i].ID, vs[i].Lat, vs[i].Lon, vs[i].BaseCity == ""
		},
		func(i int, p domain.Place) { vs[i].BaseCity = placeCity(p) },
	)
	if err := s.repo.UpsertVehicles(ctx, vs); err != nil {
		return fmt.Errorf("upsert vehicles: %w", err)
	}
	s.invalidate(ctx, domain.KindVehicle, "vehicle", collectIDs(len(vs), func(i int) int64 { return vs[i].ID }))
	return nil
}

func (s *IngestionService) IngestDestinations(ctx context.Context, ds []domain.Destination) error {
	s.enrich(ctx, domain.KindDestination, len(ds),
		func(i int) (int64, *float64, *float64, bool) {
			return ds[i].ID, ds[i].Lat, ds[i].Lon, ds[i].Region == ""
		},
		func(i int, p domain.Place) { ds[i].Region = placeCity(p) },
	)
	if err := s.repo.UpsertDestinations(ctx, ds); err != nil {
		return fmt.Errorf("upsert destinations: %w", err)
	}
	s.invalidate(ctx, domain.KindDestination, "destination", collectIDs(len(ds), func(i int) int64 { return ds[i].ID }))
	return nil
}

// enrich runs reverse geocoding for records that need a label and have
// coordinates. Each goroutine writes only its own index.
func (s *IngestionService) enrich(ctx context.Context, kind string, n int,
	coords func(i int) (id int64, lat, lon *float64, needs bool),
	apply func(i int, p domain.Place),
) {
	if s.geo == nil {
		return
	}
	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		id, lat, lon, needs := coords(i)
		if !needs || lat == nil || lon == nil {
			continue
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("enrichment aborted")
			break
		}
		wg.Add(1)
		go func(i int, id int64, lat, lon float64) {
			defer wg.Done()
			defer sem.Release(1)

			p, err := s.geo.ReverseGeocode(ctx, lat, lon)
			if err != nil {
				log.Warn().Str("kind", kind).Int64("id", id).Err(err).Msg("geocode miss")
				_ = s.repo.LogMiss(ctx, kind, id, "geocode")
				return
			}
			apply(i, p)
		}(i, id, *lat, *lon)
	}
	wg.Wait()
}

// invalidate drops the variant snapshot and every detail key in the batch.
func (s *IngestionService) invalidate(ctx context.Context, kind, detailPrefix string, ids []int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, "catalog:"+kind)
	for _, id := range ids {
		_ = s.cache.Del(ctx, fmt.Sprintf("%s:%d", detailPrefix, id))
	}
}

func placeLabel(p domain.Place) string {
	if p.Label != "" {
		return p.Label
	}
	return p.City
}

func placeCity(p domain.Place) string {
	if p.City != "" {
		return p.City
	}
	return p.Label
}

func collectIDs(n int, get func(int) int64) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = get(i)
	}
	return out
}
