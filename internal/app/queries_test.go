package app_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"tripcatalog/internal/app"
	"tripcatalog/internal/catalog"
	"tripcatalog/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	vehicles []domain.Vehicle
	tours    []domain.Tour
	misses   []string

	upsertedVehicles [][]domain.Vehicle
}

func (f *fakeRepo) UpsertTours(ctx context.Context, ts []domain.Tour) error   { return nil }
func (f *fakeRepo) UpsertHotels(ctx context.Context, hs []domain.Hotel) error { return nil }
func (f *fakeRepo) UpsertVehicles(ctx context.Context, vs []domain.Vehicle) error {
	f.upsertedVehicles = append(f.upsertedVehicles, vs)
	return nil
}
func (f *fakeRepo) UpsertDestinations(ctx context.Context, ds []domain.Destination) error {
	return nil
}
func (f *fakeRepo) LogMiss(ctx context.Context, kind string, id int64, reason string) error {
	f.misses = append(f.misses, reason)
	return nil
}
func (f *fakeRepo) ListTours(ctx context.Context) ([]domain.Tour, error)       { return f.tours, nil }
func (f *fakeRepo) ListHotels(ctx context.Context) ([]domain.Hotel, error)     { return nil, nil }
func (f *fakeRepo) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) { return f.vehicles, nil }
func (f *fakeRepo) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	return nil, nil
}
func (f *fakeRepo) GetTour(ctx context.Context, id int64) (domain.Tour, error) {
	for _, t := range f.tours {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Tour{}, domain.ErrNotFound
}
func (f *fakeRepo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	return domain.Hotel{}, domain.ErrNotFound
}
func (f *fakeRepo) GetVehicle(ctx context.Context, id int64) (domain.Vehicle, error) {
	for _, v := range f.vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return domain.Vehicle{}, domain.ErrNotFound
}
func (f *fakeRepo) GetDestination(ctx context.Context, id int64) (domain.Destination, error) {
	return domain.Destination{}, domain.ErrNotFound
}

// fakeCache stores JSON, like the real adapter, so Get round-trips through
// unmarshalling regardless of the destination type.
type fakeCache struct {
	store map[string][]byte
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

// ---- tests ----

func TestSearchVehicles_SnapshotCacheMissThenHit(t *testing.T) {
	repo := &fakeRepo{vehicles: []domain.Vehicle{
		{ID: 1, Name: "Swift Dzire", Category: "car", Seats: 5, PricePerDay: 2500, BaseCity: "Kozhikkode"},
		{ID: 9, Name: "Tempo Traveller 12", Category: "traveller", Seats: 12, PricePerDay: 7500, BaseCity: "Kozhikkode"},
	}}
	cache := &fakeCache{}
	s := app.NewSearchService(repo, cache, 10*time.Minute)

	// Miss: served from repo, snapshot cached.
	out, err := s.SearchVehicles(context.Background(), catalog.Query{
		Filters: map[string]string{"category": "car"},
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("unexpected result: %+v", out)
	}
	if _, ok := cache.store["catalog:vehicles"]; !ok {
		t.Fatalf("expected snapshot cached under catalog:vehicles")
	}

	// Mutate repo; second query must still see the cached snapshot.
	repo.vehicles = nil
	out2, err := s.SearchVehicles(context.Background(), catalog.Query{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out2) != 2 {
		t.Fatalf("expected cached snapshot of 2 vehicles, got %d", len(out2))
	}
}

func TestGetTour_CacheMissThenHit(t *testing.T) {
	repo := &fakeRepo{tours: []domain.Tour{
		{ID: 7, Name: "Backwater Grand Circuit", Price: 21000},
	}}
	cache := &fakeCache{}
	s := app.NewSearchService(repo, cache, 10*time.Minute)

	tr, err := s.GetTour(context.Background(), 7)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if tr.Name != "Backwater Grand Circuit" {
		t.Fatalf("unexpected tour: %+v", tr)
	}

	repo.tours[0].Name = "SHOULD NOT SEE THIS"
	tr2, err := s.GetTour(context.Background(), 7)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if tr2.Name != "Backwater Grand Circuit" {
		t.Fatalf("expected cached name, got %s", tr2.Name)
	}
}

func TestGetVehicle_NotFound(t *testing.T) {
	s := app.NewSearchService(&fakeRepo{}, &fakeCache{}, time.Minute)
	if _, err := s.GetVehicle(context.Background(), 404); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
