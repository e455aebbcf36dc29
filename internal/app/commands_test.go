package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tripcatalog/internal/app"
	"tripcatalog/internal/domain"
)

type fakeGeocoder struct {
	place domain.Place
	err   error
	calls int
}

func (g *fakeGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.Place, error) {
	g.calls++
	if g.err != nil {
		return domain.Place{}, g.err
	}
	return g.place, nil
}

func pf(f float64) *float64 { return &f }

func TestIngestVehicles_EnrichesMissingBaseCity(t *testing.T) {
	repo := &fakeRepo{}
	cache := &fakeCache{store: map[string][]byte{"catalog:vehicles": []byte("[]")}}
	geo := &fakeGeocoder{place: domain.Place{Label: "Kozhikkode, Kerala, India", City: "Kozhikkode"}}
	ing := app.NewIngestionService(geo, repo, cache, 4)

	vs := []domain.Vehicle{
		{ID: 1, Name: "Swift Dzire", BaseCity: "Kozhikkode"},             // already labelled
		{ID: 2, Name: "Honda Amaze", Lat: pf(11.25), Lon: pf(75.78)},     // needs enrichment
		{ID: 3, Name: "Honda City"},                                      // no coords, left as-is
	}
	if err := ing.IngestVehicles(context.Background(), vs); err != nil {
		t.Fatalf("err: %v", err)
	}

	if geo.calls != 1 {
		t.Fatalf("expected 1 geocode call, got %d", geo.calls)
	}
	if len(repo.upsertedVehicles) != 1 {
		t.Fatalf("expected one upsert batch")
	}
	got := repo.upsertedVehicles[0]
	if got[1].BaseCity != "Kozhikkode" {
		t.Fatalf("vehicle 2 not enriched: %+v", got[1])
	}
	if got[2].BaseCity != "" {
		t.Fatalf("vehicle 3 should be untouched: %+v", got[2])
	}
	if _, still := cache.store["catalog:vehicles"]; still {
		t.Fatalf("expected snapshot cache invalidated")
	}
}

func TestIngestVehicles_GeocodeFailureIsFailOpen(t *testing.T) {
	repo := &fakeRepo{}
	geo := &fakeGeocoder{err: errors.New("upstream 503")}
	ing := app.NewIngestionService(geo, repo, &fakeCache{}, 2)

	vs := []domain.Vehicle{{ID: 5, Name: "Force Urbania", Lat: pf(11.2), Lon: pf(75.8)}}
	if err := ing.IngestVehicles(context.Background(), vs); err != nil {
		t.Fatalf("ingest should not fail on geocode error: %v", err)
	}
	if len(repo.upsertedVehicles) != 1 {
		t.Fatalf("record must still be upserted")
	}
	if repo.upsertedVehicles[0][0].BaseCity != "" {
		t.Fatalf("label should stay empty on geocode failure")
	}
	if len(repo.misses) != 1 || repo.misses[0] != "geocode" {
		t.Fatalf("expected a geocode miss logged, got %v", repo.misses)
	}
}

func TestIngestTours_UsesFullLabel(t *testing.T) {
	repo := &fakeRepo{}
	geo := &fakeGeocoder{place: domain.Place{Label: "Munnar, Idukki, Kerala", City: "Munnar"}}
	ing := app.NewIngestionService(geo, repo, &fakeCache{}, 2)

	ts := []domain.Tour{{ID: 4, Name: "Munnar Tea Country", Lat: pf(10.08), Lon: pf(77.06)}}
	done := make(chan error, 1)
	go func() { done <- ing.IngestTours(context.Background(), ts) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("err: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ingest did not finish")
	}
	if ts[0].Location != "Munnar, Idukki, Kerala" {
		t.Fatalf("tour not enriched: %+v", ts[0])
	}
}
