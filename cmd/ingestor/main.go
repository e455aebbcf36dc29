package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"tripcatalog/internal/adapters/geocode"
	"tripcatalog/internal/adapters/observability"
	redisad "tripcatalog/internal/adapters/redis"
	"tripcatalog/internal/app"
	"tripcatalog/internal/domain"
	"tripcatalog/internal/shared"
	mysqlrepo "tripcatalog/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("seed_dir", cfg.SeedDir).
		Str("geocoder", cfg.GeocodeBase).
		Int("workers", cfg.Workers).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	geo, err := geocode.New(cfg.GeocodeBase, cfg.GeocodeKey, cfg.GeocodeRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize geocoder")
	}
	ing := app.NewIngestionService(geo, repo, cache, cfg.Workers)

	tours := loadSeed[domain.Tour](cfg.SeedDir, "tours.json")
	hotels := loadSeed[domain.Hotel](cfg.SeedDir, "hotels.json")
	vehicles := loadSeed[domain.Vehicle](cfg.SeedDir, "vehicles.json")
	dests := loadSeed[domain.Destination](cfg.SeedDir, "destinations.json")

	if err := ing.IngestTours(ctx, tours); err != nil {
		log.Fatal().Err(err).Msg("ingest tours failed")
	}
	if err := ing.IngestHotels(ctx, hotels); err != nil {
		log.Fatal().Err(err).Msg("ingest hotels failed")
	}
	if err := ing.IngestVehicles(ctx, vehicles); err != nil {
		log.Fatal().Err(err).Msg("ingest vehicles failed")
	}
	if err := ing.IngestDestinations(ctx, dests); err != nil {
		log.Fatal().Err(err).Msg("ingest destinations failed")
	}

	log.Info().
		Int("tours", len(tours)).
		Int("hotels", len(hotels)).
		Int("vehicles", len(vehicles)).
		Int("destinations", len(dests)).
		Msg("ingestion completed")
}

// loadSeed reads one catalog file; a missing file is an empty catalog, not a
// fatal error, so partial seed sets work.
func loadSeed[T any](dir, name string) []T {
	path := filepath.Join(dir, name)
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", path).Msg("seed file missing, skipping")
			return nil
		}
		log.Fatal().Err(err).Str("path", path).Msg("read seed file failed")
	}
	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("decode seed file failed")
	}
	return out
}
