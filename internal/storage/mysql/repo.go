package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"tripcatalog/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func scanF64(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	f := n.Float64
	return &f
}

func marshalList(ss []string) string {
	if ss == nil {
		ss = []string{}
	}
	b, _ := json.Marshal(ss)
	return string(b)
}

// placeholders builds "(?,...),(?,...)" for n rows of width cols.
func placeholders(n, cols int) string {
	row := "(" + strings.TrimSuffix(strings.Repeat("?,", cols), ",") + ")"
	rows := make([]string, n)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, ",")
}

// ---- write paths ----

func (r *Repo) UpsertTours(ctx context.Context, ts []domain.Tour) error {
	if len(ts) == 0 {
		return nil
	}
	args := make([]any, 0, len(ts)*11)
	for _, t := range ts {
		args = append(args,
			t.ID, t.Name, t.Location, t.Price, t.Rating, t.Category, t.Duration,
			marshalList(t.Destinations), marshalList(t.Highlights),
			valF64(t.Lat), valF64(t.Lon),
		)
	}
	_, err := r.db.ExecContext(ctx, upsertToursPrefix+placeholders(len(ts), 11)+upsertToursOnDup, args...)
	return err
}

func (r *Repo) UpsertHotels(ctx context.Context, hs []domain.Hotel) error {
	if len(hs) == 0 {
		return nil
	}
	args := make([]any, 0, len(hs)*10)
	for _, h := range hs {
		args = append(args,
			h.ID, h.Name, h.Location, h.Price, h.Rating, h.Category, h.Stars,
			marshalList(h.Amenities),
			valF64(h.Lat), valF64(h.Lon),
		)
	}
	_, err := r.db.ExecContext(ctx, upsertHotelsPrefix+placeholders(len(hs), 10)+upsertHotelsOnDup, args...)
	return err
}

func (r *Repo) UpsertVehicles(ctx context.Context, vs []domain.Vehicle) error {
	if len(vs) == 0 {
		return nil
	}
	args := make([]any, 0, len(vs)*12)
	for _, v := range vs {
		args = append(args,
			v.ID, v.Name, v.Category, v.Seats, v.AC, v.Transmission,
			v.PricePerDay, v.Rating, v.BaseCity, v.ServiceRadiusKm,
			valF64(v.Lat), valF64(v.Lon),
		)
	}
	_, err := r.db.ExecContext(ctx, upsertVehiclesPrefix+placeholders(len(vs), 12)+upsertVehiclesOnDup, args...)
	return err
}

func (r *Repo) UpsertDestinations(ctx context.Context, ds []domain.Destination) error {
	if len(ds) == 0 {
		return nil
	}
	args := make([]any, 0, len(ds)*11)
	for _, d := range ds {
		args = append(args,
			d.ID, d.Name, d.Region, d.Price, d.Rating, d.Category,
			marshalList(d.Attractions), d.BestTime, d.Listings,
			valF64(d.Lat), valF64(d.Lon),
		)
	}
	_, err := r.db.ExecContext(ctx, upsertDestinationsPrefix+placeholders(len(ds), 11)+upsertDestinationsOnDup, args...)
	return err
}

func (r *Repo) LogMiss(ctx context.Context, kind string, id int64, reason string) error {
	_, err := r.db.ExecContext(ctx, insertSkipSQL, kind, id, reason)
	return err
}

// ---- read paths ----

func scanTour(scan func(dest ...any) error) (domain.Tour, error) {
	var t domain.Tour
	var dests, highs []byte
	var lat, lon sql.NullFloat64
	if err := scan(&t.ID, &t.Name, &t.Location, &t.Price, &t.Rating, &t.Category,
		&t.Duration, &dests, &highs, &lat, &lon); err != nil {
		return domain.Tour{}, err
	}
	_ = json.Unmarshal(dests, &t.Destinations)
	_ = json.Unmarshal(highs, &t.Highlights)
	t.Lat, t.Lon = scanF64(lat), scanF64(lon)
	return t, nil
}

func scanHotel(scan func(dest ...any) error) (domain.Hotel, error) {
	var h domain.Hotel
	var amens []byte
	var lat, lon sql.NullFloat64
	if err := scan(&h.ID, &h.Name, &h.Location, &h.Price, &h.Rating, &h.Category,
		&h.Stars, &amens, &lat, &lon); err != nil {
		return domain.Hotel{}, err
	}
	_ = json.Unmarshal(amens, &h.Amenities)
	h.Lat, h.Lon = scanF64(lat), scanF64(lon)
	return h, nil
}

func scanVehicle(scan func(dest ...any) error) (domain.Vehicle, error) {
	var v domain.Vehicle
	var lat, lon sql.NullFloat64
	if err := scan(&v.ID, &v.Name, &v.Category, &v.Seats, &v.AC, &v.Transmission,
		&v.PricePerDay, &v.Rating, &v.BaseCity, &v.ServiceRadiusKm, &lat, &lon); err != nil {
		return domain.Vehicle{}, err
	}
	v.Lat, v.Lon = scanF64(lat), scanF64(lon)
	return v, nil
}

func scanDestination(scan func(dest ...any) error) (domain.Destination, error) {
	var d domain.Destination
	var attrs []byte
	var lat, lon sql.NullFloat64
	if err := scan(&d.ID, &d.Name, &d.Region, &d.Price, &d.Rating, &d.Category,
		&attrs, &d.BestTime, &d.Listings, &lat, &lon); err != nil {
		return domain.Destination{}, err
	}
	_ = json.Unmarshal(attrs, &d.Attractions)
	d.Lat, d.Lon = scanF64(lat), scanF64(lon)
	return d, nil
}

func listAll[T any](ctx context.Context, db *sql.DB, query string, scanOne func(func(dest ...any) error) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		rec, err := scanOne(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func getOne[T any](ctx context.Context, db *sql.DB, query string, id int64, scanOne func(func(dest ...any) error) (T, error)) (T, error) {
	rec, err := scanOne(db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		var zero T
		return zero, domain.ErrNotFound
	}
	return rec, err
}

func (r *Repo) ListTours(ctx context.Context) ([]domain.Tour, error) {
	return listAll(ctx, r.db, listToursSQL, scanTour)
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	return listAll(ctx, r.db, listHotelsSQL, scanHotel)
}

func (r *Repo) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return listAll(ctx, r.db, listVehiclesSQL, scanVehicle)
}

func (r *Repo) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	return listAll(ctx, r.db, listDestinationsSQL, scanDestination)
}

func (r *Repo) GetTour(ctx context.Context, id int64) (domain.Tour, error) {
	return getOne(ctx, r.db, getTourSQL, id, scanTour)
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	return getOne(ctx, r.db, getHotelSQL, id, scanHotel)
}

func (r *Repo) GetVehicle(ctx context.Context, id int64) (domain.Vehicle, error) {
	return getOne(ctx, r.db, getVehicleSQL, id, scanVehicle)
}

func (r *Repo) GetDestination(ctx context.Context, id int64) (domain.Destination, error) {
	return getOne(ctx, r.db, getDestinationSQL, id, scanDestination)
}
