package catalog

import "tripcatalog/internal/domain"

// One schema per record variant. Zero-valued price/rating/seats are treated
// as "field absent" so a partially seeded record filters out rather than
// matching a numeric constraint it has no data for.

func Tours() *Schema[domain.Tour] {
	price := func(t domain.Tour) (float64, bool) { return t.Price, t.Price > 0 }
	rating := func(t domain.Tour) (float64, bool) { return t.Rating, t.Rating > 0 }
	days := func(t domain.Tour) (float64, bool) {
		n, ok := firstInt(t.Duration)
		return float64(n), ok
	}
	return NewSchema[domain.Tour]().
		Equality("category", func(t domain.Tour) string { return t.Category }).
		Threshold("rating", rating).
		Range("price", price).
		Contains("destination", func(t domain.Tour) []string { return t.Destinations }).
		Searchable(func(t domain.Tour) []string {
			fields := make([]string, 0, 2+len(t.Destinations)+len(t.Highlights))
			fields = append(fields, t.Name, t.Location)
			fields = append(fields, t.Destinations...)
			fields = append(fields, t.Highlights...)
			return fields
		}).
		Sortable(SortPriceAsc, false, price).
		Sortable(SortPriceDesc, true, price).
		Sortable(SortRatingDesc, true, rating).
		Sortable(SortDurationDesc, true, days)
}

func Hotels() *Schema[domain.Hotel] {
	price := func(h domain.Hotel) (float64, bool) { return h.Price, h.Price > 0 }
	rating := func(h domain.Hotel) (float64, bool) { return h.Rating, h.Rating > 0 }
	return NewSchema[domain.Hotel]().
		Equality("category", func(h domain.Hotel) string { return h.Category }).
		Threshold("stars", func(h domain.Hotel) (float64, bool) { return float64(h.Stars), h.Stars > 0 }).
		Threshold("rating", rating).
		Range("price", price).
		Contains("amenity", func(h domain.Hotel) []string { return h.Amenities }).
		Contains("location", func(h domain.Hotel) []string { return []string{h.Location} }).
		Searchable(func(h domain.Hotel) []string {
			fields := make([]string, 0, 2+len(h.Amenities))
			fields = append(fields, h.Name, h.Location)
			fields = append(fields, h.Amenities...)
			return fields
		}).
		Sortable(SortPriceAsc, false, price).
		Sortable(SortPriceDesc, true, price).
		Sortable(SortRatingDesc, true, rating)
}

func Vehicles() *Schema[domain.Vehicle] {
	price := func(v domain.Vehicle) (float64, bool) { return v.PricePerDay, v.PricePerDay > 0 }
	rating := func(v domain.Vehicle) (float64, bool) { return v.Rating, v.Rating > 0 }
	seats := func(v domain.Vehicle) (float64, bool) { return float64(v.Seats), v.Seats > 0 }
	return NewSchema[domain.Vehicle]().
		Equality("category", func(v domain.Vehicle) string { return v.Category }).
		Equality("ac", func(v domain.Vehicle) string { return v.AC }).
		Equality("transmission", func(v domain.Vehicle) string { return v.Transmission }).
		Threshold("capacity", seats).
		Threshold("rating", rating).
		Range("price", price).
		Contains("location", func(v domain.Vehicle) []string { return []string{v.BaseCity} }).
		Searchable(func(v domain.Vehicle) []string {
			return []string{v.Name, v.BaseCity, v.Category}
		}).
		Sortable(SortPriceAsc, false, price).
		Sortable(SortPriceDesc, true, price).
		Sortable(SortRatingDesc, true, rating).
		Sortable(SortCapacityDesc, true, seats)
}

func Destinations() *Schema[domain.Destination] {
	price := func(d domain.Destination) (float64, bool) { return d.Price, d.Price > 0 }
	rating := func(d domain.Destination) (float64, bool) { return d.Rating, d.Rating > 0 }
	return NewSchema[domain.Destination]().
		Equality("category", func(d domain.Destination) string { return d.Category }).
		Threshold("rating", rating).
		Threshold("listings", func(d domain.Destination) (float64, bool) { return float64(d.Listings), d.Listings > 0 }).
		Range("price", price).
		Contains("attraction", func(d domain.Destination) []string { return d.Attractions }).
		Contains("season", func(d domain.Destination) []string { return []string{d.BestTime} }).
		Searchable(func(d domain.Destination) []string {
			fields := make([]string, 0, 2+len(d.Attractions))
			fields = append(fields, d.Name, d.Region)
			fields = append(fields, d.Attractions...)
			return fields
		}).
		Sortable(SortPriceAsc, false, price).
		Sortable(SortPriceDesc, true, price).
		Sortable(SortRatingDesc, true, rating)
}
