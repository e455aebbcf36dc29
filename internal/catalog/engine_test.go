package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tripcatalog/internal/catalog"
	"tripcatalog/internal/domain"
)

// The shipping fleet: 22 vehicles, all based in Kozhikkode. Mirrors
// seed/vehicles.json.
func fleet() []domain.Vehicle {
	mk := func(id int64, name, cat string, seats int, ac, tr string, price, rating float64) domain.Vehicle {
		return domain.Vehicle{
			ID: id, Name: name, Category: cat, Seats: seats, AC: ac,
			Transmission: tr, PricePerDay: price, Rating: rating,
			BaseCity: "Kozhikkode", ServiceRadiusKm: 250,
		}
	}
	return []domain.Vehicle{
		mk(1, "Swift Dzire", "car", 5, "ac", "manual", 2500, 4.3),
		mk(2, "Honda Amaze", "car", 5, "ac", "manual", 2800, 4.4),
		mk(3, "Honda City", "car", 5, "ac", "automatic", 3500, 4.6),
		mk(4, "Maruti Ertiga", "suv", 7, "ac", "manual", 3800, 4.2),
		mk(5, "Toyota Innova", "suv", 7, "ac", "manual", 4500, 4.7),
		mk(6, "Toyota Innova Crysta", "suv", 7, "ac", "automatic", 5500, 4.8),
		mk(7, "Mahindra Marazzo", "suv", 8, "ac", "manual", 4800, 4.3),
		mk(8, "Kia Carens", "suv", 7, "ac", "automatic", 5000, 4.5),
		mk(9, "Tempo Traveller 12", "traveller", 12, "ac", "manual", 7500, 4.4),
		mk(10, "Tempo Traveller 17", "traveller", 17, "ac", "manual", 9000, 4.5),
		mk(11, "Tempo Traveller 26", "traveller", 26, "ac", "manual", 12000, 4.3),
		mk(12, "Force Urbania", "traveller", 17, "ac", "automatic", 11000, 4.6),
		mk(13, "Mini Bus 20", "bus", 20, "non-ac", "manual", 10000, 4.1),
		mk(14, "Mini Bus 25", "bus", 25, "ac", "manual", 13000, 4.2),
		mk(15, "Tourist Bus 35", "bus", 35, "non-ac", "manual", 14000, 4.0),
		mk(16, "Tourist Bus 45", "bus", 45, "ac", "manual", 18000, 4.3),
		mk(17, "Volvo Coach 45", "bus", 45, "ac", "automatic", 20000, 4.7),
		mk(18, "Mercedes Luxury Coach", "bus", 45, "ac", "automatic", 22000, 4.9),
		mk(19, "Mahindra Bolero", "jeep", 7, "non-ac", "manual", 3000, 4.0),
		mk(20, "Mahindra Thar", "jeep", 4, "ac", "manual", 4000, 4.6),
		mk(21, "Maruti Eeco", "van", 7, "non-ac", "manual", 2600, 3.9),
		mk(22, "Toyota HiAce", "van", 12, "ac", "automatic", 15000, 4.8),
	}
}

func ids(vs []domain.Vehicle) []int64 {
	out := make([]int64, len(vs))
	for i, v := range vs {
		out[i] = v.ID
	}
	return out
}

func TestEvaluate_CategoryEquality(t *testing.T) {
	got := catalog.Evaluate(catalog.Vehicles(), fleet(), catalog.Query{
		Filters: map[string]string{"category": "car"},
	})
	require.Equal(t, []int64{1, 2, 3}, ids(got))
}

func TestEvaluate_CapacityThreshold(t *testing.T) {
	got := catalog.Evaluate(catalog.Vehicles(), fleet(), catalog.Query{
		Filters: map[string]string{"capacity": "7"},
	})
	for _, v := range got {
		require.GreaterOrEqual(t, v.Seats, 7, "vehicle %d", v.ID)
	}
	require.Len(t, got, 18) // everything except the 5-seat cars and the Thar
	require.NotContains(t, ids(got), int64(1))
	require.NotContains(t, ids(got), int64(20))
}

func TestEvaluate_PriceAscending(t *testing.T) {
	got := catalog.Evaluate(catalog.Vehicles(), fleet(), catalog.Query{Sort: catalog.ParseSortKey("price-low")})
	require.Len(t, got, 22)
	require.Equal(t, "Swift Dzire", got[0].Name)
	require.Equal(t, "Mercedes Luxury Coach", got[len(got)-1].Name)
	for i := 1; i < len(got); i++ {
		require.LessOrEqual(t, got[i-1].PricePerDay, got[i].PricePerDay)
	}
}

func TestEvaluate_LocationSubstringCaseInsensitive(t *testing.T) {
	got := catalog.Evaluate(catalog.Vehicles(), fleet(), catalog.Query{
		Filters: map[string]string{"location": "kozhikkode"},
	})
	require.Len(t, got, 22)
}

func TestEvaluate_EmptyRecords(t *testing.T) {
	got := catalog.Evaluate(catalog.Vehicles(), nil, catalog.Query{
		Term:    "anything",
		Filters: map[string]string{"category": "car", "price": "0-100"},
		Sort:    catalog.SortPriceDesc,
	})
	require.Empty(t, got)
	require.NotNil(t, got)
}

func TestEvaluate_PriceRangeInclusive(t *testing.T) {
	got := catalog.Evaluate(catalog.Vehicles(), fleet(), catalog.Query{
		Filters: map[string]string{"price": "3000-6000"},
	})
	require.Equal(t, []int64{3, 4, 5, 6, 7, 8, 19, 20}, ids(got))
	for _, v := range got {
		require.GreaterOrEqual(t, v.PricePerDay, 3000.0)
		require.LessOrEqual(t, v.PricePerDay, 6000.0)
	}
}

func TestEvaluate_FailOpenOnMalformedRange(t *testing.T) {
	base := catalog.Evaluate(catalog.Vehicles(), fleet(), catalog.Query{
		Filters: map[string]string{"category": "suv"},
	})
	for _, bad := range []string{"not-a-range", "100", "-", "a-b", ""} {
		got := catalog.Evaluate(catalog.Vehicles(), fleet(), catalog.Query{
			Filters: map[string]string{"category": "suv", "price": bad},
		})
		require.Equal(t, ids(base), ids(got), "price=%q should be skipped", bad)
	}
}

func TestEvaluate_FailOpenOnUnknownFacetAndSort(t *testing.T) {
	got := catalog.Evaluate(catalog.Vehicles(), fleet(), catalog.Query{
		Filters: map[string]string{"mileage": "20"},
		Sort:    catalog.SortKey("bogus"),
	})
	require.Equal(t, ids(fleet()), ids(got))
}

func TestEvaluate_Idempotent(t *testing.T) {
	recs := fleet()
	q := catalog.Query{
		Term:    "toyota",
		Filters: map[string]string{"capacity": "7"},
		Sort:    catalog.SortPriceDesc,
	}
	first := catalog.Evaluate(catalog.Vehicles(), recs, q)
	second := catalog.Evaluate(catalog.Vehicles(), recs, q)
	require.Equal(t, first, second)
}

func TestEvaluate_FilterMonotonicity(t *testing.T) {
	q1 := catalog.Query{Filters: map[string]string{"ac": "ac"}}
	q2 := catalog.Query{Filters: map[string]string{"ac": "ac", "transmission": "automatic"}}
	r1 := catalog.Evaluate(catalog.Vehicles(), fleet(), q1)
	r2 := catalog.Evaluate(catalog.Vehicles(), fleet(), q2)
	require.Subset(t, ids(r1), ids(r2))
}

func TestEvaluate_SortStability(t *testing.T) {
	// The three 45-seaters tie on capacity; input order must survive.
	got := catalog.Evaluate(catalog.Vehicles(), fleet(), catalog.Query{Sort: catalog.SortCapacityDesc})
	var heavies []int64
	for _, v := range got {
		if v.Seats == 45 {
			heavies = append(heavies, v.ID)
		}
	}
	require.Equal(t, []int64{16, 17, 18}, heavies)
}

func TestEvaluate_DoesNotMutateInput(t *testing.T) {
	recs := fleet()
	want := fleet()
	_ = catalog.Evaluate(catalog.Vehicles(), recs, catalog.Query{
		Term: "bus",
		Sort: catalog.SortPriceAsc,
	})
	require.Equal(t, want, recs)
}

func TestEvaluate_TermMatchesAnySearchField(t *testing.T) {
	// "KOZHI" hits BaseCity on every record; "volvo" hits one name.
	all := catalog.Evaluate(catalog.Vehicles(), fleet(), catalog.Query{Term: "KOZHI"})
	require.Len(t, all, 22)

	one := catalog.Evaluate(catalog.Vehicles(), fleet(), catalog.Query{Term: "volvo"})
	require.Equal(t, []int64{17}, ids(one))
}

func TestParseSortKey(t *testing.T) {
	require.Equal(t, catalog.SortPriceAsc, catalog.ParseSortKey("price-low"))
	require.Equal(t, catalog.SortPriceAsc, catalog.ParseSortKey("price-asc"))
	require.Equal(t, catalog.SortPriceDesc, catalog.ParseSortKey("PRICE-HIGH"))
	require.Equal(t, catalog.SortRatingDesc, catalog.ParseSortKey("rating-desc"))
	require.Equal(t, catalog.SortRecommended, catalog.ParseSortKey(""))
	require.Equal(t, catalog.SortRecommended, catalog.ParseSortKey("nonsense"))
}
