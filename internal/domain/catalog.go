package domain

// Catalog kinds. Used as cache key segments and ingest skip-log labels.
const (
	KindTour        = "tours"
	KindHotel       = "hotels"
	KindVehicle     = "vehicles"
	KindDestination = "destinations"
)

type Tour struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	Price        float64  `json:"price"`
	Rating       float64  `json:"rating"`
	Category     string   `json:"category"`
	Duration     string   `json:"duration"` // e.g. "7 Days / 6 Nights"
	Destinations []string `json:"destinations"`
	Highlights   []string `json:"highlights"`
	Lat          *float64 `json:"lat,omitempty"`
	Lon          *float64 `json:"lon,omitempty"`
}

type Hotel struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Price     float64  `json:"price"` // per night
	Rating    float64  `json:"rating"`
	Category  string   `json:"category"`
	Stars     int      `json:"stars"`
	Amenities []string `json:"amenities"`
	Lat       *float64 `json:"lat,omitempty"`
	Lon       *float64 `json:"lon,omitempty"`
}

type Vehicle struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"` // car|suv|traveller|van|bus|jeep
	Seats           int      `json:"seats"`
	AC              string   `json:"ac"` // ac|non-ac
	Transmission    string   `json:"transmission"`
	PricePerDay     float64  `json:"pricePerDay"`
	Rating          float64  `json:"rating"`
	BaseCity        string   `json:"baseCity"`
	ServiceRadiusKm int      `json:"serviceRadiusKm"`
	Lat             *float64 `json:"lat,omitempty"`
	Lon             *float64 `json:"lon,omitempty"`
}

type Destination struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Region      string   `json:"region"`
	Price       float64  `json:"price"` // typical per-person daily budget
	Rating      float64  `json:"rating"`
	Category    string   `json:"category"`
	Attractions []string `json:"attractions"`
	BestTime    string   `json:"bestTime"`
	Listings    int      `json:"listings"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
}
