package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"tripcatalog/internal/adapters/geocode"
	"tripcatalog/internal/app"
	"tripcatalog/internal/catalog"
	"tripcatalog/internal/domain"
)

type Handlers struct {
	Q   *app.SearchService
	Geo domain.Geocoder
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/tours", h.listTours)
	s.mux.Get("/v1/tours/{id}", h.getTour)
	s.mux.Get("/v1/hotels", h.listHotels)
	s.mux.Get("/v1/hotels/{id}", h.getHotel)
	s.mux.Get("/v1/vehicles", h.listVehicles)
	s.mux.Get("/v1/vehicles/{id}", h.getVehicle)
	s.mux.Get("/v1/destinations", h.listDestinations)
	s.mux.Get("/v1/destinations/{id}", h.getDestination)

	s.mux.Get("/v1/geocode/reverse", h.reverseGeocode)
}

// queryFromRequest builds a catalog query from URL params. Facet values pass
// through unvalidated; the engine is fail-open on anything malformed.
func queryFromRequest(r *http.Request, facets ...string) catalog.Query {
	qs := r.URL.Query()
	filters := make(map[string]string, len(facets))
	for _, f := range facets {
		if v := qs.Get(f); v != "" {
			filters[f] = v
		}
	}
	return catalog.Query{
		Term:    qs.Get("q"),
		Filters: filters,
		Sort:    catalog.ParseSortKey(qs.Get("sort")),
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON handles ETag/If-None-Match and the 200 path for any payload.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// ---- list handlers ----

func (h *Handlers) listTours(w http.ResponseWriter, r *http.Request) {
	q := queryFromRequest(r, "category", "rating", "price", "destination")
	items, err := h.Q.SearchTours(r.Context(), q)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal", "tour catalog unavailable")
		return
	}
	writeJSON(w, r, listResponse[domain.Tour]{Items: items, Count: len(items)})
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	q := queryFromRequest(r, "category", "stars", "rating", "price", "amenity", "location")
	items, err := h.Q.SearchHotels(r.Context(), q)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal", "hotel catalog unavailable")
		return
	}
	writeJSON(w, r, listResponse[domain.Hotel]{Items: items, Count: len(items)})
}

func (h *Handlers) listVehicles(w http.ResponseWriter, r *http.Request) {
	q := queryFromRequest(r, "category", "capacity", "ac", "transmission", "rating", "price", "location")
	items, err := h.Q.SearchVehicles(r.Context(), q)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal", "vehicle catalog unavailable")
		return
	}
	writeJSON(w, r, listResponse[domain.Vehicle]{Items: items, Count: len(items)})
}

func (h *Handlers) listDestinations(w http.ResponseWriter, r *http.Request) {
	q := queryFromRequest(r, "category", "rating", "listings", "price", "attraction", "season")
	items, err := h.Q.SearchDestinations(r.Context(), q)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal", "destination catalog unavailable")
		return
	}
	writeJSON(w, r, listResponse[domain.Destination]{Items: items, Count: len(items)})
}

// ---- detail handlers ----

func (h *Handlers) getTour(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	t, err := h.Q.GetTour(r.Context(), id)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "tour not found")
		return
	}
	writeJSON(w, r, t)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	ht, err := h.Q.GetHotel(r.Context(), id)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	writeJSON(w, r, ht)
}

func (h *Handlers) getVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	v, err := h.Q.GetVehicle(r.Context(), id)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "vehicle not found")
		return
	}
	writeJSON(w, r, v)
}

func (h *Handlers) getDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	d, err := h.Q.GetDestination(r.Context(), id)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "destination not found")
		return
	}
	writeJSON(w, r, d)
}

// ---- geocode passthrough ----

func (h *Handlers) reverseGeocode(w http.ResponseWriter, r *http.Request) {
	if h.Geo == nil {
		writeProblem(w, http.StatusServiceUnavailable, "Unavailable", "geocoder not configured")
		return
	}
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if errLat != nil || errLon != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid coordinates", "lat and lon must be numbers")
		return
	}
	p, err := h.Geo.ReverseGeocode(r.Context(), lat, lon)
	switch {
	case err == nil:
		writeJSON(w, r, p)
	case errors.Is(err, geocode.ErrNotFound), errors.Is(err, geocode.ErrNoResult):
		writeProblem(w, http.StatusNotFound, "Not Found", "no place at these coordinates")
	default:
		log.Warn().Err(err).Msg("reverse geocode failed")
		writeProblem(w, http.StatusBadGateway, "Upstream failure", "geocoding service unavailable")
	}
}
