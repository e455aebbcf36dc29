package mysql

// Multi-row upserts: the prefix is followed by one "(...)" group per record,
// then the ON DUPLICATE KEY clause. Seeds are replayed in full, so every
// column takes the incoming value.

const upsertToursPrefix = `INSERT INTO tours
  (id, name, location, price, rating, category, duration, destinations, highlights, lat, lon)
VALUES `

const upsertToursOnDup = ` ON DUPLICATE KEY UPDATE
  name         = VALUES(name),
  location     = VALUES(location),
  price        = VALUES(price),
  rating       = VALUES(rating),
  category     = VALUES(category),
  duration     = VALUES(duration),
  destinations = VALUES(destinations),
  highlights   = VALUES(highlights),
  lat          = VALUES(lat),
  lon          = VALUES(lon),
  updated_at   = CURRENT_TIMESTAMP
`

const upsertHotelsPrefix = `INSERT INTO hotels
  (id, name, location, price, rating, category, stars, amenities, lat, lon)
VALUES `

const upsertHotelsOnDup = ` ON DUPLICATE KEY UPDATE
  name       = VALUES(name),
  location   = VALUES(location),
  price      = VALUES(price),
  rating     = VALUES(rating),
  category   = VALUES(category),
  stars      = VALUES(stars),
  amenities  = VALUES(amenities),
  lat        = VALUES(lat),
  lon        = VALUES(lon),
  updated_at = CURRENT_TIMESTAMP
`

const upsertVehiclesPrefix = `INSERT INTO vehicles
  (id, name, category, seats, ac, transmission, price_per_day, rating, base_city, service_radius_km, lat, lon)
VALUES `

const upsertVehiclesOnDup = ` ON DUPLICATE KEY UPDATE
  name              = VALUES(name),
  category          = VALUES(category),
  seats             = VALUES(seats),
  ac                = VALUES(ac),
  transmission      = VALUES(transmission),
  price_per_day     = VALUES(price_per_day),
  rating            = VALUES(rating),
  base_city         = VALUES(base_city),
  service_radius_km = VALUES(service_radius_km),
  lat               = VALUES(lat),
  lon               = VALUES(lon),
  updated_at        = CURRENT_TIMESTAMP
`

const upsertDestinationsPrefix = `INSERT INTO destinations
  (id, name, region, price, rating, category, attractions, best_time, listings, lat, lon)
VALUES `

const upsertDestinationsOnDup = ` ON DUPLICATE KEY UPDATE
  name        = VALUES(name),
  region      = VALUES(region),
  price       = VALUES(price),
  rating      = VALUES(rating),
  category    = VALUES(category),
  attractions = VALUES(attractions),
  best_time   = VALUES(best_time),
  listings    = VALUES(listings),
  lat         = VALUES(lat),
  lon         = VALUES(lon),
  updated_at  = CURRENT_TIMESTAMP
`

const insertSkipSQL = `
INSERT INTO ingest_skips (kind, record_id, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE reason = VALUES(reason), seen_at = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Full-variant reads; id order keeps the "recommended" (identity) sort stable
// across calls.

const listToursSQL = `
SELECT id, name, location, price, rating, category, duration, destinations, highlights, lat, lon
FROM tours ORDER BY id
`

const listHotelsSQL = `
SELECT id, name, location, price, rating, category, stars, amenities, lat, lon
FROM hotels ORDER BY id
`

const listVehiclesSQL = `
SELECT id, name, category, seats, ac, transmission, price_per_day, rating, base_city, service_radius_km, lat, lon
FROM vehicles ORDER BY id
`

const listDestinationsSQL = `
SELECT id, name, region, price, rating, category, attractions, best_time, listings, lat, lon
FROM destinations ORDER BY id
`

const getTourSQL = `
SELECT id, name, location, price, rating, category, duration, destinations, highlights, lat, lon
FROM tours WHERE id = ?
`

const getHotelSQL = `
SELECT id, name, location, price, rating, category, stars, amenities, lat, lon
FROM hotels WHERE id = ?
`

const getVehicleSQL = `
SELECT id, name, category, seats, ac, transmission, price_per_day, rating, base_city, service_radius_km, lat, lon
FROM vehicles WHERE id = ?
`

const getDestinationSQL = `
SELECT id, name, region, price, rating, category, attractions, best_time, listings, lat, lon
FROM destinations WHERE id = ?
`
