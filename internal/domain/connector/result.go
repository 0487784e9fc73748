package connector

// RawRecord is one untyped record as returned by a provider, before
// normalization. It is kept alongside the normalized fields for
// downstream debugging and is never consulted by rate limiting or
// caching logic.
type RawRecord map[string]any

// NormalizedResult is the common record shape all provider results are
// mapped into. Source and Name are always populated; everything else is
// provider-dependent.
type NormalizedResult struct {
	ID       string    `json:"id,omitempty"`
	Name     string    `json:"name"`
	Email    string    `json:"email,omitempty"`
	Company  string    `json:"company,omitempty"`
	Location string    `json:"location,omitempty"`
	Address  string    `json:"address,omitempty"`
	Phone    string    `json:"phone,omitempty"`
	Website  string    `json:"website,omitempty"`
	Category string    `json:"category,omitempty"`
	Source   Provider  `json:"source"`
	RawData  RawRecord `json:"raw_data,omitempty"`
}

// GeoPoint is a latitude/longitude pair attached to place searches
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SearchQuery carries the logical parameters of one provider search
type SearchQuery struct {
	Provider Provider
	Query    string
	Filters  map[string]string
	Location *GeoPoint
}
