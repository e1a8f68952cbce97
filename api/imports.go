package api

import "time"

// swagger:model
type ImportResult struct {
	// 'units', 'employees', or 'travel-data'
	Kind string `json:"kind"`

	// number of rows that created or updated a record
	Created int `json:"created"`

	Failures []ImportFailure `json:"failures"`
}

// swagger:model
type ImportFailure struct {
	// 1-based line number in the file, counting the header
	Line int `json:"line"`

	Error string `json:"error"`
}

// swagger:model
type ImportArchive struct {
	// object key, 'imports/<kind>/<yyyy-mm-dd>/<hhmmss>_<filename>'
	Key string `json:"key"`

	// temporary download URL
	URL string `json:"url"`

	URLExpiration time.Time `json:"url_expiration"`
}
