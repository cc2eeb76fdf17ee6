package movie

import (
	"strings"

	"cinevault/errs"
)

// PosterNotAvailable is the sentinel stored when no poster image exists
// for a movie.
const PosterNotAvailable = "N/A"

// PageSize is the fixed window size of the public listing.
const PageSize = 10

var (
	ErrFieldsRequired = errs.Errorf(errs.EINVALID, "all fields required")
	ErrAlreadyExists  = errs.Errorf(errs.ECONFLICT, "movie already exists")
	ErrNotFound       = errs.Errorf(errs.ENOTFOUND, "movie not found")
)

type Movie struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	ReleaseDate string  `json:"releaseDate"`
	Duration    int     `json:"duration"`
	Poster      string  `json:"poster"`
}

// Validate checks the fields required on create. Zero ratings and
// durations count as missing.
func (m Movie) Validate() error {
	if strings.TrimSpace(m.Name) == "" ||
		strings.TrimSpace(m.Description) == "" ||
		m.Rating == 0 ||
		strings.TrimSpace(m.ReleaseDate) == "" ||
		m.Duration == 0 {
		return ErrFieldsRequired
	}
	return nil
}

// Partial is an arbitrary subset of movie fields for in-place updates.
// Nil fields are left untouched. No field-level validation is applied
// here; a stricter allowlist can be substituted in the repository
// without touching the service layer.
type Partial struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Rating      *float64 `json:"rating"`
	ReleaseDate *string  `json:"releaseDate"`
	Duration    *int     `json:"duration"`
	Poster      *string  `json:"poster"`
}

func (p Partial) IsEmpty() bool {
	return p.Name == nil &&
		p.Description == nil &&
		p.Rating == nil &&
		p.ReleaseDate == nil &&
		p.Duration == nil &&
		p.Poster == nil
}

// Sort is a single field/direction pair. Field names use the JSON
// spelling (name, rating, releaseDate, duration).
type Sort struct {
	Field string
	Desc  bool
}

// DefaultSort orders by rating, highest first.
var DefaultSort = Sort{Field: "rating", Desc: true}

// ListQuery is the public listing request: an optional case-insensitive
// substring search over name and description, an optional sort and a
// 1-indexed page.
type ListQuery struct {
	Search string
	SortBy string
	Order  string
	Page   int
}

// Page is one window of the public listing.
type Page struct {
	Movies      []Movie `json:"movies"`
	CurrentPage int     `json:"currentPage"`
	TotalPages  int     `json:"totalPages"`
	TotalMovies int64   `json:"totalMovies"`
}
