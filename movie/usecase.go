package movie

import (
	"context"
	"errors"
	"strings"
)

type Service interface {
	ListPublic(ctx context.Context, q ListQuery) (Page, error)
	ListAdmin(ctx context.Context) ([]Movie, int64, error)
	GetByID(ctx context.Context, id int64) (Movie, error)
	Add(ctx context.Context, m Movie) (Movie, error)
	Update(ctx context.Context, id int64, fields Partial) (Movie, error)
	Delete(ctx context.Context, id int64) error
}

type Repository interface {
	// Count reports how many movies match the search term, all movies
	// when the term is empty.
	Count(ctx context.Context, search string) (int64, error)
	// Find returns movies matching the search term as a
	// case-insensitive substring of name or description, sorted and
	// windowed. limit <= 0 means no limit.
	Find(ctx context.Context, search string, sort Sort, offset, limit int) ([]Movie, error)
	FindByName(ctx context.Context, name string) (Movie, error)
	FindByID(ctx context.Context, id int64) (Movie, error)
	Insert(ctx context.Context, m Movie) (Movie, error)
	UpdateByID(ctx context.Context, id int64, fields Partial) (Movie, error)
	DeleteByID(ctx context.Context, id int64) error
}

// PosterFetcher resolves a movie title to a poster image URL, or
// PosterNotAvailable when the title is unknown upstream.
type PosterFetcher interface {
	PosterByTitle(ctx context.Context, title string) (string, error)
}

type Usecase struct {
	r       Repository
	posters PosterFetcher
}

func NewUsecase(r Repository, posters PosterFetcher) *Usecase {
	return &Usecase{r: r, posters: posters}
}

// ListPublic runs the count+find pair for one page of the catalog. The
// pair is not transactional: under concurrent writes the totals may be
// stale relative to the returned page, which is accepted.
func (uc *Usecase) ListPublic(ctx context.Context, q ListQuery) (Page, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}

	sort := DefaultSort
	if q.SortBy != "" {
		sort = Sort{Field: q.SortBy, Desc: q.Order == "desc"}
	}

	total, err := uc.r.Count(ctx, q.Search)
	if err != nil {
		return Page{}, err
	}

	movies, err := uc.r.Find(ctx, q.Search, sort, (page-1)*PageSize, PageSize)
	if err != nil {
		return Page{}, err
	}

	return Page{
		Movies:      movies,
		CurrentPage: page,
		TotalPages:  int((total + PageSize - 1) / PageSize),
		TotalMovies: total,
	}, nil
}

// ListAdmin returns the whole catalog sorted by rating, highest first.
func (uc *Usecase) ListAdmin(ctx context.Context) ([]Movie, int64, error) {
	movies, err := uc.r.Find(ctx, "", DefaultSort, 0, 0)
	if err != nil {
		return nil, 0, err
	}
	return movies, int64(len(movies)), nil
}

func (uc *Usecase) GetByID(ctx context.Context, id int64) (Movie, error) {
	return uc.r.FindByID(ctx, id)
}

// Add validates the movie, rejects duplicate names, enriches the record
// with a poster looked up by the trimmed name and persists it. Poster
// enrichment completes, or fails, strictly before the insert.
func (uc *Usecase) Add(ctx context.Context, m Movie) (Movie, error) {
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}

	m.Name = strings.TrimSpace(m.Name)
	m.Description = strings.TrimSpace(m.Description)

	_, err := uc.r.FindByName(ctx, m.Name)
	if err == nil {
		return Movie{}, ErrAlreadyExists
	}
	if !errors.Is(err, ErrNotFound) {
		return Movie{}, err
	}

	poster, err := uc.posters.PosterByTitle(ctx, m.Name)
	if err != nil {
		return Movie{}, err
	}
	m.Poster = poster

	return uc.r.Insert(ctx, m)
}

// Update replaces any subset of fields on an existing record. Fields
// are applied as-is; uniqueness and ranges are not re-checked.
func (uc *Usecase) Update(ctx context.Context, id int64, fields Partial) (Movie, error) {
	return uc.r.UpdateByID(ctx, id, fields)
}

func (uc *Usecase) Delete(ctx context.Context, id int64) error {
	return uc.r.DeleteByID(ctx, id)
}
