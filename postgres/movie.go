package postgres

import (
	"context"
	"errors"
	"strings"

	"cinevault/movie"

	"gorm.io/gorm"
)

// MovieModel represents the database model for movies
type MovieModel struct {
	ID          int64   `gorm:"primaryKey"`
	Name        string  `gorm:"not null;uniqueIndex"`
	Description string  `gorm:"not null"`
	Rating      float64 `gorm:"not null"`
	ReleaseDate string  `gorm:"column:release_date;not null"`
	Duration    int     `gorm:"not null"`
	Poster      string  `gorm:"not null;default:N/A"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// sortColumns maps the query-facing sort field names to columns.
// Unknown fields fall back to the default sort.
var sortColumns = map[string]string{
	"name":        "name",
	"rating":      "rating",
	"releaseDate": "release_date",
	"duration":    "duration",
}

// MovieRepository implements movie.Repository on PostgreSQL.
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) Count(ctx context.Context, search string) (int64, error) {
	var total int64
	q := applySearch(r.db.WithContext(ctx).Model(&MovieModel{}), search)
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *MovieRepository) Find(ctx context.Context, search string, sort movie.Sort, offset, limit int) ([]movie.Movie, error) {
	q := applySearch(r.db.WithContext(ctx), search).Order(orderClause(sort))
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var models []MovieModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toDomainMovie(model)
	}
	return movies, nil
}

func (r *MovieRepository) FindByName(ctx context.Context, name string) (movie.Movie, error) {
	var model MovieModel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, movie.ErrNotFound
		}
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id int64) (movie.Movie, error) {
	var model MovieModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, movie.ErrNotFound
		}
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

func (r *MovieRepository) Insert(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	model := MovieModel{
		Name:        m.Name,
		Description: m.Description,
		Rating:      m.Rating,
		ReleaseDate: m.ReleaseDate,
		Duration:    m.Duration,
		Poster:      m.Poster,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return movie.Movie{}, err
	}
	return toDomainMovie(model), nil
}

// UpdateByID applies an arbitrary subset of fields to an existing row
// and returns the updated record. Fields are applied verbatim; this is
// the single place a stricter allowlist would go.
func (r *MovieRepository) UpdateByID(ctx context.Context, id int64, fields movie.Partial) (movie.Movie, error) {
	updates := partialColumns(fields)

	var model MovieModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, movie.ErrNotFound
		}
		return movie.Movie{}, err
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&MovieModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return movie.Movie{}, err
		}
	}

	return r.FindByID(ctx, id)
}

func (r *MovieRepository) DeleteByID(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&MovieModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return movie.ErrNotFound
	}
	return nil
}

// applySearch narrows the query to movies whose name or description
// contains the term as a case-insensitive literal substring.
func applySearch(q *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return q
	}
	pattern := "%" + escapeLike(search) + "%"
	return q.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
}

// escapeLike neutralizes LIKE metacharacters in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// orderClause builds the ORDER BY for a sort pair. The id tiebreak
// keeps pagination stable across equal keys.
func orderClause(sort movie.Sort) string {
	column, ok := sortColumns[sort.Field]
	if !ok {
		sort = movie.DefaultSort
		column = sortColumns[sort.Field]
	}
	direction := "ASC"
	if sort.Desc {
		direction = "DESC"
	}
	return column + " " + direction + ", id ASC"
}

func toDomainMovie(model MovieModel) movie.Movie {
	return movie.Movie{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Rating:      model.Rating,
		ReleaseDate: model.ReleaseDate,
		Duration:    model.Duration,
		Poster:      model.Poster,
	}
}

func partialColumns(p movie.Partial) map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Rating != nil {
		updates["rating"] = *p.Rating
	}
	if p.ReleaseDate != nil {
		updates["release_date"] = *p.ReleaseDate
	}
	if p.Duration != nil {
		updates["duration"] = *p.Duration
	}
	if p.Poster != nil {
		updates["poster"] = *p.Poster
	}
	return updates
}
