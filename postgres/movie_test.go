package postgres_test

import (
	"context"
	"testing"

	"cinevault/movie"
	"cinevault/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCatalog(t testing.TB, repo *postgres.MovieRepository) map[string]movie.Movie {
	t.Helper()

	seed := []movie.Movie{
		{Name: "Inception", Description: "A thief who steals corporate secrets.", Rating: 8.8, ReleaseDate: "2010-07-16", Duration: 148, Poster: "https://img.example/inception.jpg"},
		{Name: "Interstellar", Description: "A team travels through a wormhole in space.", Rating: 8.6, ReleaseDate: "2014-11-07", Duration: 169, Poster: movie.PosterNotAvailable},
		{Name: "The Room", Description: "A banker's life unravels.", Rating: 3.7, ReleaseDate: "2003-06-27", Duration: 99, Poster: movie.PosterNotAvailable},
		{Name: "Arrival", Description: "A linguist deciphers an alien language.", Rating: 7.9, ReleaseDate: "2016-11-11", Duration: 116, Poster: movie.PosterNotAvailable},
	}

	created := make(map[string]movie.Movie, len(seed))
	for _, m := range seed {
		got, err := repo.Insert(context.Background(), m)
		require.NoError(t, err)
		created[got.Name] = got
	}
	return created
}

func cleanupMovieDatabase(t testing.TB, db *gorm.DB) {
	t.Helper()
	err := db.Exec("TRUNCATE TABLE movies RESTART IDENTITY CASCADE").Error
	require.NoError(t, err)
}

func TestMovieRepository_InsertAndFind(t *testing.T) {
	db := CreateConnection(t, "movie_test", "testuser", "testpass")
	MigrateTestDatabase(t, db, "../migrations")
	repo := postgres.NewMovieRepository(db)

	t.Run("insert assigns an id and preserves fields", func(t *testing.T) {
		cleanupMovieDatabase(t, db)

		created, err := repo.Insert(context.Background(), movie.Movie{
			Name:        "Inception",
			Description: "A thief who steals corporate secrets.",
			Rating:      8.8,
			ReleaseDate: "2010-07-16",
			Duration:    148,
			Poster:      movie.PosterNotAvailable,
		})

		require.NoError(t, err)
		assert.NotZero(t, created.ID)

		got, err := repo.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("find by unknown id reports not found", func(t *testing.T) {
		cleanupMovieDatabase(t, db)

		_, err := repo.FindByID(context.Background(), 12345)

		assert.ErrorIs(t, err, movie.ErrNotFound)
	})

	t.Run("find by name matches exactly", func(t *testing.T) {
		cleanupMovieDatabase(t, db)
		seedCatalog(t, repo)

		got, err := repo.FindByName(context.Background(), "Inception")
		require.NoError(t, err)
		assert.Equal(t, "Inception", got.Name)

		_, err = repo.FindByName(context.Background(), "inception")
		assert.ErrorIs(t, err, movie.ErrNotFound)
	})
}

func TestMovieRepository_Search(t *testing.T) {
	db := CreateConnection(t, "movie_search_test", "testuser", "testpass")
	MigrateTestDatabase(t, db, "../migrations")
	repo := postgres.NewMovieRepository(db)

	cleanupMovieDatabase(t, db)
	seedCatalog(t, repo)

	t.Run("matches name or description case-insensitively", func(t *testing.T) {
		movies, err := repo.Find(context.Background(), "INTER", movie.DefaultSort, 0, 0)
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, "Interstellar", movies[0].Name)

		movies, err = repo.Find(context.Background(), "alien", movie.DefaultSort, 0, 0)
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, "Arrival", movies[0].Name)
	})

	t.Run("count agrees with find", func(t *testing.T) {
		total, err := repo.Count(context.Background(), "a")
		require.NoError(t, err)

		movies, err := repo.Find(context.Background(), "a", movie.DefaultSort, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, total, int64(len(movies)))
	})

	t.Run("like metacharacters are literal", func(t *testing.T) {
		movies, err := repo.Find(context.Background(), "%", movie.DefaultSort, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, movies)
	})

	t.Run("no match returns empty, not an error", func(t *testing.T) {
		movies, err := repo.Find(context.Background(), "zzz-no-such-movie", movie.DefaultSort, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, movies)
	})
}

func TestMovieRepository_SortAndPaginate(t *testing.T) {
	db := CreateConnection(t, "movie_sort_test", "testuser", "testpass")
	MigrateTestDatabase(t, db, "../migrations")
	repo := postgres.NewMovieRepository(db)

	cleanupMovieDatabase(t, db)
	seedCatalog(t, repo)

	names := func(movies []movie.Movie) []string {
		out := make([]string, len(movies))
		for i, m := range movies {
			out[i] = m.Name
		}
		return out
	}

	t.Run("default sort is rating descending", func(t *testing.T) {
		movies, err := repo.Find(context.Background(), "", movie.DefaultSort, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"Inception", "Interstellar", "Arrival", "The Room"}, names(movies))
	})

	t.Run("sorts by name ascending", func(t *testing.T) {
		movies, err := repo.Find(context.Background(), "", movie.Sort{Field: "name"}, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"Arrival", "Inception", "Interstellar", "The Room"}, names(movies))
	})

	t.Run("sorts by release date descending", func(t *testing.T) {
		movies, err := repo.Find(context.Background(), "", movie.Sort{Field: "releaseDate", Desc: true}, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"Arrival", "Interstellar", "Inception", "The Room"}, names(movies))
	})

	t.Run("unknown sort field falls back to the default", func(t *testing.T) {
		movies, err := repo.Find(context.Background(), "", movie.Sort{Field: "nonsense"}, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"Inception", "Interstellar", "Arrival", "The Room"}, names(movies))
	})

	t.Run("offset and limit window the result", func(t *testing.T) {
		movies, err := repo.Find(context.Background(), "", movie.Sort{Field: "name"}, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"Inception", "Interstellar"}, names(movies))
	})

	t.Run("offset beyond the end returns empty", func(t *testing.T) {
		movies, err := repo.Find(context.Background(), "", movie.DefaultSort, 40, 10)
		require.NoError(t, err)
		assert.Empty(t, movies)
	})
}

func TestMovieRepository_UpdateByID(t *testing.T) {
	db := CreateConnection(t, "movie_update_test", "testuser", "testpass")
	MigrateTestDatabase(t, db, "../migrations")
	repo := postgres.NewMovieRepository(db)

	t.Run("changes only the provided fields", func(t *testing.T) {
		cleanupMovieDatabase(t, db)
		created := seedCatalog(t, repo)["Inception"]

		rating := 9.5
		updated, err := repo.UpdateByID(context.Background(), created.ID, movie.Partial{Rating: &rating})

		require.NoError(t, err)
		assert.Equal(t, 9.5, updated.Rating)
		assert.Equal(t, created.Name, updated.Name)
		assert.Equal(t, created.Description, updated.Description)
		assert.Equal(t, created.ReleaseDate, updated.ReleaseDate)
		assert.Equal(t, created.Duration, updated.Duration)
		assert.Equal(t, created.Poster, updated.Poster)
	})

	t.Run("empty patch returns the record unchanged", func(t *testing.T) {
		cleanupMovieDatabase(t, db)
		created := seedCatalog(t, repo)["Arrival"]

		updated, err := repo.UpdateByID(context.Background(), created.ID, movie.Partial{})

		require.NoError(t, err)
		assert.Equal(t, created, updated)
	})

	t.Run("unknown id reports not found without writing", func(t *testing.T) {
		cleanupMovieDatabase(t, db)
		seedCatalog(t, repo)

		rating := 1.0
		_, err := repo.UpdateByID(context.Background(), 9999, movie.Partial{Rating: &rating})

		assert.ErrorIs(t, err, movie.ErrNotFound)
	})
}

func TestMovieRepository_DeleteByID(t *testing.T) {
	db := CreateConnection(t, "movie_delete_test", "testuser", "testpass")
	MigrateTestDatabase(t, db, "../migrations")
	repo := postgres.NewMovieRepository(db)

	t.Run("removes the row", func(t *testing.T) {
		cleanupMovieDatabase(t, db)
		created := seedCatalog(t, repo)["The Room"]

		err := repo.DeleteByID(context.Background(), created.ID)
		require.NoError(t, err)

		_, err = repo.FindByID(context.Background(), created.ID)
		assert.ErrorIs(t, err, movie.ErrNotFound)
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		err := repo.DeleteByID(context.Background(), 424242)
		assert.ErrorIs(t, err, movie.ErrNotFound)
	})
}
