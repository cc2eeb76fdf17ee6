// Command movieseed populates the movies table from a list of IMDb ids,
// one per line, using the OMDb API for titles, ratings and posters.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"cinevault/movie"
	"cinevault/omdb"
	"cinevault/pkg/config"
	"cinevault/postgres"

	"gorm.io/gorm"
)

func main() {
	var (
		idsPath string
		limit   int
		delay   time.Duration
	)

	flag.StringVar(&idsPath, "ids", "imdb_ids.txt", "Path to file with one IMDb id per line")
	flag.IntVar(&limit, "limit", 0, "Limit number of ids to import (0 = all)")
	flag.DurationVar(&delay, "delay", 200*time.Millisecond, "Pause between OMDb lookups")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	ids, err := readIMDBIDs(idsPath, limit)
	if err != nil {
		slog.Error("cannot read id list", "error", err)
		os.Exit(1)
	}

	client := omdb.NewClient(cfg.OMDB.APIKey, cfg.OMDB.BaseURL)
	count, err := seedMovies(context.Background(), db, client, ids, delay)
	if err != nil {
		slog.Error("import failed", "error", err, "imported", count)
		os.Exit(1)
	}

	slog.Info("import completed", "rows", count)
}

// readIMDBIDs loads ids from a text file. Blank lines and lines starting
// with # are skipped.
func readIMDBIDs(path string, limit int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var ids []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
		if limit > 0 && len(ids) >= limit {
			break
		}
	}
	return ids, scanner.Err()
}

func seedMovies(ctx context.Context, db *gorm.DB, client *omdb.Client, ids []string, delay time.Duration) (int, error) {
	stmt := `
INSERT INTO movies (name, description, rating, release_date, duration, poster)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (name) DO UPDATE SET
	description = EXCLUDED.description,
	rating = EXCLUDED.rating,
	release_date = EXCLUDED.release_date,
	duration = EXCLUDED.duration,
	poster = EXCLUDED.poster
`

	count := 0
	for i, id := range ids {
		if i > 0 && delay > 0 {
			time.Sleep(delay)
		}

		rec, err := client.ByIMDBID(ctx, id)
		if err != nil {
			return count, err
		}
		if !rec.Found() {
			slog.Warn("id not found upstream, skipping", "id", id)
			continue
		}

		m, ok := toMovie(rec)
		if !ok {
			slog.Warn("record incomplete, skipping", "id", id, "title", rec.Title)
			continue
		}

		err = db.WithContext(ctx).
			Exec(stmt, m.Name, m.Description, m.Rating, m.ReleaseDate, m.Duration, m.Poster).Error
		if err != nil {
			return count, err
		}

		count++
	}

	return count, nil
}

// toMovie converts an OMDb record into a catalog row. Records missing a
// title, rating or runtime are rejected rather than stored half-empty.
func toMovie(rec omdb.Record) (movie.Movie, bool) {
	name := strings.TrimSpace(rec.Title)
	description := strings.TrimSpace(rec.Plot)
	if name == "" || description == "" {
		return movie.Movie{}, false
	}

	rating, err := strconv.ParseFloat(rec.IMDBRating, 64)
	if err != nil || rating == 0 {
		return movie.Movie{}, false
	}

	duration, ok := parseRuntime(rec.Runtime)
	if !ok {
		return movie.Movie{}, false
	}

	released := releaseDate(rec)
	if released == "" {
		return movie.Movie{}, false
	}

	poster := strings.TrimSpace(rec.Poster)
	if poster == "" {
		poster = movie.PosterNotAvailable
	}

	return movie.Movie{
		Name:        name,
		Description: description,
		Rating:      rating,
		ReleaseDate: released,
		Duration:    duration,
		Poster:      poster,
	}, true
}

// parseRuntime extracts the minute count from OMDb's "148 min" format.
func parseRuntime(runtime string) (int, bool) {
	fields := strings.Fields(runtime)
	if len(fields) == 0 {
		return 0, false
	}
	minutes, err := strconv.Atoi(fields[0])
	if err != nil || minutes <= 0 {
		return 0, false
	}
	return minutes, true
}

// releaseDate normalizes OMDb's "02 Jan 2006" release field, falling
// back to January 1st of the listed year.
func releaseDate(rec omdb.Record) string {
	if t, err := time.Parse("02 Jan 2006", strings.TrimSpace(rec.Released)); err == nil {
		return t.Format("2006-01-02")
	}
	year := strings.TrimSpace(rec.Year)
	if len(year) >= 4 {
		return year[:4] + "-01-01"
	}
	return ""
}
