package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"cinevault/auth"
	"cinevault/httpserver"
	"cinevault/movie"
	"cinevault/omdb"
	"cinevault/pkg/config"
	"cinevault/pkg/hash"
	"cinevault/pkg/jwt"
	"cinevault/pkg/sentry"
	"cinevault/postgres"
	"cinevault/user"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("Cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	accessTTL := defaultAccessTTL
	if cfg.Auth.TokenTTL > 0 {
		accessTTL = time.Duration(cfg.Auth.TokenTTL) * time.Minute
	}
	refreshTTL := defaultRefreshTTL
	if cfg.Auth.RefreshTTL > 0 {
		refreshTTL = time.Duration(cfg.Auth.RefreshTTL) * time.Minute
	}

	movieRepo := postgres.NewMovieRepository(db)
	userRepo := postgres.NewUserRepository(db)
	attemptRepo := postgres.NewLoginAttemptRepository(db)
	hasher := hash.NewBcryptHasher()
	tokens := jwt.NewJWTProvider(cfg.Auth.JWTSecret, accessTTL, refreshTTL)
	posters := omdb.NewClient(cfg.OMDB.APIKey, cfg.OMDB.BaseURL)

	server := httpserver.Default(cfg)
	server.MovieService = movie.NewUsecase(movieRepo, posters)
	server.UserService = user.NewUsecase(userRepo, hasher)
	server.AuthService = auth.NewUsecase(userRepo, attemptRepo, hasher, tokens)
	if cfg.Port > 0 {
		server.Addr = fmt.Sprintf(":%d", cfg.Port)
	}

	slog.Info("server started!")
	if err := server.Start(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}
