package httpserver

import (
	"cinevault/movie"
	"cinevault/user"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (r RegisterRequest) ToUser() user.User {
	return user.User{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AddMovieRequest carries no validate tags: field presence rules live
// in the domain so the create endpoint reports them consistently.
type AddMovieRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	ReleaseDate string  `json:"releaseDate"`
	Duration    int     `json:"duration"`
}

func (r AddMovieRequest) ToMovie() movie.Movie {
	return movie.Movie{
		Name:        r.Name,
		Description: r.Description,
		Rating:      r.Rating,
		ReleaseDate: r.ReleaseDate,
		Duration:    r.Duration,
	}
}
