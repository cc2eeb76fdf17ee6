package httpserver

import (
	"cinevault/movie"
	"cinevault/user"
)

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}

type AdminMoviesResponse struct {
	Movies      []movie.Movie `json:"movies"`
	TotalMovies int64         `json:"totalMovies"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
