package httpserver

import (
	"errors"
	"net/http"

	"cinevault/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/auth/register", s.handleRegister)
	g.POST("/auth/login", s.handleLogin)
	g.POST("/auth/refresh", s.handleRefresh)
}

func (s *Server) RegisterPrivateAuthRoutes(g *echo.Group) {
	g.GET("/auth/me", s.handleMe)
}

func (s *Server) handleRegister(c echo.Context) error {
	var req RegisterRequest

	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := s.UserService.AddUser(c.Request().Context(), req.ToUser())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toUserResponse(created))
}

func (s *Server) handleLogin(c echo.Context) error {
	var req LoginRequest

	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tokens, err := s.AuthService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrAccountLocked) {
			return echo.NewHTTPError(http.StatusTooManyRequests, "account temporarily locked")
		}
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return err
	}

	return c.JSON(http.StatusOK, TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

func (s *Server) handleRefresh(c echo.Context) error {
	var req RefreshRequest

	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tokens, err := s.AuthService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidRefreshToken) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
		}
		return err
	}

	return c.JSON(http.StatusOK, TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// handleMe resolves the bearer token back to the stored account so the
// response reflects current data, not the claims snapshot.
func (s *Server) handleMe(c echo.Context) error {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed jwt")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed jwt")
	}
	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed jwt")
	}

	u, err := s.UserService.GetUserByID(c.Request().Context(), int64(rawID))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(u))
}
