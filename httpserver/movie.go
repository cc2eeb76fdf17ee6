package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"cinevault/movie"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterPublicMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
}

func (s *Server) RegisterAdminMovieRoutes(g *echo.Group) {
	admin := g.Group("/movies", requireAdmin)
	admin.GET("/admin", s.handleAdminListMovies)
	admin.GET("/:id", s.handleGetMovie)
	admin.POST("", s.handleAddMovie)
	admin.PUT("/:id", s.handleUpdateMovie)
	admin.DELETE("/:id", s.handleDeleteMovie)
}

// handleListMovies serves the public catalog page with optional search,
// sort and pagination query parameters.
func (s *Server) handleListMovies(c echo.Context) error {
	q := movie.ListQuery{
		Search: c.QueryParam("search"),
		SortBy: c.QueryParam("sortBy"),
		Order:  c.QueryParam("order"),
		Page:   pageParam(c),
	}

	page, err := s.MovieService.ListPublic(c.Request().Context(), q)
	if err != nil {
		return err
	}
	if page.Movies == nil {
		page.Movies = []movie.Movie{}
	}

	return c.JSON(http.StatusOK, page)
}

func (s *Server) handleAdminListMovies(c echo.Context) error {
	movies, total, err := s.MovieService.ListAdmin(c.Request().Context())
	if err != nil {
		return err
	}
	if movies == nil {
		movies = []movie.Movie{}
	}

	return c.JSON(http.StatusOK, AdminMoviesResponse{
		Movies:      movies,
		TotalMovies: total,
	})
}

func (s *Server) handleGetMovie(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}

	m, err := s.MovieService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, m)
}

func (s *Server) handleAddMovie(c echo.Context) error {
	var req AddMovieRequest

	if err := c.Bind(&req); err != nil {
		return err
	}

	created, err := s.MovieService.Add(c.Request().Context(), req.ToMovie())
	if err != nil {
		// Duplicate titles are reported as a client error rather than
		// a conflict, matching the public API contract.
		if errors.Is(err, movie.ErrAlreadyExists) {
			return echo.NewHTTPError(http.StatusBadRequest, "movie already exists")
		}
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

func (s *Server) handleUpdateMovie(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}

	var fields movie.Partial
	if err := c.Bind(&fields); err != nil {
		return err
	}

	updated, err := s.MovieService.Update(c.Request().Context(), id, fields)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteMovie(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}

	if err := s.MovieService.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "movie deleted"})
}

// movieID parses the :id path parameter. Malformed ids behave like
// unknown ones so probing requests get the same 404 either way.
func movieID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, movie.ErrNotFound
	}
	return id, nil
}

// pageParam reads the page query parameter, falling back to the first
// page on anything non-numeric.
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		return 1
	}
	return page
}
