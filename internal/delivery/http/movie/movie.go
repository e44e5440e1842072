package http_movie

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/kinopick/internal/delivery/http/common"
	http_requestid_middleware "github.com/humanbelnik/kinopick/internal/delivery/http/middleware/requestid"
	"github.com/humanbelnik/kinopick/internal/model"
	usecase_movie "github.com/humanbelnik/kinopick/internal/usecase/movie"
)

const noMatchMessage = "no unwatched movies match"

type PickRequestDTO struct {
	Genre string `json:"genre" form:"genre" example:"Horror"`
}

type MarkViewedRequestDTO struct {
	Title string `json:"title" binding:"required" example:"The Thing"`
}

type MarkViewedResponseDTO struct {
	Updated bool `json:"updated"`
}

type MovieResponseDTO struct {
	Title  string   `json:"title" example:"The Thing"`
	Genres []string `json:"genres" example:"Horror,Sci-Fi"`
	Viewed bool     `json:"viewed" example:"false"`
}

type MoviesListResponseDTO struct {
	Movies []MovieResponseDTO `json:"movies"`
	Total  int                `json:"total"`
}

type GenresResponseDTO struct {
	Genres []string `json:"genres"`
}

type PickedMovieDTO struct {
	MovieResponseDTO
	PosterURL   string `json:"poster_url,omitempty" example:"https://image.tmdb.org/t/p/w500/thing.jpg"`
	Description string `json:"description" example:"A research team in Antarctica..."`
}

// PickResponseDTO carries the pick back to the caller, who owns it from here on.
type PickResponseDTO struct {
	Picked  *PickedMovieDTO `json:"picked"`
	Message string          `json:"message,omitempty"`
}

func ConvertFromMovieRecord(r model.MovieRecord) MovieResponseDTO {
	genres := r.Genres
	if genres == nil {
		genres = []string{}
	}
	return MovieResponseDTO{
		Title:  r.Title,
		Genres: genres,
		Viewed: r.Viewed,
	}
}

func ConvertFromCatalog(c model.Catalog) []MovieResponseDTO {
	movies := make([]MovieResponseDTO, len(c))
	for i, r := range c {
		movies[i] = ConvertFromMovieRecord(r)
	}
	return movies
}

func ConvertFromPickedMovie(p *model.PickedMovie) *PickedMovieDTO {
	if p == nil {
		return nil
	}
	return &PickedMovieDTO{
		MovieResponseDTO: ConvertFromMovieRecord(p.Movie),
		PosterURL:        p.Metadata.PosterURL,
		Description:      p.Metadata.Description,
	}
}

type Controller struct {
	uc *usecase_movie.Usecase

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_movie.Usecase,
	opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) log(ctx *gin.Context) *slog.Logger {
	return c.logger.With(slog.String("request_id", http_requestid_middleware.FromContext(ctx)))
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	movies := router.Group("/movies")
	movies.GET("", c.getMovies)
	movies.GET("/genres", c.getGenres)
	movies.GET("/pick", c.pickMovieByQuery)
	movies.POST("/pick", c.pickMovie)
	movies.POST("/viewed", c.markViewed)
}

// @Summary List the catalog
// @Tags Movies operations
// @Produce json
// @Success 200 {object} MoviesListResponseDTO
// @Failure 500 {object} http_common.ErrorResponse
// @Router /movies [get]
func (c *Controller) getMovies(ctx *gin.Context) {
	movies, err := c.uc.List(ctx.Request.Context())
	if err != nil {
		c.log(ctx).Error("failed to load movies", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error:   "Failed to load movies",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	ctx.JSON(http.StatusOK, MoviesListResponseDTO{
		Movies: ConvertFromCatalog(movies),
		Total:  len(movies),
	})
}

// @Summary Distinct genres across the catalog, sorted
// @Tags Movies operations
// @Produce json
// @Success 200 {object} GenresResponseDTO
// @Failure 500 {object} http_common.ErrorResponse
// @Router /movies/genres [get]
func (c *Controller) getGenres(ctx *gin.Context) {
	genres, err := c.uc.Genres(ctx.Request.Context())
	if err != nil {
		c.log(ctx).Error("failed to load genres", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error:   "Failed to load genres",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	ctx.JSON(http.StatusOK, GenresResponseDTO{Genres: genres})
}

// @Summary Pick a random unwatched movie
// @Description Never changes the catalog, so it stays available in read-only mode.
// @Tags Movies operations
// @Produce json
// @Param genre query string false "Genre filter"
// @Success 200 {object} PickResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /movies/pick [get]
func (c *Controller) pickMovieByQuery(ctx *gin.Context) {
	var req PickRequestDTO
	if err := ctx.ShouldBindQuery(&req); err != nil {
		c.log(ctx).Warn("invalid query", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid query",
			Code:  http.StatusBadRequest,
		})
		return
	}
	c.pick(ctx, req.Genre)
}

// @Summary Pick a random unwatched movie
// @Description An empty body or genre picks from every unwatched movie.
// @Tags Movies operations
// @Accept json
// @Produce json
// @Param request body PickRequestDTO false "Genre filter"
// @Success 200 {object} PickResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /movies/pick [post]
func (c *Controller) pickMovie(ctx *gin.Context) {
	var req PickRequestDTO
	// An empty body, chunked or not, decodes to io.EOF.
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.log(ctx).Warn("invalid request body", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}
	c.pick(ctx, req.Genre)
}

func (c *Controller) pick(ctx *gin.Context, genre string) {
	picked, err := c.uc.Pick(ctx.Request.Context(), genre)
	if err != nil {
		c.log(ctx).Error("failed to pick movie",
			slog.String("error", err.Error()),
			slog.String("genre", genre),
		)
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error:   "Failed to pick movie",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	if picked == nil {
		ctx.JSON(http.StatusOK, PickResponseDTO{Message: noMatchMessage})
		return
	}

	c.log(ctx).Info("movie picked",
		slog.String("title", picked.Movie.Title),
		slog.String("genre", genre),
	)
	ctx.JSON(http.StatusOK, PickResponseDTO{Picked: ConvertFromPickedMovie(picked)})
}

// @Summary Mark a movie as watched
// @Tags Movies operations
// @Accept json
// @Produce json
// @Param request body MarkViewedRequestDTO true "Title to mark"
// @Success 200 {object} MarkViewedResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /movies/viewed [post]
func (c *Controller) markViewed(ctx *gin.Context) {
	var req MarkViewedRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.log(ctx).Warn("invalid request body", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	updated, err := c.uc.MarkViewed(ctx.Request.Context(), req.Title)
	if err != nil {
		c.log(ctx).Error("failed to mark movie viewed",
			slog.String("error", err.Error()),
			slog.String("title", req.Title),
		)

		switch {
		case errors.Is(err, usecase_movie.ErrMovieNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Error:   "Movie not found",
				Message: err.Error(),
				Code:    http.StatusNotFound,
			})
		case errors.Is(err, usecase_movie.ErrInvalidInput):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Error:   "Invalid title",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Error:   "Failed to save catalog",
				Message: err.Error(),
				Code:    http.StatusInternalServerError,
			})
		}
		return
	}

	ctx.JSON(http.StatusOK, MarkViewedResponseDTO{Updated: updated})
}
