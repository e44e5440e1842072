package http_catalog

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/kinopick/internal/delivery/http/common"
	http_auth_middleware "github.com/humanbelnik/kinopick/internal/delivery/http/middleware/auth"
	http_requestid_middleware "github.com/humanbelnik/kinopick/internal/delivery/http/middleware/requestid"
	usecase_movie "github.com/humanbelnik/kinopick/internal/usecase/movie"
)

const (
	formField = "file"
	// Uploaded tables above this size are rejected.
	maxUploadBytes = 8 << 20
)

type Controller struct {
	uc             *usecase_movie.Usecase
	authMiddleware *http_auth_middleware.Middleware

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_movie.Usecase,
	authMiddleware *http_auth_middleware.Middleware,
	opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:             uc,
		authMiddleware: authMiddleware,
		logger:         slog.Default(),
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
	catalog := router.Group("/catalog")
	catalog.Use(c.authMiddleware.AuthRequired())
	catalog.PUT("", c.replaceCatalog)
	catalog.GET("/export", c.exportCatalog)
}

// @Summary Replace the whole catalog with an uploaded table
// @Tags Catalog operations
// @Accept multipart/form-data
// @Param file formData file true "Title,Genres,Viewed table"
// @Success 204
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 401 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /catalog [put]
func (c *Controller) replaceCatalog(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxUploadBytes)

	header, err := ctx.FormFile(formField)
	if err != nil {
		c.log(ctx).Warn("no table in upload", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error:   "Missing table",
			Message: "expected multipart field " + formField,
			Code:    http.StatusBadRequest,
		})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.log(ctx).Error("failed to open upload", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error: "Failed to read upload",
			Code:  http.StatusInternalServerError,
		})
		return
	}
	defer file.Close()

	if err := c.uc.Replace(ctx.Request.Context(), file); err != nil {
		if errors.Is(err, usecase_movie.ErrSchema) {
			c.log(ctx).Warn("rejected table",
				slog.String("filename", header.Filename),
				slog.String("error", err.Error()),
			)
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Error:   "Invalid table",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
			return
		}

		c.log(ctx).Error("failed to replace catalog", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error:   "Failed to save catalog",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.log(ctx).Info("catalog replaced", slog.String("filename", header.Filename))
	ctx.Status(http.StatusNoContent)
}

// @Summary Download the catalog in canonical form
// @Tags Catalog operations
// @Produce text/csv
// @Success 200
// @Failure 500 {object} http_common.ErrorResponse
// @Router /catalog/export [get]
func (c *Controller) exportCatalog(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := c.uc.Export(ctx.Request.Context(), &buf); err != nil {
		c.log(ctx).Error("failed to export catalog", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error:   "Failed to export catalog",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="movies.csv"`)
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
