package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/humanbelnik/kinopick/internal/config"
	http_catalog "github.com/humanbelnik/kinopick/internal/delivery/http/catalog"
	http_init "github.com/humanbelnik/kinopick/internal/delivery/http/init"
	http_access_middleware "github.com/humanbelnik/kinopick/internal/delivery/http/middleware/access"
	http_auth_middleware "github.com/humanbelnik/kinopick/internal/delivery/http/middleware/auth"
	http_requestid_middleware "github.com/humanbelnik/kinopick/internal/delivery/http/middleware/requestid"
	http_movie "github.com/humanbelnik/kinopick/internal/delivery/http/movie"
	infra_file_catalog "github.com/humanbelnik/kinopick/internal/infra/file/catalog"
	infra_memory_catalog "github.com/humanbelnik/kinopick/internal/infra/memory/catalog"
	infra_metadata_imdb "github.com/humanbelnik/kinopick/internal/infra/metadata/imdb"
	infra_metadata_none "github.com/humanbelnik/kinopick/internal/infra/metadata/none"
	infra_metadata_omdb "github.com/humanbelnik/kinopick/internal/infra/metadata/omdb"
	infra_metadata_tmdb "github.com/humanbelnik/kinopick/internal/infra/metadata/tmdb"
	infra_postgres_catalog "github.com/humanbelnik/kinopick/internal/infra/postgres/catalog"
	infra_pg_init "github.com/humanbelnik/kinopick/internal/infra/postgres/init"
	infra_redis_init "github.com/humanbelnik/kinopick/internal/infra/redis/init"
	infra_metadata_cache "github.com/humanbelnik/kinopick/internal/infra/redis/metadata_cache"
	infra_s3 "github.com/humanbelnik/kinopick/internal/infra/s3"
	"github.com/humanbelnik/kinopick/internal/logger"
	"github.com/humanbelnik/kinopick/internal/service/metadata"
	storage_catalog "github.com/humanbelnik/kinopick/internal/storage/catalog"
	usecase_movie "github.com/humanbelnik/kinopick/internal/usecase/movie"
)

const metadataCacheKey = "metadata_cache"

func Go(cfg *config.Config) {
	lg := logger.Setup(cfg.Log, os.Stderr)

	movieUC, err := NewMovieUsecase(context.Background(), cfg, lg)
	if err != nil {
		log.Fatal(err)
	}

	lg.Info("starting HTTP server",
		slog.String("host", cfg.HTTP.Host),
		slog.String("port", cfg.HTTP.Port),
		slog.String("backend", string(cfg.Catalog.Backend)),
		slog.String("metadata", cfg.Metadata.Provider),
	)
	NewControllerPool(cfg, movieUC, lg).RunAll(cfg.HTTP.Host, cfg.HTTP.Port)
}

func NewControllerPool(cfg *config.Config, movieUC *usecase_movie.Usecase, lg *slog.Logger) *http_init.ControllerPool {
	authMiddleware := http_auth_middleware.New(cfg.HTTP.AdminToken)

	controllerPool := http_init.NewControllerPool(
		http_requestid_middleware.RequestID(),
		http_access_middleware.ReadOnlyBadGatewayMiddleware(cfg.HTTP.Mode),
	)
	controllerPool.Add(http_movie.New(movieUC, http_movie.WithLogger(lg)))
	controllerPool.Add(http_catalog.New(movieUC, authMiddleware, http_catalog.WithLogger(lg)))
	controllerPool.Register()

	return controllerPool
}

// NewMovieUsecase wires the configured catalog backend and metadata provider.
func NewMovieUsecase(ctx context.Context, cfg *config.Config, lg *slog.Logger) (*usecase_movie.Usecase, error) {
	backend, err := newCatalogBackend(ctx, cfg, lg)
	if err != nil {
		return nil, err
	}

	provider, err := newMetadataProvider(cfg.Metadata)
	if err != nil {
		return nil, err
	}

	opts := []metadata.Option{
		metadata.WithLogger(lg),
		metadata.WithRateLimit(cfg.Metadata.RPS),
	}
	if cfg.Redis.Enabled() {
		redisConn, err := infra_redis_init.Connect(cfg.Redis)
		if err != nil {
			return nil, err
		}
		opts = append(opts, metadata.WithCache(infra_metadata_cache.New(redisConn, metadataCacheKey, cfg.Metadata.CacheTTL)))
	}

	return usecase_movie.New(
		storage_catalog.New(backend),
		metadata.New(provider, opts...),
		usecase_movie.WithComma(cfg.Catalog.Delimiter),
	), nil
}

func newCatalogBackend(ctx context.Context, cfg *config.Config, lg *slog.Logger) (storage_catalog.Repository, error) {
	switch cfg.Catalog.Backend {
	case config.CatalogBackendFile:
		return infra_file_catalog.New(cfg.Catalog.Path,
			infra_file_catalog.WithComma(cfg.Catalog.Delimiter),
			infra_file_catalog.WithLogger(lg),
		), nil
	case config.CatalogBackendPostgres:
		pgConn, err := infra_pg_init.Connect(cfg.Postgres)
		if err != nil {
			return nil, err
		}
		repo := infra_postgres_catalog.New(pgConn)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	case config.CatalogBackendS3:
		client, err := infra_s3.NewClient(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return infra_s3.NewCatalogStorage(client, cfg.S3.Bucket, cfg.S3.Key, cfg.Catalog.Delimiter), nil
	case config.CatalogBackendMemory:
		return infra_memory_catalog.New(nil), nil
	default:
		return nil, fmt.Errorf("unknown catalog backend %q", cfg.Catalog.Backend)
	}
}

func newMetadataProvider(cfg config.Metadata) (metadata.Provider, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case "tmdb":
		return infra_metadata_tmdb.New(cfg.APIKey,
			infra_metadata_tmdb.WithBaseURL(cfg.BaseURL),
			infra_metadata_tmdb.WithHTTPClient(httpClient),
		)
	case "omdb":
		return infra_metadata_omdb.New(cfg.APIKey,
			infra_metadata_omdb.WithBaseURL(cfg.BaseURL),
			infra_metadata_omdb.WithHTTPClient(httpClient),
		)
	case "imdb":
		return infra_metadata_imdb.New(
			infra_metadata_imdb.WithBaseURL(cfg.BaseURL),
			infra_metadata_imdb.WithHTTPClient(httpClient),
		), nil
	case "none", "":
		return infra_metadata_none.New(), nil
	default:
		return nil, fmt.Errorf("unknown metadata provider %q", cfg.Provider)
	}
}
