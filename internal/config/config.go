package config

import (
	"flag"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string
	// "RO" rejects every non-GET request.
	Mode       string
	AdminToken string
}

type CatalogBackend string

const (
	CatalogBackendFile     CatalogBackend = "file"
	CatalogBackendPostgres CatalogBackend = "postgres"
	CatalogBackendS3       CatalogBackend = "s3"
	CatalogBackendMemory   CatalogBackend = "memory"
)

type Catalog struct {
	Backend   CatalogBackend
	Path      string
	Delimiter rune
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
}

func (r RedisCache) Enabled() bool {
	return r.Host != ""
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type S3 struct {
	Endpoint        string
	Region          string
	Bucket          string
	Key             string
	AccessKeyID     string
	SecretAccessKey string
}

type Metadata struct {
	// tmdb, omdb, imdb or none
	Provider string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
	// Outbound requests per second; 0 disables limiting.
	RPS float64
}

type Log struct {
	Level  string
	Format string
}

type Config struct {
	HTTP     HTTPServer
	Catalog  Catalog
	Redis    RedisCache
	Postgres Postgres
	S3       S3
	Metadata Metadata
	Log      Log
}

const logtag = "[config]"

var verbose = true

// Load reads the env file given by -config (or .env) and builds the config from the environment.
func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	return LoadFrom(*configPath, true)
}

// LoadFrom is Load without flag parsing. With verbose off nothing is logged unless the env file fails.
func LoadFrom(path string, beVerbose bool) *Config {
	verbose = beVerbose

	if path != "" {
		if err := godotenv.Load(path); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		logf("%s using env from : %s", logtag, path)
	} else {
		logf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := &Config{
		HTTP:     *newHTTP(),
		Catalog:  *newCatalog(),
		Redis:    *newRedis(),
		Postgres: *newPostgres(),
		S3:       *newS3(),
		Metadata: *newMetadata(),
		Log:      *newLog(),
	}

	return cfg
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port:       getenv("HTTP_PORT", "8080"),
		Host:       getenv("HTTP_HOST", "localhost"),
		Mode:       getenv("HTTP_MODE", "RW"),
		AdminToken: getenv("ADMIN_TOKEN", ""),
	}
}

func newCatalog() *Catalog {
	return &Catalog{
		Backend:   CatalogBackend(strings.ToLower(getenv("CATALOG_BACKEND", string(CatalogBackendFile)))),
		Path:      getenv("CATALOG_PATH", "movies.csv"),
		Delimiter: getenvRune("CATALOG_DELIMITER", ','),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", ""),
		Password: getenv("REDIS_PASSWORD", ""),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getenv("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "kinopick"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newS3() *S3 {
	return &S3{
		Endpoint:        getenv("S3_ENDPOINT", ""),
		Region:          getenv("S3_REGION", "us-east-1"),
		Bucket:          getenv("S3_BUCKET", "kinopick"),
		Key:             getenv("S3_KEY", "catalog/movies.csv"),
		AccessKeyID:     getenv("AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: getenv("AWS_SECRET_ACCESS_KEY", ""),
	}
}

func newMetadata() *Metadata {
	return &Metadata{
		Provider: strings.ToLower(getenv("METADATA_PROVIDER", "none")),
		APIKey:   getenv("METADATA_API_KEY", ""),
		BaseURL:  getenv("METADATA_BASE_URL", ""),
		Timeout:  getenvDuration("METADATA_TIMEOUT", 10*time.Second),
		CacheTTL: getenvDuration("METADATA_CACHE_TTL", time.Hour),
		RPS:      getenvFloat("METADATA_RPS", 2),
	}
}

func newLog() *Log {
	return &Log{
		Level:  getenv("LOG_LEVEL", "info"),
		Format: getenv("LOG_FORMAT", "text"),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		logf("%s %s undefined. Using default value %s", logtag, key, defaultValue)
		return defaultValue
	}
	logf("%s %s = %s", logtag, key, redact(key, val))
	return val
}

func getenvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getenv(key, defaultValue.String())
	d, err := time.ParseDuration(raw)
	if err != nil {
		logf("%s %s = %q is not a duration. Using default value %s", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getenvFloat(key string, defaultValue float64) float64 {
	raw := getenv(key, strconv.FormatFloat(defaultValue, 'f', -1, 64))
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		logf("%s %s = %q is not a non-negative number. Using default value %v", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return f
}

func getenvRune(key string, defaultValue rune) rune {
	raw := getenv(key, string(defaultValue))
	if raw == `\t` {
		return '\t'
	}
	r, size := utf8.DecodeRuneInString(raw)
	if r == utf8.RuneError || size != len(raw) {
		logf("%s %s = %q is not a single character. Using default value %q", logtag, key, raw, defaultValue)
		return defaultValue
	}
	return r
}

func redact(key, val string) string {
	upper := strings.ToUpper(key)
	for _, marker := range []string{"PASSWORD", "SECRET", "TOKEN", "KEY_ID", "API_KEY"} {
		if strings.Contains(upper, marker) {
			return "***"
		}
	}
	return val
}

func logf(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}
