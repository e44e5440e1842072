package infra_file_catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	infra_csvtable "github.com/humanbelnik/kinopick/internal/infra/csvtable"
	"github.com/humanbelnik/kinopick/internal/model"
)

var (
	ErrLockBusy = errors.New("catalog file is locked by another writer")
)

const lockRetryDelay = 50 * time.Millisecond

// Storage persists the catalog as a delimiter-separated file. Every save rewrites the
// whole file through a temp file and a rename, so readers see either the old or the new table.
type Storage struct {
	path  string
	comma rune
	lock  *flock.Flock

	// swapped in tests to fail the final step
	rename func(oldpath, newpath string) error

	logger *slog.Logger
}

type Option func(*Storage)

func WithComma(r rune) Option {
	return func(s *Storage) {
		s.comma = r
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Storage) {
		s.logger = logger
	}
}

func New(path string, opts ...Option) *Storage {
	s := &Storage{
		path:   path,
		comma:  ',',
		lock:   flock.New(path + ".lock"),
		rename: os.Rename,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns an empty catalog when the file does not exist or is blank.
func (s *Storage) Load(ctx context.Context) (model.Catalog, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("catalog file not found, starting empty", slog.String("path", s.path))
		return model.Catalog{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return model.Catalog{}, nil
	}

	c, err := infra_csvtable.Decode(bytes.NewReader(raw), infra_csvtable.WithComma(s.comma))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}
	return c, nil
}

func (s *Storage) Save(ctx context.Context, c model.Catalog) error {
	var buf bytes.Buffer
	if err := infra_csvtable.Encode(&buf, c, infra_csvtable.WithComma(s.comma)); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create catalog dir: %w", err)
	}

	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("failed to lock catalog file: %w", err)
	}
	if !locked {
		return ErrLockBusy
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Error("failed to unlock catalog file", slog.String("error", err.Error()))
		}
	}()

	return s.writeAtomic(dir, buf.Bytes())
}

func (s *Storage) writeAtomic(dir string, data []byte) error {
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return cause
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("failed to write temp file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("failed to sync temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return cleanup(fmt.Errorf("failed to close temp file: %w", err))
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return cleanup(fmt.Errorf("failed to chmod temp file: %w", err))
	}
	if err := s.rename(tmpName, s.path); err != nil {
		return cleanup(fmt.Errorf("failed to replace catalog file: %w", err))
	}

	s.logger.Debug("catalog saved", slog.String("path", s.path), slog.Int("bytes", len(data)))
	return nil
}
