package usecase_movie

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"sync"

	infra_csvtable "github.com/humanbelnik/kinopick/internal/infra/csvtable"
	"github.com/humanbelnik/kinopick/internal/model"
	"golang.org/x/text/cases"
)

var (
	ErrSchema              = infra_csvtable.ErrSchema
	ErrPersistence         = errors.New("failed to persist catalog")
	ErrFailedToLoadCatalog = errors.New("failed to load catalog")
	ErrInvalidInput        = errors.New("invalid input")
	ErrMovieNotFound       = errors.New("movie not found")
)

//go:generate mockery --name=CatalogStorage --output=./mocks/movie/storage --filename=storage.go
type CatalogStorage interface {
	Load(ctx context.Context) (model.Catalog, error)
	Save(ctx context.Context, c model.Catalog) error
	Invalidate()
}

//go:generate mockery --name=MetadataFetcher --output=./mocks/movie/metadata --filename=metadata.go
type MetadataFetcher interface {
	Fetch(ctx context.Context, title string) model.Metadata
}

type Usecase struct {
	storage  CatalogStorage
	metadata MetadataFetcher
	comma    rune
	intN     func(n int) int

	// Serializes read-modify-write cycles on the catalog.
	mu sync.Mutex
}

type Option func(*Usecase)

// WithComma sets the field delimiter expected in uploaded tables.
func WithComma(r rune) Option {
	return func(u *Usecase) {
		if r != 0 {
			u.comma = r
		}
	}
}

// WithIntN replaces the random source used by Pick. f must return a value in [0, n).
func WithIntN(f func(n int) int) Option {
	return func(u *Usecase) {
		if f != nil {
			u.intN = f
		}
	}
}

func New(
	storage CatalogStorage,
	metadata MetadataFetcher,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		storage:  storage,
		metadata: metadata,
		comma:    ',',
		intN:     rand.IntN,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Pick draws uniformly among unviewed movies whose genres contain genre as a
// case-insensitive substring. A nil result with nil error means nothing matched.
func (u *Usecase) Pick(ctx context.Context, genre string) (*model.PickedMovie, error) {
	c, err := u.storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadCatalog, err)
	}

	eligible := Eligible(c, genre)
	if len(eligible) == 0 {
		return nil, nil
	}

	chosen := eligible[u.intN(len(eligible))]
	return &model.PickedMovie{
		Movie:    chosen,
		Metadata: u.metadata.Fetch(ctx, chosen.Title),
	}, nil
}

// Eligible returns the unviewed records matching the genre filter, in catalog order.
func Eligible(c model.Catalog, genre string) model.Catalog {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(genre))

	out := model.Catalog{}
	for _, r := range c {
		if r.Viewed {
			continue
		}
		if needle != "" && !matchesGenre(fold, r.Genres, needle) {
			continue
		}
		out = append(out, r.Clone())
	}
	return out
}

func matchesGenre(fold cases.Caser, genres []string, needle string) bool {
	for _, g := range genres {
		if strings.Contains(fold.String(g), needle) {
			return true
		}
	}
	return false
}

func (u *Usecase) Genres(ctx context.Context) ([]string, error) {
	c, err := u.storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadCatalog, err)
	}
	return c.Genres(), nil
}

func (u *Usecase) List(ctx context.Context) (model.Catalog, error) {
	c, err := u.storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadCatalog, err)
	}
	return c, nil
}

// MarkViewed flags every record titled title as viewed and persists the catalog.
// It reports false without writing only when every matching record is already viewed.
func (u *Usecase) MarkViewed(ctx context.Context, title string) (bool, error) {
	if title == model.EmptyTitle {
		return false, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	c, err := u.storage.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrFailedToLoadCatalog, err)
	}

	idx := c.IndexesByTitle(title)
	if len(idx) == 0 {
		return false, fmt.Errorf("%w: %q", ErrMovieNotFound, title)
	}
	pending := false
	for _, i := range idx {
		if !c[i].Viewed {
			pending = true
			break
		}
	}
	if !pending {
		return false, nil
	}

	next := c.Clone()
	for _, i := range idx {
		next[i].Viewed = true
	}
	if err := u.storage.Save(ctx, next); err != nil {
		return false, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return true, nil
}

// Replace validates an uploaded table and overwrites the stored catalog with it.
// On a schema error nothing is written.
func (u *Usecase) Replace(ctx context.Context, table io.Reader) error {
	c, err := infra_csvtable.Decode(table, infra_csvtable.WithComma(u.comma))
	if err != nil {
		if errors.Is(err, ErrSchema) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.storage.Save(ctx, c); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	u.storage.Invalidate()

	return nil
}

// Export writes the current catalog in canonical form.
func (u *Usecase) Export(ctx context.Context, w io.Writer) error {
	c, err := u.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToLoadCatalog, err)
	}
	return infra_csvtable.Encode(w, c, infra_csvtable.WithComma(u.comma))
}
