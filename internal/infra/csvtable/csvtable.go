// Package infra_csvtable reads and writes the catalog as a delimiter-separated table.
//
// The canonical layout is a Title,Genres,Viewed header with genres joined by "; " and the
// viewed flag written as Yes/No. Legacy layouts ("Film Title", "Genre", comma-joined genres,
// lower-case "yes") are accepted on read and normalized.
package infra_csvtable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/humanbelnik/kinopick/internal/model"
)

var (
	ErrSchema = errors.New("table is missing required columns")
)

const (
	ColumnTitle  = "Title"
	ColumnGenres = "Genres"
	ColumnViewed = "Viewed"

	viewedYes = "Yes"
	viewedNo  = "No"

	genreSeparator = "; "
)

var aliases = map[string]string{
	"title":      ColumnTitle,
	"film title": ColumnTitle,
	"genre":      ColumnGenres,
	"genres":     ColumnGenres,
	"viewed":     ColumnViewed,
	"watched":    ColumnViewed,
}

var required = []string{ColumnTitle, ColumnGenres, ColumnViewed}

type options struct {
	comma rune
}

type Option func(*options)

// WithComma sets the field delimiter of the table itself (not the genre list).
func WithComma(r rune) Option {
	return func(o *options) {
		if r != 0 {
			o.comma = r
		}
	}
}

func newOptions(opts []Option) options {
	o := options{comma: ','}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Decode parses a table with a header row. Rows without a title are skipped.
func Decode(r io.Reader, opts ...Option) (model.Catalog, error) {
	o := newOptions(opts)

	reader := csv.NewReader(r)
	reader.Comma = o.comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty table", ErrSchema)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	catalog := model.Catalog{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		title := strings.TrimSpace(cell(row, columns[ColumnTitle]))
		if title == model.EmptyTitle {
			continue
		}
		catalog = append(catalog, model.MovieRecord{
			Title:  title,
			Genres: SplitGenres(cell(row, columns[ColumnGenres])),
			Viewed: ParseViewed(cell(row, columns[ColumnViewed])),
		})
	}

	return catalog, nil
}

// Encode writes the catalog in the canonical layout.
func Encode(w io.Writer, c model.Catalog, opts ...Option) error {
	o := newOptions(opts)

	writer := csv.NewWriter(w)
	writer.Comma = o.comma

	if err := writer.Write(required); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range c {
		if err := writer.Write([]string{r.Title, JoinGenres(r.Genres), FormatViewed(r.Viewed)}); err != nil {
			return fmt.Errorf("failed to write row %q: %w", r.Title, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}
	return nil
}

func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(required))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		canonical, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		if _, dup := columns[canonical]; !dup {
			columns[canonical] = i
		}
	}

	var missing []string
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSchema, strings.Join(missing, ", "))
	}
	return columns, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// SplitGenres splits on ";" when present and on "," otherwise.
func SplitGenres(raw string) []string {
	sep := ","
	if strings.Contains(raw, ";") {
		sep = ";"
	}

	var genres []string
	for _, g := range strings.Split(raw, sep) {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

func JoinGenres(genres []string) string {
	return strings.Join(genres, genreSeparator)
}

func ParseViewed(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), viewedYes)
}

func FormatViewed(viewed bool) string {
	if viewed {
		return viewedYes
	}
	return viewedNo
}
