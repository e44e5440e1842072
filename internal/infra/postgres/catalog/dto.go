package infra_postgres_catalog

import (
	"github.com/google/uuid"
	"github.com/humanbelnik/kinopick/internal/model"
	"github.com/lib/pq"
)

type MovieDB struct {
	ID       uuid.UUID      `db:"id"`
	Position int            `db:"position"`
	Title    string         `db:"title"`
	Genres   pq.StringArray `db:"genres"`
	Viewed   bool           `db:"viewed"`
}

func (m *MovieDB) ToDomain() model.MovieRecord {
	var genres []string
	if len(m.Genres) > 0 {
		genres = []string(m.Genres)
	}
	return model.MovieRecord{
		Title:  m.Title,
		Genres: genres,
		Viewed: m.Viewed,
	}
}

func FromDomain(position int, r model.MovieRecord) MovieDB {
	genres := pq.StringArray(r.Genres)
	if genres == nil {
		genres = pq.StringArray{}
	}
	return MovieDB{
		ID:       uuid.New(),
		Position: position,
		Title:    r.Title,
		Genres:   genres,
		Viewed:   r.Viewed,
	}
}
