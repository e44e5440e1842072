package model

const EmptyTitle string = ""

// NoDescription is shown when the metadata provider has nothing usable for a title.
const NoDescription = "No description available."

type MovieRecord struct {
	Title  string
	Genres []string
	Viewed bool
}

func (r MovieRecord) Clone() MovieRecord {
	out := r
	if r.Genres != nil {
		out.Genres = append([]string(nil), r.Genres...)
	}
	return out
}

type Metadata struct {
	// Empty when the provider has no poster.
	PosterURL   string
	Description string
}

func UnavailableMetadata() Metadata {
	return Metadata{Description: NoDescription}
}

func (m Metadata) HasPoster() bool {
	return m.PosterURL != ""
}

type PickedMovie struct {
	Movie    MovieRecord
	Metadata Metadata
}
