package infra_metadata_none

import (
	"context"

	"github.com/humanbelnik/kinopick/internal/model"
	"github.com/humanbelnik/kinopick/internal/service/metadata"
)

// Provider is used when no metadata source is configured.
type Provider struct{}

var _ metadata.Provider = Provider{}

func New() Provider {
	return Provider{}
}

func (Provider) Fetch(context.Context, string) (model.Metadata, error) {
	return model.Metadata{}, metadata.ErrNotFound
}
