package infra_metadata_cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"github.com/humanbelnik/kinopick/internal/model"
)

type Driver struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

type entry struct {
	PosterURL   string `json:"poster_url"`
	Description string `json:"description"`
}

func New(
	client *redis.Client,
	key string,
	ttl time.Duration,
) *Driver {
	return &Driver{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (d *Driver) Set(key string, m model.Metadata) error {
	raw, err := json.Marshal(entry{PosterURL: m.PosterURL, Description: m.Description})
	if err != nil {
		return err
	}

	fullKey := d.getFullKey(key)
	err = d.client.Set(fullKey, raw, d.ttl).Err()
	if err != nil {
		return err
	}

	return nil
}

// Get reports ok=false on a miss.
func (d *Driver) Get(key string) (model.Metadata, bool, error) {
	fullKey := d.getFullKey(key)

	val, err := d.client.Get(fullKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return model.Metadata{}, false, nil
		}
		return model.Metadata{}, false, err
	}

	var e entry
	if err := json.Unmarshal(val, &e); err != nil {
		return model.Metadata{}, false, fmt.Errorf("corrupt cache entry %s: %w", fullKey, err)
	}

	return model.Metadata{PosterURL: e.PosterURL, Description: e.Description}, true, nil
}

func (d *Driver) getFullKey(key string) string {
	if d.key != "" {
		return d.key + ":" + key
	}
	return key
}
