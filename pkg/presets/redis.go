package presets

import (
	"context"
	"errors"
	"fmt"

	"github.com/matst80/slask-menu/pkg/common/jsoncompat"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps all presets of a vendor as JSON values in one hash.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, vendor string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    "menu:presets:" + vendor,
	}
}

func (s *RedisStore) get(ctx context.Context, name string) (*Preset, error) {
	data, err := s.client.HGet(ctx, s.key, name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get preset %q: %w", name, err)
	}
	p := &Preset{}
	if err = jsoncompat.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("decode preset %q: %w", name, err)
	}
	return p, nil
}

func (s *RedisStore) Save(ctx context.Context, preset Preset) error {
	if err := preset.Validate(); err != nil {
		return err
	}
	existing, err := s.get(ctx, preset.Name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	data, err := jsoncompat.Marshal(merge(existing, preset))
	if err != nil {
		return err
	}
	return s.client.HSet(ctx, s.key, preset.Name, data).Err()
}

func (s *RedisStore) Get(ctx context.Context, name string) (Preset, error) {
	p, err := s.get(ctx, name)
	if err != nil {
		return Preset{}, err
	}
	return *p, nil
}

func (s *RedisStore) List(ctx context.Context) ([]Preset, error) {
	values, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	ret := make([]Preset, 0, len(values))
	for name, data := range values {
		p := Preset{}
		if err = jsoncompat.Unmarshal([]byte(data), &p); err != nil {
			return nil, fmt.Errorf("decode preset %q: %w", name, err)
		}
		ret = append(ret, p)
	}
	return sortByName(ret), nil
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	removed, err := s.client.HDel(ctx, s.key, name).Result()
	if err != nil {
		return fmt.Errorf("delete preset %q: %w", name, err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}
