package storage

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// RedisSlotStore keeps slots as redis keys. Used for the token slot when a
// redis address is configured; the contract matches the file store.
type RedisSlotStore struct {
	client *redis.Client
	prefix string
}

func NewRedisSlotStore(address, prefix string) *RedisSlotStore {
	return &RedisSlotStore{
		client: redis.NewClient(&redis.Options{Addr: address}),
		prefix: prefix,
	}
}

func (s *RedisSlotStore) Save(slot string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "serialize slot %q", slot)
	}
	err = s.client.Set(context.Background(), s.key(slot), data, 0).Err()
	return errors.Wrapf(err, "write slot %q", slot)
}

func (s *RedisSlotStore) Load(slot string, v any) (bool, error) {
	data, err := s.client.Get(context.Background(), s.key(slot)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "read slot %q", slot)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *RedisSlotStore) Delete(slot string) error {
	err := s.client.Del(context.Background(), s.key(slot)).Err()
	return errors.Wrapf(err, "delete slot %q", slot)
}

func (s *RedisSlotStore) Close() error {
	return s.client.Close()
}

func (s *RedisSlotStore) key(slot string) string {
	return s.prefix + ":" + slot
}
