package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisTimeout = 5 * time.Second

// RedisStore persiste a sessão em uma chave Redis, permitindo que
// múltiplos terminais (ex.: PDVs da mesma loja) compartilhem a sessão.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore cria um store sobre o cliente Redis informado.
// A chave default é "petshop:session" quando key é vazio.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = "petshop:session"
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Save(snap Snapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("erro ao serializar sessão: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("erro ao gravar sessão no redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Load() (Snapshot, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("erro ao ler sessão do redis: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("erro ao decodificar sessão: %w", err)
	}
	if snap.AccessToken == "" {
		return Snapshot{}, false, nil
	}
	return snap, true, nil
}

func (s *RedisStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("erro ao limpar sessão no redis: %w", err)
	}
	return nil
}
