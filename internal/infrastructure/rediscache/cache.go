// Package rediscache implementa sobre Redis los caches de sedes resueltas
// y de estadísticas de traslados.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nmarin/posflow-api/internal/application/scope"
	"github.com/nmarin/posflow-api/internal/application/transfer"
	"github.com/nmarin/posflow-api/internal/domain/entity"
	"github.com/nmarin/posflow-api/pkg/config"
)

// TTLs: las sedes cambian poco (se invalida explícito en updates);
// las estadísticas son tolerantes a datos levemente viejos.
const (
	locationTTL   = 10 * time.Minute
	statisticsTTL = 60 * time.Second
)

var _ scope.Cache = (*Cache)(nil)
var _ transfer.StatsCache = (*Cache)(nil)

// Cache adaptador Redis para sedes y estadísticas.
type Cache struct {
	client *redis.Client
}

// NewClient crea y verifica el cliente Redis.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// New construye el cache sobre un cliente ya conectado.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// GetLocation obtiene una sede del cache; miss retorna (nil, nil).
func (c *Cache) GetLocation(ctx context.Context, s entity.Scope) (*scope.Location, error) {
	payload, err := c.client.Get(ctx, locationKey(s)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var loc scope.Location
	if err := json.Unmarshal(payload, &loc); err != nil {
		// Entrada corrupta: descartarla y tratar como miss.
		_ = c.client.Del(ctx, locationKey(s)).Err()
		return nil, nil
	}
	return &loc, nil
}

// PutLocation guarda una sede resuelta en el cache.
func (c *Cache) PutLocation(ctx context.Context, loc *scope.Location) error {
	payload, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, locationKey(loc.Scope), payload, locationTTL).Err()
}

// InvalidateLocation borra una sede del cache.
func (c *Cache) InvalidateLocation(ctx context.Context, s entity.Scope) error {
	return c.client.Del(ctx, locationKey(s)).Err()
}

// GetStatistics obtiene estadísticas serializadas; miss retorna (nil, nil).
func (c *Cache) GetStatistics(ctx context.Context, key string) ([]byte, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return payload, nil
}

// PutStatistics guarda estadísticas serializadas con TTL corto.
func (c *Cache) PutStatistics(ctx context.Context, key string, payload []byte) error {
	return c.client.Set(ctx, key, payload, statisticsTTL).Err()
}

func locationKey(s entity.Scope) string {
	return fmt.Sprintf("locations:%s:%s", s.Type, s.ID)
}
