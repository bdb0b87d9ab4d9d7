package rediscache

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
)

var _ catalog.ProductCache = (*ProductCache)(nil)

// ProductCache caché de catálogo sobre Redis. Solo sirve lecturas de
// catálogo; nunca se interpone en los caminos del libro.
type ProductCache struct {
	client *redis.Client
}

// New construye el cliente con la dirección, password y DB configurados.
func New(addr, password string, db int) *ProductCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &ProductCache{client: client}
}

// Ping verifica la conexión al arrancar.
func (c *ProductCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra el cliente.
func (c *ProductCache) Close() error {
	return c.client.Close()
}

// Get devuelve el valor cacheado y si existía. Miss no es error.
func (c *ProductCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set guarda el valor con TTL.
func (c *ProductCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Del invalida las claves indicadas tras una escritura de catálogo.
func (c *ProductCache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
