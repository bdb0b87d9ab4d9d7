package catalog

import (
	"context"
	"time"
)

// ProductCache caché read-through para lecturas del catálogo. Solo las
// consultas de catálogo pasan por aquí; los caminos del libro (proyección,
// discrepancias, transacciones compuestas) leen siempre la DB.
type ProductCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// NoopProductCache implementación nula para despliegues sin Redis.
type NoopProductCache struct{}

func (NoopProductCache) Get(_ context.Context, _ string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NoopProductCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}

func (NoopProductCache) Del(_ context.Context, _ ...string) error { return nil }
