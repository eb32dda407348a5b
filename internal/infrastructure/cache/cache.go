package cache

import (
	"context"
	"time"
)

// ReportCache cache de lecturas de reportes con TTL corto. Los totales no
// necesitan reflejar ventas en vuelo, así que no hay invalidación explícita:
// la entrada simplemente expira.
type ReportCache interface {
	// Get deserializa en v y devuelve true si la clave existe y está vigente.
	Get(ctx context.Context, key string, v any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
}

// Noop implementación nula: siempre miss. Se usa en tests y cuando no hay
// Redis configurado.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string, v any) (bool, error) { return false, nil }

func (Noop) Set(ctx context.Context, key string, v any, ttl time.Duration) error { return nil }
