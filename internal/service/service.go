package service

import (
	"context"
	"errors"
	"time"

	"posmejia/internal/repository"

	"github.com/rs/zerolog/log"
)

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrDiaNoMarcable       = errors.New("el día no se puede marcar")
	ErrArchivoInvalido     = errors.New("nombre de archivo inválido")
	ErrReporteNoDisponible = errors.New("el reporte aún no está disponible")
	ErrMontoInvalido       = errors.New("monto inválido")
	ErrFechaInvalida       = errors.New("fecha inválida")
)

// Cache is the read-model cache; infra.RedisCache implements it.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Invalidate(ctx context.Context, sub string) error
}

// Repos bundles the read repositories shared by the services.
type Repos struct {
	Ventas    repository.VentaRepository
	Productos repository.ProductoRepository
	Gastos    repository.GastoAdminRepository
	Nominas   repository.NominaRepository
	Lienzo    repository.LienzoRepository
	Clientes  repository.ClienteRepository
	Metas     repository.MetaAhorroRepository
}

// Options carries the clock, timezone and policy flags.
type Options struct {
	Location *time.Location
	// Now defaults to time.Now.
	Now   func() time.Time
	Cache Cache
	// CostoHistoricoEstricto disables the product cost fallback.
	CostoHistoricoEstricto bool
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// ahora is the current instant in the business timezone.
func (o Options) ahora() time.Time { return o.Now().In(o.Location) }

// cached serves key from the cache or computes and stores it. Cache errors
// are logged and never fail the request.
func cached[T any](ctx context.Context, c Cache, key string, build func() (*T, error)) (*T, error) {
	if c != nil {
		var hit T
		ok, err := c.Get(ctx, key, &hit)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache: get failed")
		}
		if ok {
			return &hit, nil
		}
	}
	v, err := build()
	if err != nil {
		return nil, err
	}
	if c != nil {
		if err := c.Set(ctx, key, v); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache: set failed")
		}
	}
	return v, nil
}
