package service

import (
	"context"
	"fmt"
	"time"

	"posmejia/internal/ahorro"
	"posmejia/internal/dto"
	"posmejia/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type AhorroService interface {
	ListarMetas(ctx context.Context) (*dto.MetasResponse, error)
	Calendario(ctx context.Context, metaID int64, q dto.CalendarioQuery) (*dto.CalendarioResponse, error)
	// RegistrarDia upserts the single record of a day. ahorro=true without
	// an explicit monto stores the current recommended daily amount.
	RegistrarDia(ctx context.Context, metaID int64, req dto.RegistrarDiaRequest) (*dto.RegistroDiaResponse, error)
	Sugerencia(ctx context.Context, q dto.SugerenciaQuery) (*dto.SugerenciaResponse, error)
}

type ahorroService struct {
	repos Repos
	opts  Options
}

func NewAhorroService(repos Repos, opts Options) AhorroService {
	return &ahorroService{repos: repos, opts: opts.withDefaults()}
}

func (s *ahorroService) hoy() ahorro.Dia { return ahorro.DiaDe(s.opts.ahora()) }

func (s *ahorroService) registros(ctx context.Context, metaID int64) ([]ahorro.Registro, error) {
	regs, err := s.repos.Metas.ListRegistros(ctx, metaID)
	if err != nil {
		return nil, fmt.Errorf("cargar registros: %w", err)
	}
	return ahorro.DesdeModelo(regs), nil
}

// ── Metas ────────────────────────────────────────────────────────────────────

func (s *ahorroService) ListarMetas(ctx context.Context) (*dto.MetasResponse, error) {
	hoy := s.hoy()
	return cached(ctx, s.opts.Cache, "metas:"+hoy.String(), func() (*dto.MetasResponse, error) {
		metas, err := s.repos.Metas.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("cargar metas: %w", err)
		}
		ids := make([]int64, 0, len(metas))
		for _, m := range metas {
			ids = append(ids, m.ID)
		}
		regs, err := s.repos.Metas.ListRegistros(ctx, ids...)
		if err != nil {
			return nil, fmt.Errorf("cargar registros: %w", err)
		}
		porMeta := make(map[int64][]model.RegistroAhorroDia, len(metas))
		for _, r := range regs {
			porMeta[r.MetaID] = append(porMeta[r.MetaID], r)
		}

		resp := &dto.MetasResponse{
			Metas:       make([]dto.MetaResponse, 0, len(metas)),
			TotalDiario: decimal.Zero,
		}
		for _, m := range metas {
			r := ahorro.Resumir(m.Meta, ahorro.DiaDe(m.FechaLimite), hoy, ahorro.DesdeModelo(porMeta[m.ID]))
			if m.Estado == model.MetaActiva {
				resp.TotalDiario = resp.TotalDiario.Add(r.AhorroDiario)
			}
			resp.Metas = append(resp.Metas, toMetaResponse(m, r))
		}
		return resp, nil
	})
}

// ── Calendario ───────────────────────────────────────────────────────────────

func (s *ahorroService) Calendario(ctx context.Context, metaID int64, q dto.CalendarioQuery) (*dto.CalendarioResponse, error) {
	meta, err := s.repos.Metas.FindByID(ctx, metaID)
	if err != nil {
		return nil, fmt.Errorf("meta %d: %w", metaID, err)
	}
	regs, err := s.registros(ctx, metaID)
	if err != nil {
		return nil, err
	}

	hoy := s.hoy()
	anio, mes := hoy.Anio, hoy.Mes
	if q.Anio != 0 {
		anio = q.Anio
	}
	if q.Mes != 0 {
		mes = time.Month(q.Mes)
	}
	limite := ahorro.DiaDe(meta.FechaLimite)
	cal := ahorro.ConstruirCalendario(anio, mes, hoy, limite, regs)
	resp := toCalendarioResponse(meta.ID, cal, ahorro.AhorroDiario(meta.Meta, limite, hoy, regs))
	return &resp, nil
}

// ── Registro diario ──────────────────────────────────────────────────────────

func (s *ahorroService) RegistrarDia(ctx context.Context, metaID int64, req dto.RegistrarDiaRequest) (*dto.RegistroDiaResponse, error) {
	fecha, err := ahorro.ParseDia(req.Fecha)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrFechaInvalida, req.Fecha)
	}
	meta, err := s.repos.Metas.FindByID(ctx, metaID)
	if err != nil {
		return nil, fmt.Errorf("meta %d: %w", metaID, err)
	}
	regs, err := s.registros(ctx, metaID)
	if err != nil {
		return nil, err
	}

	hoy := s.hoy()
	limite := ahorro.DiaDe(meta.FechaLimite)
	if !ahorro.PuedeMarcar(fecha, hoy, limite) {
		return nil, fmt.Errorf("%w: %s", ErrDiaNoMarcable, fecha)
	}

	var monto decimal.Decimal
	switch {
	case req.Monto != nil:
		if req.Monto.IsNegative() {
			return nil, ErrMontoInvalido
		}
		monto = req.Monto.Round(2)
	case req.Ahorro != nil && *req.Ahorro:
		monto = ahorro.AhorroDiario(meta.Meta, limite, hoy, regs)
	case req.Ahorro != nil:
		monto = decimal.Zero
	default:
		return nil, ErrMontoInvalido
	}

	reg := &model.RegistroAhorroDia{MetaID: meta.ID, Fecha: fecha.Time(), Monto: monto}
	if err := s.repos.Metas.UpsertRegistro(ctx, reg); err != nil {
		return nil, fmt.Errorf("guardar registro: %w", err)
	}
	if s.opts.Cache != nil {
		if err := s.opts.Cache.Invalidate(ctx, "metas:"); err != nil {
			log.Warn().Err(err).Msg("cache: invalidate metas failed")
		}
	}

	// Replace the day in the snapshot instead of reloading it.
	actualizados := make([]ahorro.Registro, 0, len(regs)+1)
	for _, r := range regs {
		if r.Fecha != fecha {
			actualizados = append(actualizados, r)
		}
	}
	actualizados = append(actualizados, ahorro.Registro{Fecha: fecha, Monto: monto})

	return &dto.RegistroDiaResponse{
		MetaID: meta.ID,
		Fecha:  fecha.String(),
		Monto:  monto,
		Meta:   toMetaResponse(*meta, ahorro.Resumir(meta.Meta, limite, hoy, actualizados)),
	}, nil
}

// ── Sugerencia ───────────────────────────────────────────────────────────────

// Sugerencia previews the daily amount for a goal that does not exist yet.
func (s *ahorroService) Sugerencia(_ context.Context, q dto.SugerenciaQuery) (*dto.SugerenciaResponse, error) {
	meta, err := decimal.NewFromString(q.Meta)
	if err != nil || !meta.IsPositive() {
		return nil, ErrMontoInvalido
	}
	limite, err := ahorro.ParseDia(q.FechaLimite)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrFechaInvalida, q.FechaLimite)
	}
	hoy := s.hoy()
	return &dto.SugerenciaResponse{
		Dias:         ahorro.DiasHasta(limite, hoy),
		AhorroDiario: ahorro.AhorroDiarioSimple(meta, limite, hoy),
	}, nil
}
