package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"posmejia/internal/dto"
	"posmejia/internal/finanzas"
	"posmejia/internal/model"
	"posmejia/internal/repository"
	"posmejia/internal/sueldos"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	limiteTopProductos    = 10
	limiteVentasRecientes = 10
)

type FinanzasService interface {
	Resumen(ctx context.Context, q dto.PeriodoQuery) (*dto.ResumenResponse, error)
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	GastosAdmin(ctx context.Context, q dto.GastosQuery) (*dto.GastosAdminResponse, error)
	Sueldos(ctx context.Context, q dto.SueldosQuery) (*dto.SueldosResponse, error)
	LienzoBalance(ctx context.Context, q dto.LienzoQuery) (*dto.LienzoBalanceResponse, error)
	Deudores(ctx context.Context, q dto.DeudoresQuery) (*dto.DeudoresResponse, error)
}

type finanzasService struct {
	repos Repos
	opts  Options
}

func NewFinanzasService(repos Repos, opts Options) FinanzasService {
	return &finanzasService{repos: repos, opts: opts.withDefaults()}
}

// ── Snapshot loading ─────────────────────────────────────────────────────────

// cargarEntrada loads every table the aggregator reads for p in parallel.
func cargarEntrada(ctx context.Context, repos Repos, opts Options, p finanzas.Periodo) (finanzas.Entrada, error) {
	e := finanzas.Entrada{Periodo: p, CostoHistoricoEstricto: opts.CostoHistoricoEstricto}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := repos.Ventas.ListEnRango(gctx, p.Desde, p.Hasta)
		if err != nil {
			return fmt.Errorf("cargar ventas: %w", err)
		}
		e.Ventas = v
		return nil
	})
	g.Go(func() error {
		gs, err := repos.Gastos.List(gctx, repository.GastoFilter{Desde: &p.Desde, Hasta: &p.Hasta})
		if err != nil {
			return fmt.Errorf("cargar gastos: %w", err)
		}
		e.GastosAdmin = gs
		return nil
	})
	g.Go(func() error {
		n, err := repos.Nominas.ListEnRango(gctx, p.Desde, p.Hasta)
		if err != nil {
			return fmt.Errorf("cargar nominas: %w", err)
		}
		e.Nominas = n
		return nil
	})
	g.Go(func() error {
		m, err := repos.Lienzo.ListEnRango(gctx, p.Desde, p.Hasta)
		if err != nil {
			return fmt.Errorf("cargar lienzo: %w", err)
		}
		e.MovimientosLienzo = m
		return nil
	})
	g.Go(func() error {
		ps, err := repos.Productos.List(gctx)
		if err != nil {
			return fmt.Errorf("cargar productos: %w", err)
		}
		e.Productos = ps
		return nil
	})

	if err := g.Wait(); err != nil {
		return finanzas.Entrada{}, err
	}
	return e, nil
}

func (s *finanzasService) resumenDe(ctx context.Context, p finanzas.Periodo) (finanzas.Entrada, finanzas.Resumen, error) {
	e, err := cargarEntrada(ctx, s.repos, s.opts, p)
	if err != nil {
		return finanzas.Entrada{}, finanzas.Resumen{}, err
	}
	return e, finanzas.CalcularResumen(e), nil
}

// ── Resumen ──────────────────────────────────────────────────────────────────

func (s *finanzasService) Resumen(ctx context.Context, q dto.PeriodoQuery) (*dto.ResumenResponse, error) {
	p, err := finanzas.ResolverPeriodo(q.Periodo, q.Desde, q.Hasta, s.opts.ahora())
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("resumen:%d:%d", p.Desde.Unix(), p.Hasta.Unix())
	return cached(ctx, s.opts.Cache, key, func() (*dto.ResumenResponse, error) {
		_, r, err := s.resumenDe(ctx, p)
		if err != nil {
			return nil, err
		}
		resp := toResumenResponse(r)
		return &resp, nil
	})
}

// ── Dashboard ────────────────────────────────────────────────────────────────

// Dashboard summarises the last seven days. Best sellers and recent sales
// look at all history so a quiet week still shows something.
func (s *finanzasService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	ahora := s.opts.ahora()
	p := finanzas.UltimosDias(ahora, 7)

	var (
		entrada   finanzas.Entrada
		recientes []model.Venta
		filas     []repository.ProductoVendidoRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entrada, err = cargarEntrada(gctx, s.repos, s.opts, p)
		return err
	})
	g.Go(func() error {
		var err error
		if recientes, err = s.repos.Ventas.ListRecientes(gctx, ahora, limiteVentasRecientes); err != nil {
			return fmt.Errorf("cargar ventas recientes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if filas, err = s.repos.Ventas.TopProductos(gctx, ahora, limiteTopProductos); err != nil {
			return fmt.Errorf("cargar productos mas vendidos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := finanzas.CalcularResumen(entrada)

	activos, stockBajo := 0, 0
	for _, pr := range entrada.Productos {
		if !pr.Activo() {
			continue
		}
		activos++
		if pr.StockBajo() {
			stockBajo++
		}
	}

	top := make([]finanzas.ProductoVendido, 0, len(filas))
	for _, f := range filas {
		top = append(top, finanzas.ProductoVendido{
			ProductoID: f.ProductoID,
			Nombre:     f.Nombre,
			Cantidad:   f.Cantidad,
			Total:      f.Total,
		})
	}
	top = finanzas.AsignarStock(top, entrada.Productos)
	if len(top) == 0 {
		top = finanzas.ProductosSinVentas(entrada.Productos, limiteTopProductos)
	}

	// the seven-day snapshot already holds every sale of today
	return &dto.DashboardResponse{
		Resumen:            toResumenResponse(r),
		TransaccionesHoy:   int64(finanzas.ContarVentas(entrada.Ventas, finanzas.Hoy(ahora))),
		ProductosActivos:   activos,
		ProductosStockBajo: stockBajo,
		VentasRecientes:    toVentasResumen(recientes, s.opts.Location),
		TopProductos:       toProductosVendidos(top),
	}, nil
}

// ── Gastos administrativos ───────────────────────────────────────────────────

// GastosAdmin always summarises the current calendar month; the expense list
// and category breakdown follow the optional filters instead.
func (s *finanzasService) GastosAdmin(ctx context.Context, q dto.GastosQuery) (*dto.GastosAdminResponse, error) {
	ahora := s.opts.ahora()
	mes := finanzas.MesCalendario(ahora)

	filtro := mes
	if q.Desde != "" || q.Hasta != "" {
		p, err := finanzas.Personalizado(q.Desde, q.Hasta, ahora)
		if err != nil {
			return nil, err
		}
		filtro = p
	}

	var (
		r      finanzas.Resumen
		gastos []model.GastoAdmin
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		_, r, err = s.resumenDe(gctx, mes)
		return err
	})
	g.Go(func() error {
		var err error
		gastos, err = s.repos.Gastos.List(gctx, repository.GastoFilter{
			Desde:     &filtro.Desde,
			Hasta:     &filtro.Hasta,
			Categoria: q.Categoria,
		})
		if err != nil {
			return fmt.Errorf("cargar gastos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	gastos = finanzas.FiltrarGastos(gastos, q.Categoria, &filtro)
	resp := &dto.GastosAdminResponse{
		ResumenMes:    toResumenResponse(r),
		TotalFiltrado: finanzas.SumarGastos(gastos),
		PorCategoria:  []dto.TotalCategoriaResponse{},
		Gastos:        make([]dto.GastoResponse, 0, len(gastos)),
		Categorias:    model.CategoriasGasto,
	}
	for _, tc := range finanzas.GastosPorCategoria(gastos) {
		resp.PorCategoria = append(resp.PorCategoria, dto.TotalCategoriaResponse{Categoria: tc.Categoria, Total: tc.Total})
	}
	for _, gs := range gastos {
		resp.Gastos = append(resp.Gastos, dto.GastoResponse{
			ID:          gs.ID,
			Fecha:       gs.Fecha.In(s.opts.Location).Format(formatoFecha),
			Descripcion: gs.Descripcion,
			Categoria:   gs.Categoria,
			Monto:       gs.Monto,
		})
	}
	return resp, nil
}

// ── Sueldos ──────────────────────────────────────────────────────────────────

// Sueldos proposes this week's pay and lays out the chosen month's payroll
// calendar.
func (s *finanzasService) Sueldos(ctx context.Context, q dto.SueldosQuery) (*dto.SueldosResponse, error) {
	ahora := s.opts.ahora()
	semana := sueldos.LunesSemana(ahora)

	anio, mes := ahora.Year(), ahora.Month()
	if q.Anio != 0 {
		anio = q.Anio
	}
	if q.Mes != 0 {
		mes = time.Month(q.Mes)
	}
	calendario := finanzas.MesCalendario(time.Date(anio, mes, 1, 12, 0, 0, 0, s.opts.Location))

	var (
		r          finanzas.Resumen
		empleados  []model.Empleado
		pagadas    []model.Nomina
		nominasMes []model.Nomina
		adelantos  []model.Adelanto
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		_, r, err = s.resumenDe(gctx, finanzas.SemanaNomina(ahora))
		return err
	})
	g.Go(func() error {
		var err error
		if empleados, err = s.repos.Nominas.ListEmpleados(gctx); err != nil {
			return fmt.Errorf("cargar empleados: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if pagadas, err = s.repos.Nominas.ListPorSemana(gctx, semana); err != nil {
			return fmt.Errorf("cargar nominas de la semana: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if nominasMes, err = s.repos.Nominas.ListEnRango(gctx, calendario.Desde, calendario.Hasta); err != nil {
			return fmt.Errorf("cargar nominas del mes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		// every state: the calendar also shows settled advances
		if adelantos, err = s.repos.Nominas.ListAdelantos(gctx, ""); err != nil {
			return fmt.Errorf("cargar adelantos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	adelantosMes := make([]model.Adelanto, 0, len(adelantos))
	for _, a := range adelantos {
		if calendario.Contiene(a.Fecha) {
			adelantosMes = append(adelantosMes, a)
		}
	}

	estado := sueldos.CalcularEstado(empleados, pagadas, adelantos, q.Dias, ahora)
	resp := toSueldosResponse(r, estado, s.opts.Location)
	resp.Mes = calendario.Desde.Format("2006-01")
	resp.Eventos = toEventosResponse(sueldos.EventosPorFecha(nominasMes, adelantosMes, s.opts.Location), s.opts.Location)
	return &resp, nil
}

// ── Lienzo Charro ────────────────────────────────────────────────────────────

func (s *finanzasService) LienzoBalance(ctx context.Context, q dto.LienzoQuery) (*dto.LienzoBalanceResponse, error) {
	ahora := s.opts.ahora()
	p := finanzas.PeriodoLienzo(q.Periodo, ahora)

	// Movements are compared by calendar day, so load through the end of
	// the window's last day.
	movs, err := s.repos.Lienzo.ListEnRango(ctx, p.Desde, finanzas.FinDia(p.Hasta))
	if err != nil {
		return nil, fmt.Errorf("cargar lienzo: %w", err)
	}
	resp := toLienzoResponse(finanzas.CalcularBalanceLienzo(movs, p, q.Tipo), s.opts.Location)
	return &resp, nil
}

// ── Deudores ─────────────────────────────────────────────────────────────────

func (s *finanzasService) Deudores(ctx context.Context, q dto.DeudoresQuery) (*dto.DeudoresResponse, error) {
	var (
		ventas   []model.Venta
		clientes []model.Cliente
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if ventas, err = s.repos.Ventas.ListPendientes(gctx); err != nil {
			return fmt.Errorf("cargar ventas pendientes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if clientes, err = s.repos.Clientes.List(gctx); err != nil {
			return fmt.Errorf("cargar clientes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	deudores := finanzas.Deudores(ventas, clientes, strings.TrimSpace(q.Buscar))
	resp := &dto.DeudoresResponse{
		Deudores:     make([]dto.DeudorResponse, 0, len(deudores)),
		TotalGeneral: decimal.Zero,
	}
	for _, d := range deudores {
		resp.TotalGeneral = resp.TotalGeneral.Add(d.TotalAdeudado)
		resp.Deudores = append(resp.Deudores, dto.DeudorResponse{
			Cliente: dto.ClienteResponse{
				ID:       d.Cliente.ID,
				Nombre:   d.Cliente.Nombre,
				Telefono: d.Cliente.Telefono,
			},
			TotalAdeudado:    d.TotalAdeudado,
			VentasPendientes: toVentasResumen(d.VentasPendientes, s.opts.Location),
		})
	}
	return resp, nil
}
