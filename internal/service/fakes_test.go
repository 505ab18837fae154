package service

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"

	"posmejia/internal/finanzas"
	"posmejia/internal/model"
	"posmejia/internal/repository"
	"posmejia/internal/worker"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Clock and helpers ────────────────────────────────────────────────────────

var mx = func() *time.Location {
	loc, err := time.LoadLocation("America/Mexico_City")
	if err != nil {
		panic(err)
	}
	return loc
}()

// ahoraFijo is Wednesday 2025-03-12 15:00 local time.
var ahoraFijo = time.Date(2025, 3, 12, 15, 0, 0, 0, mx)

func opciones() Options {
	return Options{Location: mx, Now: func() time.Time { return ahoraFijo }}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal { v := d(s); return &v }

func at(day, hour int) time.Time { return time.Date(2025, 3, day, hour, 0, 0, 0, mx) }

// ── Fake repositories ────────────────────────────────────────────────────────

type fakeVentas struct{ ventas []model.Venta }

func (f *fakeVentas) ListEnRango(_ context.Context, desde, hasta time.Time) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range f.ventas {
		if !v.Fecha.Before(desde) && !v.Fecha.After(hasta) {
			out = append(out, v)
		}
	}
	return out, nil
}

// hasta returns the sales up to t, newest first.
func (f *fakeVentas) hasta(t time.Time) []model.Venta {
	var out []model.Venta
	for _, v := range f.ventas {
		if !v.Fecha.After(t) {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Fecha.After(out[b].Fecha) })
	return out
}

func (f *fakeVentas) ListRecientes(_ context.Context, hasta time.Time, limite int) ([]model.Venta, error) {
	out := f.hasta(hasta)
	if len(out) > limite {
		out = out[:limite]
	}
	return out, nil
}

func (f *fakeVentas) TopProductos(_ context.Context, hasta time.Time, limite int) ([]repository.ProductoVendidoRow, error) {
	var out []repository.ProductoVendidoRow
	for _, p := range finanzas.TopProductos(f.hasta(hasta), nil, true, limite) {
		out = append(out, repository.ProductoVendidoRow{
			ProductoID: p.ProductoID,
			Nombre:     p.Nombre,
			Cantidad:   p.Cantidad,
			Total:      p.Total,
		})
	}
	return out, nil
}

func (f *fakeVentas) ListPendientes(context.Context) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range f.ventas {
		if v.Estado == model.VentaPendiente && v.ClienteID != nil && v.Pendiente().IsPositive() {
			out = append(out, v)
		}
	}
	return out, nil
}

type fakeProductos struct{ productos []model.Producto }

func (f *fakeProductos) List(context.Context) ([]model.Producto, error) { return f.productos, nil }

type fakeGastos struct{ gastos []model.GastoAdmin }

func (f *fakeGastos) List(_ context.Context, fl repository.GastoFilter) ([]model.GastoAdmin, error) {
	var out []model.GastoAdmin
	for _, g := range f.gastos {
		if fl.Desde != nil && g.Fecha.Before(*fl.Desde) {
			continue
		}
		if fl.Hasta != nil && g.Fecha.After(*fl.Hasta) {
			continue
		}
		if fl.Categoria != "" && fl.Categoria != "Todos" && g.Categoria != fl.Categoria {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

type fakeNominas struct {
	nominas   []model.Nomina
	empleados []model.Empleado
	adelantos []model.Adelanto
}

func (f *fakeNominas) ListEnRango(_ context.Context, desde, hasta time.Time) ([]model.Nomina, error) {
	var out []model.Nomina
	for _, n := range f.nominas {
		if !n.Fecha.Before(desde) && !n.Fecha.After(hasta) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNominas) ListPorSemana(_ context.Context, semana string) ([]model.Nomina, error) {
	var out []model.Nomina
	for _, n := range f.nominas {
		for _, it := range n.Items {
			if it.Semana != nil && *it.Semana == semana {
				out = append(out, n)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeNominas) ListEmpleados(context.Context) ([]model.Empleado, error) {
	return f.empleados, nil
}

func (f *fakeNominas) ListAdelantos(_ context.Context, estado string) ([]model.Adelanto, error) {
	var out []model.Adelanto
	for _, a := range f.adelantos {
		if estado == "" || a.Estado == estado {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeLienzo struct{ movs []model.MovimientoLienzo }

func (f *fakeLienzo) ListEnRango(_ context.Context, desde, hasta time.Time) ([]model.MovimientoLienzo, error) {
	var out []model.MovimientoLienzo
	for _, m := range f.movs {
		if !m.Fecha.Before(desde) && !m.Fecha.After(hasta) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeClientes struct{ clientes []model.Cliente }

func (f *fakeClientes) List(context.Context) ([]model.Cliente, error) { return f.clientes, nil }

type fakeMetas struct {
	metas     []model.MetaAhorro
	registros []model.RegistroAhorroDia
	upserts   int
}

func (f *fakeMetas) List(context.Context) ([]model.MetaAhorro, error) { return f.metas, nil }

func (f *fakeMetas) FindByID(_ context.Context, id int64) (*model.MetaAhorro, error) {
	for _, m := range f.metas {
		if m.ID == id {
			mm := m
			return &mm, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMetas) ListRegistros(_ context.Context, ids ...int64) ([]model.RegistroAhorroDia, error) {
	want := map[int64]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []model.RegistroAhorroDia
	for _, r := range f.registros {
		if want[r.MetaID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeMetas) UpsertRegistro(_ context.Context, r *model.RegistroAhorroDia) error {
	f.upserts++
	for i, ex := range f.registros {
		if ex.MetaID == r.MetaID && ex.Fecha.Equal(r.Fecha) {
			f.registros[i].Monto = r.Monto
			return nil
		}
	}
	f.registros = append(f.registros, *r)
	return nil
}

// ── Fake cache and queue ─────────────────────────────────────────────────────

type fakeCache struct {
	mu          sync.Mutex
	data        map[string]any
	gets, hits  int
	invalidated []string
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string]any{}} }

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.hits++
	// Set stores the *T the service built; copy it into the caller's *T.
	reflect.ValueOf(dst).Elem().Set(reflect.ValueOf(v).Elem())
	return true, nil
}

func (c *fakeCache) Set(_ context.Context, key string, v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = v
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, sub string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, sub)
	for k := range c.data {
		if len(k) >= len(sub) && k[:len(sub)] == sub {
			delete(c.data, k)
		}
	}
	return nil
}

type fakeQueue struct{ jobs []worker.ReportePDFPayload }

func (q *fakeQueue) EnqueueReportePDF(_ context.Context, p worker.ReportePDFPayload) error {
	q.jobs = append(q.jobs, p)
	return nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

type fixture struct {
	ventas    *fakeVentas
	productos *fakeProductos
	gastos    *fakeGastos
	nominas   *fakeNominas
	lienzo    *fakeLienzo
	clientes  *fakeClientes
	metas     *fakeMetas
}

func newFixture() *fixture {
	return &fixture{
		ventas:    &fakeVentas{},
		productos: &fakeProductos{},
		gastos:    &fakeGastos{},
		nominas:   &fakeNominas{},
		lienzo:    &fakeLienzo{},
		clientes:  &fakeClientes{},
		metas:     &fakeMetas{},
	}
}

func (f *fixture) repos() Repos {
	return Repos{
		Ventas:    f.ventas,
		Productos: f.productos,
		Gastos:    f.gastos,
		Nominas:   f.nominas,
		Lienzo:    f.lienzo,
		Clientes:  f.clientes,
		Metas:     f.metas,
	}
}
