package service

import (
	"context"
	"testing"
	"time"

	"posmejia/internal/dto"
	"posmejia/internal/finanzas"
	"posmejia/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func i64p(v int64) *int64 { return &v }

// hoyFixture puts every movement on 2025-03-12 before 15:00, so every
// screen window contains all of them.
func hoyFixture() *fixture {
	f := newFixture()
	f.productos.productos = []model.Producto{
		{ID: 1, Nombre: "Tortilla", Costo: dp("6"), Stock: d("3"), StockMinimo: d("5")},
		{ID: 2, Nombre: "Queso", Costo: dp("10"), Stock: d("50"), Estado: "Inactivo"},
	}
	f.ventas.ventas = []model.Venta{
		{
			ID: 1, Fecha: at(12, 10), Total: d("100"), Estado: model.VentaPagada,
			Items: []model.VentaItem{{ProductoID: 1, Nombre: "Tortilla", Precio: d("10"), Cantidad: d("10")}},
		},
		{
			ID: 2, Fecha: at(12, 11), Total: d("200"), Pagado: dp("50"), Estado: model.VentaPendiente, ClienteID: i64p(7),
			Items: []model.VentaItem{{ProductoID: 2, Nombre: "Queso", Precio: d("50"), Cantidad: d("4"), Costo: dp("20")}},
		},
	}
	f.lienzo.movs = []model.MovimientoLienzo{
		{ID: 1, Fecha: at(12, 9), Tipo: model.LienzoIngreso, Monto: d("30")},
		{ID: 2, Fecha: at(12, 9), Tipo: model.LienzoGasto, Monto: d("5")},
	}
	f.gastos.gastos = []model.GastoAdmin{
		{ID: 1, Fecha: at(12, 8), Categoria: "Salud", Descripcion: "Consulta", Monto: d("15")},
	}
	f.nominas.empleados = []model.Empleado{
		{ID: 1, Nombre: "Ana", Sueldo: d("1400")},
		{ID: 2, Nombre: "Luis", Sueldo: d("700")},
	}
	f.nominas.nominas = []model.Nomina{{
		ID: 1, Fecha: at(12, 12), Total: d("40"),
		Items: []model.NominaItem{{EmpleadoID: 2, Nombre: "Luis", Monto: d("40"), Semana: strp("2025-03-10")}},
	}}
	f.clientes.clientes = []model.Cliente{{ID: 7, Nombre: "Doña Rosa", Telefono: strp("5512345678")}}
	return f
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s, got %s", want, got)
}

func TestResumen_Mes(t *testing.T) {
	svc := NewFinanzasService(hoyFixture().repos(), opciones())

	r, err := svc.Resumen(context.Background(), dto.PeriodoQuery{Periodo: "mes"})
	require.NoError(t, err)

	assert.Equal(t, 2, r.VentasPeriodo)
	assertDec(t, "150", r.IngresosVentas)
	assertDec(t, "30", r.IngresosLienzo)
	assertDec(t, "180", r.IngresosTotales)
	assertDec(t, "80", r.CostoVentas)
	assertDec(t, "100", r.GananciaBruta)
	assertDec(t, "15", r.TotalGastosAdmin)
	assertDec(t, "40", r.TotalNominas)
	assertDec(t, "45", r.GananciaNeta)
	assertDec(t, "45", r.EfectivoDisponible)
	assert.False(t, r.EfectivoBajo)
}

func TestResumen_CostoEstricto(t *testing.T) {
	opts := opciones()
	opts.CostoHistoricoEstricto = true
	svc := NewFinanzasService(hoyFixture().repos(), opts)

	r, err := svc.Resumen(context.Background(), dto.PeriodoQuery{Periodo: "hoy"})
	require.NoError(t, err)

	// the tortilla line has no stored cost and no longer falls back
	assertDec(t, "20", r.CostoVentas)
}

func TestResumen_PeriodoInvalido(t *testing.T) {
	svc := NewFinanzasService(hoyFixture().repos(), opciones())

	_, err := svc.Resumen(context.Background(), dto.PeriodoQuery{Periodo: "siglo"})
	assert.ErrorIs(t, err, finanzas.ErrPeriodoInvalido)

	_, err = svc.Resumen(context.Background(), dto.PeriodoQuery{Periodo: "personalizado", Desde: "2025-03-10", Hasta: "2025-03-01"})
	assert.ErrorIs(t, err, finanzas.ErrPeriodoInvalido)
}

func TestResumen_UsesCache(t *testing.T) {
	f := hoyFixture()
	cache := newFakeCache()
	opts := opciones()
	opts.Cache = cache
	svc := NewFinanzasService(f.repos(), opts)

	first, err := svc.Resumen(context.Background(), dto.PeriodoQuery{Periodo: "semana"})
	require.NoError(t, err)
	f.ventas.ventas = nil
	second, err := svc.Resumen(context.Background(), dto.PeriodoQuery{Periodo: "semana"})
	require.NoError(t, err)

	assert.Equal(t, 1, cache.hits)
	assertDec(t, first.GananciaNeta.String(), second.GananciaNeta)
}

func TestGananciaNeta_IgualEnTodasLasPantallas(t *testing.T) {
	f := hoyFixture()
	fin := NewFinanzasService(f.repos(), opciones())
	rep := NewReporteService(f.repos(), opciones(), nil, t.TempDir(), "POS")
	ctx := context.Background()

	dash, err := fin.Dashboard(ctx)
	require.NoError(t, err)
	gastos, err := fin.GastosAdmin(ctx, dto.GastosQuery{})
	require.NoError(t, err)
	sueldos, err := fin.Sueldos(ctx, dto.SueldosQuery{})
	require.NoError(t, err)
	reporte, err := rep.Reporte(ctx, dto.PeriodoQuery{Periodo: "semana"})
	require.NoError(t, err)

	for _, got := range []dto.ResumenResponse{dash.Resumen, gastos.ResumenMes, sueldos.Resumen, reporte.Resumen} {
		assertDec(t, "45", got.GananciaNeta)
		assertDec(t, "45", got.EfectivoDisponible)
	}
}

func TestDashboard(t *testing.T) {
	svc := NewFinanzasService(hoyFixture().repos(), opciones())

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, dash.TransaccionesHoy)
	assert.Equal(t, 1, dash.ProductosActivos)
	assert.Equal(t, 1, dash.ProductosStockBajo)
	require.Len(t, dash.VentasRecientes, 2)
	assert.Equal(t, int64(2), dash.VentasRecientes[0].ID)
	assertDec(t, "150", dash.VentasRecientes[0].Pendiente)
	require.Len(t, dash.TopProductos, 2)
	assert.Equal(t, "Tortilla", dash.TopProductos[0].Nombre)
	assertDec(t, "3", dash.TopProductos[0].Stock)
}

func TestDashboard_TransaccionesHoySoloCuentaHoy(t *testing.T) {
	f := hoyFixture()
	f.ventas.ventas = append(f.ventas.ventas,
		model.Venta{ID: 3, Fecha: at(11, 20), Total: d("10"), Estado: model.VentaPagada},
		model.Venta{ID: 4, Fecha: at(12, 0), Total: d("10"), Estado: model.VentaPagada},
	)
	svc := NewFinanzasService(f.repos(), opciones())

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 3, dash.TransaccionesHoy)
	assert.Equal(t, 4, dash.Resumen.VentasPeriodo)
}

func TestDashboard_VentasRecientesLimitadas(t *testing.T) {
	f := hoyFixture()
	for i := 0; i < 15; i++ {
		f.ventas.ventas = append(f.ventas.ventas, model.Venta{ID: int64(100 + i), Fecha: at(1, i), Total: d("1"), Estado: model.VentaPagada})
	}
	svc := NewFinanzasService(f.repos(), opciones())

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, dash.VentasRecientes, 10)
	assert.Equal(t, int64(2), dash.VentasRecientes[0].ID)
}

func TestDashboard_SinVentasMuestraCatalogo(t *testing.T) {
	f := hoyFixture()
	f.ventas.ventas = nil
	svc := NewFinanzasService(f.repos(), opciones())

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, dash.TopProductos, 2)
	assert.True(t, dash.TopProductos[0].Cantidad.IsZero())
	assert.Empty(t, dash.VentasRecientes)
}

func TestGastosAdmin_Filtros(t *testing.T) {
	f := hoyFixture()
	f.gastos.gastos = append(f.gastos.gastos, model.GastoAdmin{ID: 2, Fecha: at(2, 8), Categoria: "Diversos", Monto: d("5")})
	svc := NewFinanzasService(f.repos(), opciones())
	ctx := context.Background()

	todos, err := svc.GastosAdmin(ctx, dto.GastosQuery{})
	require.NoError(t, err)
	assertDec(t, "20", todos.TotalFiltrado)
	require.Len(t, todos.PorCategoria, 2)
	assert.Equal(t, "Salud", todos.PorCategoria[0].Categoria)
	assert.NotEmpty(t, todos.Categorias)

	salud, err := svc.GastosAdmin(ctx, dto.GastosQuery{Categoria: "Salud"})
	require.NoError(t, err)
	assertDec(t, "15", salud.TotalFiltrado)
	require.Len(t, salud.Gastos, 1)
	assert.Equal(t, "2025-03-12", salud.Gastos[0].Fecha)

	rango, err := svc.GastosAdmin(ctx, dto.GastosQuery{Desde: "2025-03-01", Hasta: "2025-03-05"})
	require.NoError(t, err)
	assertDec(t, "5", rango.TotalFiltrado)

	// the month summary ignores the list filters
	for _, r := range []*dto.GastosAdminResponse{todos, salud, rango} {
		assertDec(t, "20", r.ResumenMes.TotalGastosAdmin)
	}
}

func TestSueldos(t *testing.T) {
	svc := NewFinanzasService(hoyFixture().repos(), opciones())

	s, err := svc.Sueldos(context.Background(), dto.SueldosQuery{})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", s.Semana)
	assertDec(t, "2100", s.TotalSueldos)
	require.Len(t, s.PagadosSemana, 1)
	assert.Equal(t, "Luis", s.PagadosSemana[0].Nombre)
	require.Len(t, s.Pendientes, 1)
	assertDec(t, "1400", s.Pendientes[0].Bruto)
	assert.Equal(t, 7, s.Pendientes[0].Dias)
	assert.Equal(t, 1, s.Resumen.NominasPeriodo)
}

func TestSueldos_DiasProrrateados(t *testing.T) {
	svc := NewFinanzasService(hoyFixture().repos(), opciones())

	s, err := svc.Sueldos(context.Background(), dto.SueldosQuery{Dias: map[int64]int{1: 3}})
	require.NoError(t, err)

	require.Len(t, s.Pendientes, 1)
	assert.Equal(t, 3, s.Pendientes[0].Dias)
	assertDec(t, "600", s.Pendientes[0].Bruto)
	assertDec(t, "600", s.TotalNeto)
}

func TestSueldos_Calendario(t *testing.T) {
	f := hoyFixture()
	f.nominas.nominas = append(f.nominas.nominas, model.Nomina{ID: 2, Fecha: time.Date(2025, 2, 24, 18, 0, 0, 0, mx), Total: d("700")})
	f.nominas.adelantos = []model.Adelanto{
		{ID: 5, EmpleadoID: 1, Nombre: "Ana", MontoPorSemana: d("100"), SaldoPendiente: d("300"), Fecha: at(3, 9), Estado: "activo"},
		{ID: 6, EmpleadoID: 2, Nombre: "Luis", SaldoPendiente: d("0"), Fecha: at(12, 9), Estado: "liquidado"},
		{ID: 7, EmpleadoID: 2, Nombre: "Luis", Fecha: time.Date(2025, 2, 10, 9, 0, 0, 0, mx), Estado: "liquidado"},
	}
	svc := NewFinanzasService(f.repos(), opciones())
	ctx := context.Background()

	marzo, err := svc.Sueldos(ctx, dto.SueldosQuery{})
	require.NoError(t, err)

	assert.Equal(t, "2025-03", marzo.Mes)
	require.Len(t, marzo.Eventos, 2)
	assert.Equal(t, "2025-03-03", marzo.Eventos[0].Fecha)
	assert.Len(t, marzo.Eventos[0].Adelantos, 1)
	assert.Equal(t, "2025-03-12", marzo.Eventos[1].Fecha)
	require.Len(t, marzo.Eventos[1].Nominas, 1)
	assert.Equal(t, 1, marzo.Eventos[1].Nominas[0].Empleados)
	assert.Len(t, marzo.Eventos[1].Adelantos, 1)
	// settled advances show on the calendar but not in the balance
	require.Len(t, marzo.AdelantosActivos, 1)
	assertDec(t, "300", marzo.SaldoAdelantos)

	febrero, err := svc.Sueldos(ctx, dto.SueldosQuery{Anio: 2025, Mes: 2})
	require.NoError(t, err)

	assert.Equal(t, "2025-02", febrero.Mes)
	require.Len(t, febrero.Eventos, 2)
	assert.Equal(t, "2025-02-10", febrero.Eventos[0].Fecha)
	assert.Equal(t, "2025-02-24", febrero.Eventos[1].Fecha)
	// the pay proposal always belongs to the current week
	assert.Equal(t, "2025-03-10", febrero.Semana)
}

func TestLienzoBalance(t *testing.T) {
	svc := NewFinanzasService(hoyFixture().repos(), opciones())

	b, err := svc.LienzoBalance(context.Background(), dto.LienzoQuery{Periodo: "mes"})
	require.NoError(t, err)
	assertDec(t, "30", b.Ingresos)
	assertDec(t, "5", b.Gastos)
	assertDec(t, "25", b.Balance)
	assert.Len(t, b.Movimientos, 2)

	g, err := svc.LienzoBalance(context.Background(), dto.LienzoQuery{Periodo: "mes", Tipo: "gasto"})
	require.NoError(t, err)
	assertDec(t, "25", g.Balance)
	require.Len(t, g.Movimientos, 1)
	assert.Equal(t, model.LienzoGasto, g.Movimientos[0].Tipo)
}

func TestDeudores(t *testing.T) {
	svc := NewFinanzasService(hoyFixture().repos(), opciones())
	ctx := context.Background()

	r, err := svc.Deudores(ctx, dto.DeudoresQuery{})
	require.NoError(t, err)
	require.Len(t, r.Deudores, 1)
	assert.Equal(t, "Doña Rosa", r.Deudores[0].Cliente.Nombre)
	assertDec(t, "150", r.TotalGeneral)
	require.Len(t, r.Deudores[0].VentasPendientes, 1)

	porTel, err := svc.Deudores(ctx, dto.DeudoresQuery{Buscar: " 5512 "})
	require.NoError(t, err)
	assert.Len(t, porTel.Deudores, 1)

	nadie, err := svc.Deudores(ctx, dto.DeudoresQuery{Buscar: "xyz"})
	require.NoError(t, err)
	assert.Empty(t, nadie.Deudores)
	assert.True(t, nadie.TotalGeneral.IsZero())
}
