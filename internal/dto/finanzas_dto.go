package dto

import "github.com/shopspring/decimal"

// ─── Query DTOs ──────────────────────────────────────────────────────────────

// PeriodoQuery is bound from the query string of every period-scoped endpoint,
// and from the body of the PDF export request.
type PeriodoQuery struct {
	Periodo string `form:"periodo" json:"periodo" validate:"omitempty,oneof=hoy semana mes año anio personalizado"`
	Desde   string `form:"desde"   json:"desde"   validate:"omitempty,datetime=2006-01-02"`
	Hasta   string `form:"hasta"   json:"hasta"   validate:"omitempty,datetime=2006-01-02"`
}

// GastosQuery filters GET /v1/finanzas/gastos-admin. Empty dates fall back to
// the current calendar month.
type GastosQuery struct {
	Categoria string `form:"categoria"`
	Desde     string `form:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta     string `form:"hasta" validate:"omitempty,datetime=2006-01-02"`
}

// LienzoQuery is bound from GET /v1/lienzo/balance.
type LienzoQuery struct {
	Periodo string `form:"periodo" validate:"omitempty,oneof=dia hoy semana mes año anio todos"`
	Tipo    string `form:"tipo"    validate:"omitempty,oneof=todos ingreso gasto"`
}

// SueldosQuery is bound from GET /v1/finanzas/sueldos. Anio and Mes pick the
// payroll calendar month, the current one by default. Dias is read from
// dias[<empleado_id>]=<n> and overrides days worked in the pay proposal.
type SueldosQuery struct {
	Anio int           `form:"anio" validate:"omitempty,min=2000,max=2100"`
	Mes  int           `form:"mes"  validate:"omitempty,min=1,max=12"`
	Dias map[int64]int `form:"-"`
}

// DeudoresQuery is bound from GET /v1/deudores.
type DeudoresQuery struct {
	Buscar string `form:"buscar" validate:"max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ResumenResponse is the canonical financial summary shared by every screen.
type ResumenResponse struct {
	Desde              string          `json:"desde"`
	Hasta              string          `json:"hasta"`
	VentasPeriodo      int             `json:"ventas_periodo"`
	IngresosVentas     decimal.Decimal `json:"ingresos_ventas"`
	IngresosLienzo     decimal.Decimal `json:"ingresos_lienzo"`
	IngresosTotales    decimal.Decimal `json:"ingresos_totales"`
	CostoVentas        decimal.Decimal `json:"costo_ventas"`
	GananciaBruta      decimal.Decimal `json:"ganancia_bruta"`
	GastosPeriodo      int             `json:"gastos_periodo"`
	TotalGastosAdmin   decimal.Decimal `json:"total_gastos_admin"`
	NominasPeriodo     int             `json:"nominas_periodo"`
	TotalNominas       decimal.Decimal `json:"total_nominas"`
	GananciaNeta       decimal.Decimal `json:"ganancia_neta"`
	EfectivoDisponible decimal.Decimal `json:"efectivo_disponible"`
	EfectivoBajo       bool            `json:"efectivo_bajo"`
}

type VentaResumen struct {
	ID        int64           `json:"id"`
	Fecha     string          `json:"fecha"`
	Total     decimal.Decimal `json:"total"`
	Pagado    decimal.Decimal `json:"pagado"`
	Pendiente decimal.Decimal `json:"pendiente"`
	Estado    string          `json:"estado"`
	Items     int             `json:"items"`
}

type ProductoVendidoResponse struct {
	ProductoID int64           `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	Total      decimal.Decimal `json:"total"`
	Stock      decimal.Decimal `json:"stock"`
}

// DashboardResponse backs GET /v1/finanzas/dashboard.
type DashboardResponse struct {
	Resumen            ResumenResponse           `json:"resumen"`
	TransaccionesHoy   int64                     `json:"transacciones_hoy"`
	ProductosActivos   int                       `json:"productos_activos"`
	ProductosStockBajo int                       `json:"productos_stock_bajo"`
	VentasRecientes    []VentaResumen            `json:"ventas_recientes"`
	TopProductos       []ProductoVendidoResponse `json:"top_productos"`
}

type GastoResponse struct {
	ID          int64           `json:"id"`
	Fecha       string          `json:"fecha"`
	Descripcion string          `json:"descripcion"`
	Categoria   string          `json:"categoria"`
	Monto       decimal.Decimal `json:"monto"`
}

type TotalCategoriaResponse struct {
	Categoria string          `json:"categoria"`
	Total     decimal.Decimal `json:"total"`
}

// GastosAdminResponse backs GET /v1/finanzas/gastos-admin. ResumenMes always
// covers the current calendar month; the list and breakdown follow the filter.
type GastosAdminResponse struct {
	ResumenMes    ResumenResponse          `json:"resumen_mes"`
	TotalFiltrado decimal.Decimal          `json:"total_filtrado"`
	PorCategoria  []TotalCategoriaResponse `json:"por_categoria"`
	Gastos        []GastoResponse          `json:"gastos"`
	Categorias    []string                 `json:"categorias"`
}

type EmpleadoResponse struct {
	ID     int64           `json:"id"`
	Nombre string          `json:"nombre"`
	Sueldo decimal.Decimal `json:"sueldo"`
	Puesto *string         `json:"puesto,omitempty"`
}

type LineaNominaResponse struct {
	Empleado      EmpleadoResponse `json:"empleado"`
	Dias          int              `json:"dias"`
	Bruto         decimal.Decimal  `json:"bruto"`
	Descuento     decimal.Decimal  `json:"descuento"`
	Neto          decimal.Decimal  `json:"neto"`
	SaldoAdelanto decimal.Decimal  `json:"saldo_adelanto"`
}

type AdelantoResponse struct {
	ID             int64           `json:"id"`
	EmpleadoID     int64           `json:"empleado_id"`
	Nombre         string          `json:"nombre"`
	MontoTotal     decimal.Decimal `json:"monto_total"`
	Semanas        int             `json:"semanas"`
	MontoPorSemana decimal.Decimal `json:"monto_por_semana"`
	SaldoPendiente decimal.Decimal `json:"saldo_pendiente"`
	Fecha          string          `json:"fecha"`
}

type NominaResumen struct {
	ID        int64           `json:"id"`
	Total     decimal.Decimal `json:"total"`
	Empleados int             `json:"empleados"`
}

// EventoNominaResponse is one day of the payroll calendar.
type EventoNominaResponse struct {
	Fecha     string             `json:"fecha"`
	Nominas   []NominaResumen    `json:"nominas"`
	Adelantos []AdelantoResponse `json:"adelantos"`
}

// SueldosResponse backs GET /v1/finanzas/sueldos.
type SueldosResponse struct {
	Resumen          ResumenResponse        `json:"resumen"`
	Semana           string                 `json:"semana"`
	TotalSueldos     decimal.Decimal        `json:"total_sueldos"`
	PagadosSemana    []EmpleadoResponse     `json:"pagados_semana"`
	Pendientes       []LineaNominaResponse  `json:"pendientes"`
	TotalBruto       decimal.Decimal        `json:"total_bruto"`
	TotalDescuentos  decimal.Decimal        `json:"total_descuentos"`
	TotalNeto        decimal.Decimal        `json:"total_neto"`
	AdelantosActivos []AdelantoResponse     `json:"adelantos_activos"`
	SaldoAdelantos   decimal.Decimal        `json:"saldo_adelantos"`
	Mes              string                 `json:"mes"`
	Eventos          []EventoNominaResponse `json:"eventos"`
}

type MovimientoLienzoResponse struct {
	ID          int64           `json:"id"`
	Fecha       string          `json:"fecha"`
	Tipo        string          `json:"tipo"`
	Monto       decimal.Decimal `json:"monto"`
	Descripcion *string         `json:"descripcion,omitempty"`
}

// LienzoBalanceResponse backs GET /v1/lienzo/balance.
type LienzoBalanceResponse struct {
	Desde       string                     `json:"desde"`
	Hasta       string                     `json:"hasta"`
	Ingresos    decimal.Decimal            `json:"ingresos"`
	Gastos      decimal.Decimal            `json:"gastos"`
	Balance     decimal.Decimal            `json:"balance"`
	Movimientos []MovimientoLienzoResponse `json:"movimientos"`
}

type ClienteResponse struct {
	ID       int64   `json:"id"`
	Nombre   string  `json:"nombre"`
	Telefono *string `json:"telefono,omitempty"`
}

type DeudorResponse struct {
	Cliente          ClienteResponse `json:"cliente"`
	TotalAdeudado    decimal.Decimal `json:"total_adeudado"`
	VentasPendientes []VentaResumen  `json:"ventas_pendientes"`
}

// DeudoresResponse backs GET /v1/deudores.
type DeudoresResponse struct {
	Deudores     []DeudorResponse `json:"deudores"`
	TotalGeneral decimal.Decimal  `json:"total_general"`
}
