// Package finanzas holds the single net-profit calculation shared by every
// screen (dashboard, admin expenses, payroll, reports) plus the reporting
// helpers built on top of it. Everything here is pure: callers hand in
// already-loaded snapshots and a period, nothing is read or written.
package finanzas

import (
	"posmejia/internal/model"

	"github.com/shopspring/decimal"
)

// Entrada is the snapshot the aggregator works on. Rows outside Periodo are
// ignored, so callers may pass unfiltered lists.
type Entrada struct {
	Ventas            []model.Venta
	GastosAdmin       []model.GastoAdmin
	Nominas           []model.Nomina
	MovimientosLienzo []model.MovimientoLienzo
	// Productos is only consulted for lines without a stored cost.
	Productos []model.Producto
	Periodo   Periodo
	// CostoHistoricoEstricto disables the live product cost fallback: a line
	// without its own cost then contributes zero.
	CostoHistoricoEstricto bool
}

// Resumen is the canonical financial summary of a period.
// EfectivoDisponible is always equal to GananciaNeta.
type Resumen struct {
	Periodo            Periodo
	VentasPeriodo      int
	IngresosVentas     decimal.Decimal
	IngresosLienzo     decimal.Decimal
	IngresosTotales    decimal.Decimal
	CostoVentas        decimal.Decimal
	GananciaBruta      decimal.Decimal
	GastosPeriodo      int
	TotalGastosAdmin   decimal.Decimal
	NominasPeriodo     int
	TotalNominas       decimal.Decimal
	GananciaNeta       decimal.Decimal
	EfectivoDisponible decimal.Decimal
	EfectivoBajo       bool
}

// CalcularResumen computes revenue, cost of goods sold, gross and net profit
// for e.Periodo. It never fails; missing amounts count as zero.
func CalcularResumen(e Entrada) Resumen {
	r := Resumen{Periodo: e.Periodo}

	costos := indiceCostos(e.Productos)

	ingresosVentas := decimal.Zero
	costoVentas := decimal.Zero
	for _, v := range e.Ventas {
		if !e.Periodo.Contiene(v.Fecha) {
			continue
		}
		r.VentasPeriodo++
		ingresosVentas = ingresosVentas.Add(v.MontoPagado())
		costoVentas = costoVentas.Add(costoVenta(v, costos, e.CostoHistoricoEstricto))
	}

	ingresosLienzo := decimal.Zero
	for _, m := range e.MovimientosLienzo {
		if m.Tipo == model.LienzoIngreso && e.Periodo.Contiene(m.Fecha) {
			ingresosLienzo = ingresosLienzo.Add(m.Monto)
		}
	}

	totalGastos := decimal.Zero
	for _, g := range e.GastosAdmin {
		if e.Periodo.Contiene(g.Fecha) {
			r.GastosPeriodo++
			totalGastos = totalGastos.Add(g.Monto)
		}
	}

	totalNominas := decimal.Zero
	for _, n := range e.Nominas {
		if e.Periodo.Contiene(n.Fecha) {
			r.NominasPeriodo++
			totalNominas = totalNominas.Add(n.Total)
		}
	}

	r.IngresosVentas = ingresosVentas
	r.IngresosLienzo = ingresosLienzo
	r.IngresosTotales = ingresosVentas.Add(ingresosLienzo)
	r.CostoVentas = costoVentas
	r.GananciaBruta = r.IngresosTotales.Sub(costoVentas)
	r.TotalGastosAdmin = totalGastos
	r.TotalNominas = totalNominas
	r.GananciaNeta = r.GananciaBruta.Sub(totalGastos).Sub(totalNominas)
	r.EfectivoDisponible = r.GananciaNeta
	r.EfectivoBajo = EfectivoBajo(r)
	return r
}

// EfectivoBajo raises the low-cash warning: negative available cash, or no
// income at all while the period already has expenses or payroll runs.
func EfectivoBajo(r Resumen) bool {
	if r.EfectivoDisponible.IsNegative() {
		return true
	}
	return r.IngresosTotales.IsZero() && (r.GastosPeriodo > 0 || r.NominasPeriodo > 0)
}

// costoVenta recognises cost only in proportion to what was collected.
func costoVenta(v model.Venta, costos map[int64]decimal.Decimal, estricto bool) decimal.Decimal {
	pagado := v.MontoPagado()
	total := decimal.Zero
	for _, it := range v.Items {
		total = total.Add(CostoUnitario(it, costos, estricto).Mul(it.Cantidad))
	}
	if !v.Total.IsPositive() {
		return total
	}
	return total.Mul(pagado).Div(v.Total)
}

// CostoUnitario resolves a line's unit cost: stored cost first, then the
// product's current cost unless estricto, then zero.
func CostoUnitario(it model.VentaItem, costos map[int64]decimal.Decimal, estricto bool) decimal.Decimal {
	if it.Costo != nil {
		return *it.Costo
	}
	if estricto {
		return decimal.Zero
	}
	return costos[it.ProductoID]
}

func indiceCostos(productos []model.Producto) map[int64]decimal.Decimal {
	m := make(map[int64]decimal.Decimal, len(productos))
	for _, p := range productos {
		if p.Costo != nil {
			m[p.ID] = *p.Costo
		}
	}
	return m
}
