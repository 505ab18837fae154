package finanzas

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"posmejia/internal/model"

	"github.com/shopspring/decimal"
)

// ProductoVendido is one row of a best-sellers ranking.
type ProductoVendido struct {
	ProductoID int64
	Nombre     string
	Cantidad   decimal.Decimal
	Total      decimal.Decimal
	Stock      decimal.Decimal
}

// TopProductos ranks products by quantity sold over the given sales, keeping
// the first limite rows. Pass soloPagadas to skip sales with nothing paid.
// Each row takes the name of the most recent line seen for that product.
func TopProductos(ventas []model.Venta, productos []model.Producto, soloPagadas bool, limite int) []ProductoVendido {
	stock := make(map[int64]decimal.Decimal, len(productos))
	for _, p := range productos {
		stock[p.ID] = p.Stock
	}

	idx := make(map[int64]int)
	var out []ProductoVendido
	for _, v := range ventas {
		if soloPagadas && !v.MontoPagado().IsPositive() {
			continue
		}
		for _, it := range v.Items {
			i, ok := idx[it.ProductoID]
			if !ok {
				i = len(out)
				idx[it.ProductoID] = i
				out = append(out, ProductoVendido{
					ProductoID: it.ProductoID,
					Cantidad:   decimal.Zero,
					Total:      decimal.Zero,
					Stock:      stock[it.ProductoID],
				})
			}
			out[i].Nombre = it.Nombre
			out[i].Cantidad = out[i].Cantidad.Add(it.Cantidad)
			out[i].Total = out[i].Total.Add(it.Precio.Mul(it.Cantidad))
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Cantidad.GreaterThan(out[b].Cantidad)
	})
	if limite > 0 && len(out) > limite {
		out = out[:limite]
	}
	return out
}

// AsignarStock fills each row's current stock from the product snapshot.
func AsignarStock(top []ProductoVendido, productos []model.Producto) []ProductoVendido {
	stock := make(map[int64]decimal.Decimal, len(productos))
	for _, p := range productos {
		stock[p.ID] = p.Stock
	}
	for i := range top {
		top[i].Stock = stock[top[i].ProductoID]
	}
	return top
}

// ProductosSinVentas is the dashboard placeholder when nothing has been sold:
// the first limite products with zero quantity.
func ProductosSinVentas(productos []model.Producto, limite int) []ProductoVendido {
	if limite > 0 && len(productos) > limite {
		productos = productos[:limite]
	}
	out := make([]ProductoVendido, 0, len(productos))
	for _, p := range productos {
		out = append(out, ProductoVendido{
			ProductoID: p.ID,
			Nombre:     p.Nombre,
			Cantidad:   decimal.Zero,
			Total:      decimal.Zero,
			Stock:      p.Stock,
		})
	}
	return out
}

// VentasEnPeriodo filters sales by the inclusive window.
func VentasEnPeriodo(ventas []model.Venta, p Periodo) []model.Venta {
	out := make([]model.Venta, 0, len(ventas))
	for _, v := range ventas {
		if p.Contiene(v.Fecha) {
			out = append(out, v)
		}
	}
	return out
}

// VentasRecientes returns up to n sales, newest first. The input is not
// modified.
func VentasRecientes(ventas []model.Venta, n int) []model.Venta {
	out := make([]model.Venta, len(ventas))
	copy(out, ventas)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Fecha.After(out[b].Fecha)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// ContarVentas counts sales falling inside p.
func ContarVentas(ventas []model.Venta, p Periodo) int {
	n := 0
	for _, v := range ventas {
		if p.Contiene(v.Fecha) {
			n++
		}
	}
	return n
}

// ── Gastos administrativos ────────────────────────────────────────────────────

// TotalCategoria is the amount spent on one expense category.
type TotalCategoria struct {
	Categoria string
	Total     decimal.Decimal
}

// FiltrarGastos keeps expenses of categoria (empty or "Todos" keeps all)
// inside the optional window.
func FiltrarGastos(gastos []model.GastoAdmin, categoria string, p *Periodo) []model.GastoAdmin {
	out := make([]model.GastoAdmin, 0, len(gastos))
	for _, g := range gastos {
		if categoria != "" && categoria != "Todos" && g.Categoria != categoria {
			continue
		}
		if p != nil && !p.Contiene(g.Fecha) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// GastosPorCategoria sums expenses per category, largest first. Ties keep
// first-seen order.
func GastosPorCategoria(gastos []model.GastoAdmin) []TotalCategoria {
	idx := make(map[string]int)
	var out []TotalCategoria
	for _, g := range gastos {
		i, ok := idx[g.Categoria]
		if !ok {
			i = len(out)
			idx[g.Categoria] = i
			out = append(out, TotalCategoria{Categoria: g.Categoria, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(g.Monto)
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Total.GreaterThan(out[b].Total)
	})
	return out
}

// SumarGastos totals a list of expenses.
func SumarGastos(gastos []model.GastoAdmin) decimal.Decimal {
	total := decimal.Zero
	for _, g := range gastos {
		total = total.Add(g.Monto)
	}
	return total
}

// ── Lienzo Charro ─────────────────────────────────────────────────────────────

// BalanceLienzo is the side-venture ledger over a period.
type BalanceLienzo struct {
	Periodo     Periodo
	Ingresos    decimal.Decimal
	Gastos      decimal.Decimal
	Balance     decimal.Decimal
	Movimientos []model.MovimientoLienzo
}

// CalcularBalanceLienzo compares movement dates by local calendar day, so a
// movement dated any time on the last day of the window counts. tipo filters
// the returned movements only; totals always cover both kinds.
func CalcularBalanceLienzo(movs []model.MovimientoLienzo, p Periodo, tipo string) BalanceLienzo {
	loc := p.Desde.Location()
	desde := p.Desde.Format(formatoFecha)
	hasta := p.Hasta.In(loc).Format(formatoFecha)

	b := BalanceLienzo{
		Periodo:     p,
		Ingresos:    decimal.Zero,
		Gastos:      decimal.Zero,
		Movimientos: []model.MovimientoLienzo{},
	}
	for _, m := range movs {
		dia := m.Fecha.In(loc).Format(formatoFecha)
		if dia < desde || dia > hasta {
			continue
		}
		switch m.Tipo {
		case model.LienzoIngreso:
			b.Ingresos = b.Ingresos.Add(m.Monto)
		case model.LienzoGasto:
			b.Gastos = b.Gastos.Add(m.Monto)
		}
		if tipo == "" || tipo == "todos" || tipo == m.Tipo {
			b.Movimientos = append(b.Movimientos, m)
		}
	}
	b.Balance = b.Ingresos.Sub(b.Gastos)
	return b
}

// AnioCalendario covers January 1st through December 31st 23:59:59.
func AnioCalendario(ahora time.Time) Periodo {
	loc := ahora.Location()
	y := ahora.Year()
	return Periodo{
		Desde: time.Date(y, time.January, 1, 0, 0, 0, 0, loc),
		Hasta: time.Date(y, time.December, 31, 23, 59, 59, 0, loc),
	}
}

// PeriodoLienzo resolves the ledger screen presets, which use calendar month
// and year instead of rolling windows. Unknown names mean all history.
func PeriodoLienzo(nombre string, ahora time.Time) Periodo {
	switch nombre {
	case "dia", PeriodoHoy:
		return Hoy(ahora)
	case PeriodoSemana:
		return UltimosDias(ahora, 7)
	case PeriodoMes, "":
		return MesCalendario(ahora)
	case PeriodoAnio, "anio":
		return AnioCalendario(ahora)
	default:
		return Periodo{Desde: time.Unix(0, 0).In(ahora.Location()), Hasta: ahora}
	}
}

// ── Deudores ──────────────────────────────────────────────────────────────────

// Deudor groups a client's unpaid sales.
type Deudor struct {
	Cliente          model.Cliente
	TotalAdeudado    decimal.Decimal
	VentasPendientes []model.Venta
}

// Deudores groups pending sales with a client, largest debt first. busqueda
// filters by client name or phone, case-insensitively.
func Deudores(ventas []model.Venta, clientes []model.Cliente, busqueda string) []Deudor {
	porID := make(map[int64]model.Cliente, len(clientes))
	for _, c := range clientes {
		porID[c.ID] = c
	}

	idx := make(map[int64]int)
	var out []Deudor
	for _, v := range ventas {
		if v.Estado != model.VentaPendiente || v.ClienteID == nil || !v.Pendiente().IsPositive() {
			continue
		}
		c, ok := porID[*v.ClienteID]
		if !ok {
			if v.Cliente == nil {
				continue
			}
			c = *v.Cliente
		}
		i, seen := idx[c.ID]
		if !seen {
			i = len(out)
			idx[c.ID] = i
			out = append(out, Deudor{Cliente: c, TotalAdeudado: decimal.Zero})
		}
		out[i].VentasPendientes = append(out[i].VentasPendientes, v)
		out[i].TotalAdeudado = out[i].TotalAdeudado.Add(v.Pendiente())
	}

	if busqueda != "" {
		filtrados := out[:0]
		for _, d := range out {
			if coincide(d.Cliente, busqueda) {
				filtrados = append(filtrados, d)
			}
		}
		out = filtrados
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].TotalAdeudado.GreaterThan(out[b].TotalAdeudado)
	})
	return out
}

func coincide(c model.Cliente, q string) bool {
	if containsFold(c.Nombre, q) {
		return true
	}
	return c.Telefono != nil && containsFold(*c.Telefono, q)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// ── Export ────────────────────────────────────────────────────────────────────

// NombreArchivo builds the export file base name for a period,
// e.g. reporte-ventas-2025-01-01-2025-01-31.
func NombreArchivo(p Periodo) string {
	return fmt.Sprintf("reporte-ventas-%s-%s", p.Desde.Format(formatoFecha), p.Hasta.Format(formatoFecha))
}

// RangoLegible renders the period as dd/mm/yyyy - dd/mm/yyyy.
func RangoLegible(p Periodo) string {
	return p.Desde.Format("02/01/2006") + " - " + p.Hasta.Format("02/01/2006")
}
