package finanzas

import (
	"github.com/shopspring/decimal"
)

var cien = decimal.NewFromInt(100)

// Metricas are the per-sale ratios shown on the reports screen.
type Metricas struct {
	TotalVentas       int
	VentasPagadas     int
	VentaPromedio     decimal.Decimal
	MargenGanancia    decimal.Decimal
	ProductosVendidos decimal.Decimal
	CostoPromedio     decimal.Decimal
	GananciaPorVenta  decimal.Decimal
}

// CalcularMetricas derives reporting ratios from a summary and the same
// input it was computed from. Any zero denominator yields zero.
func CalcularMetricas(e Entrada, r Resumen) Metricas {
	m := Metricas{ProductosVendidos: decimal.Zero}
	for _, v := range e.Ventas {
		if !e.Periodo.Contiene(v.Fecha) {
			continue
		}
		m.TotalVentas++
		if !v.MontoPagado().IsPositive() {
			continue
		}
		m.VentasPagadas++
		for _, it := range v.Items {
			m.ProductosVendidos = m.ProductosVendidos.Add(it.Cantidad)
		}
	}

	pagadas := decimal.NewFromInt(int64(m.VentasPagadas))
	m.VentaPromedio = dividir(r.IngresosTotales, pagadas)
	m.MargenGanancia = dividir(r.GananciaBruta, r.IngresosTotales).Mul(cien)
	m.CostoPromedio = dividir(r.CostoVentas, m.ProductosVendidos)
	m.GananciaPorVenta = dividir(r.GananciaBruta, pagadas)
	return m
}

func dividir(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}
