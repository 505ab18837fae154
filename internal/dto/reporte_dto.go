package dto

import "github.com/shopspring/decimal"

type MetricasResponse struct {
	TotalVentas       int             `json:"total_ventas"`
	VentasPagadas     int             `json:"ventas_pagadas"`
	VentaPromedio     decimal.Decimal `json:"venta_promedio"`
	MargenGanancia    decimal.Decimal `json:"margen_ganancia"`
	ProductosVendidos decimal.Decimal `json:"productos_vendidos"`
	CostoPromedio     decimal.Decimal `json:"costo_promedio"`
	GananciaPorVenta  decimal.Decimal `json:"ganancia_por_venta"`
}

// ReporteResponse backs GET /v1/reportes and feeds the CSV and PDF exports.
type ReporteResponse struct {
	Rango           string                    `json:"rango"`
	Generado        string                    `json:"generado"`
	Archivo         string                    `json:"archivo"`
	Resumen         ResumenResponse           `json:"resumen"`
	Metricas        MetricasResponse          `json:"metricas"`
	TopProductos    []ProductoVendidoResponse `json:"top_productos"`
	VentasRecientes []VentaResumen            `json:"ventas_recientes"`
}

// ReportePDFRequest is the body of POST /v1/reportes/pdf.
type ReportePDFRequest struct {
	PeriodoQuery
	Email *string `json:"email" validate:"omitempty,email"`
}

// ReportePDFResponse is returned with 202 once the export job is queued.
type ReportePDFResponse struct {
	JobID   string `json:"job_id"`
	Archivo string `json:"archivo"`
	URL     string `json:"url"`
}
