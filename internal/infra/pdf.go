package infra

// pdf.go: sales report export rendered with go-pdf/fpdf.
// Layout (A4 portrait):
//   - Business name and range header
//   - Financial summary block
//   - Performance metrics block
//   - Top products table
//   - Recent sales table
//
// The output file is saved to storagePath/fileName.

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"posmejia/internal/dto"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateReportePDF writes rep as a PDF and returns the absolute path.
func GenerateReportePDF(rep *dto.ReporteResponse, negocio, storagePath, fileName string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr(negocio), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, tr("Reporte de ventas · "+rep.Rango), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, tr("Generado: "+rep.Generado), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	labelW := contentW * 0.6
	valueW := contentW * 0.4
	fila := func(label, valor string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.CellFormat(labelW, 6, tr(label), "B", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, 6, tr(valor), "B", 1, "R", false, 0, "")
	}
	titulo := func(s string) {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, tr(s), "", 1, "L", false, 0, "")
	}

	// ── Summary ───────────────────────────────────────────────────────────────
	r := rep.Resumen
	titulo("Resumen financiero")
	fila("Ventas en el periodo", strconv.Itoa(r.VentasPeriodo), false)
	fila("Ingresos por ventas", moneda(r.IngresosVentas), false)
	fila("Ingresos Lienzo Charro", moneda(r.IngresosLienzo), false)
	fila("Ingresos totales", moneda(r.IngresosTotales), true)
	fila("Costo de ventas", moneda(r.CostoVentas), false)
	fila("Ganancia bruta", moneda(r.GananciaBruta), true)
	fila("Gastos administrativos", moneda(r.TotalGastosAdmin), false)
	fila("Nóminas", moneda(r.TotalNominas), false)
	fila("Ganancia neta", moneda(r.GananciaNeta), true)
	if r.EfectivoBajo {
		pdf.SetTextColor(200, 0, 0)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 6, tr("Atención: efectivo bajo"), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	m := rep.Metricas
	titulo("Métricas")
	fila("Venta promedio", moneda(m.VentaPromedio), false)
	fila("Margen de ganancia", m.MargenGanancia.StringFixed(2)+"%", false)
	fila("Productos vendidos", m.ProductosVendidos.String(), false)
	fila("Costo promedio por venta", moneda(m.CostoPromedio), false)
	fila("Ganancia por venta", moneda(m.GananciaPorVenta), false)

	// ── Top products ──────────────────────────────────────────────────────────
	titulo("Productos más vendidos")
	c1, c2, c3 := contentW*0.6, contentW*0.15, contentW*0.25
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(c1, 6, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(c2, 6, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(c3, 6, "Total", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, p := range rep.TopProductos {
		pdf.CellFormat(c1, 6, tr(truncar(p.Nombre, 48)), "", 0, "L", false, 0, "")
		pdf.CellFormat(c2, 6, p.Cantidad.String(), "", 0, "C", false, 0, "")
		pdf.CellFormat(c3, 6, moneda(p.Total), "", 1, "R", false, 0, "")
	}

	// ── Recent sales ──────────────────────────────────────────────────────────
	titulo("Ventas recientes")
	v1, v2, v3, v4 := contentW*0.15, contentW*0.35, contentW*0.25, contentW*0.25
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(v1, 6, "#", "B", 0, "L", false, 0, "")
	pdf.CellFormat(v2, 6, "Fecha", "B", 0, "L", false, 0, "")
	pdf.CellFormat(v3, 6, "Estado", "B", 0, "C", false, 0, "")
	pdf.CellFormat(v4, 6, "Total", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, v := range rep.VentasRecientes {
		pdf.CellFormat(v1, 6, strconv.FormatInt(v.ID, 10), "", 0, "L", false, 0, "")
		pdf.CellFormat(v2, 6, v.Fecha, "", 0, "L", false, 0, "")
		pdf.CellFormat(v3, 6, v.Estado, "", 0, "C", false, 0, "")
		pdf.CellFormat(v4, 6, moneda(v.Total), "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

func moneda(d decimal.Decimal) string { return "$" + d.StringFixed(2) }

func truncar(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
