package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"posmejia/internal/dto"
	"posmejia/internal/finanzas"
	"posmejia/internal/worker"

	"github.com/google/uuid"
)

type ReporteService interface {
	Reporte(ctx context.Context, q dto.PeriodoQuery) (*dto.ReporteResponse, error)
	ReporteDe(ctx context.Context, p finanzas.Periodo) (*dto.ReporteResponse, error)
	// ExportarCSV renders the report in the spreadsheet layout used by the
	// reports screen and returns the download file name with it.
	ExportarCSV(ctx context.Context, q dto.PeriodoQuery) (string, []byte, error)
	EncolarPDF(ctx context.Context, req dto.ReportePDFRequest) (*dto.ReportePDFResponse, error)
	// RutaPDF resolves a generated PDF inside the storage directory.
	RutaPDF(archivo string) (string, error)
}

// ReporteQueue is implemented by worker.Dispatcher.
type ReporteQueue interface {
	EnqueueReportePDF(ctx context.Context, p worker.ReportePDFPayload) error
}

type reporteService struct {
	repos       Repos
	opts        Options
	queue       ReporteQueue
	storagePath string
	negocio     string
}

func NewReporteService(repos Repos, opts Options, queue ReporteQueue, storagePath, negocio string) ReporteService {
	return &reporteService{
		repos:       repos,
		opts:        opts.withDefaults(),
		queue:       queue,
		storagePath: storagePath,
		negocio:     negocio,
	}
}

// ── Reporte ──────────────────────────────────────────────────────────────────

func (s *reporteService) Reporte(ctx context.Context, q dto.PeriodoQuery) (*dto.ReporteResponse, error) {
	p, err := finanzas.ResolverPeriodo(q.Periodo, q.Desde, q.Hasta, s.opts.ahora())
	if err != nil {
		return nil, err
	}
	return s.ReporteDe(ctx, p)
}

// ReporteDe builds the report for an already resolved window. Generado is
// stamped on every call, cached or not.
func (s *reporteService) ReporteDe(ctx context.Context, p finanzas.Periodo) (*dto.ReporteResponse, error) {
	p = finanzas.Periodo{Desde: p.Desde.In(s.opts.Location), Hasta: p.Hasta.In(s.opts.Location)}
	key := fmt.Sprintf("reporte:%d:%d", p.Desde.Unix(), p.Hasta.Unix())
	rep, err := cached(ctx, s.opts.Cache, key, func() (*dto.ReporteResponse, error) {
		e, err := cargarEntrada(ctx, s.repos, s.opts, p)
		if err != nil {
			return nil, err
		}
		r := finanzas.CalcularResumen(e)
		ventas := finanzas.VentasEnPeriodo(e.Ventas, p)

		return &dto.ReporteResponse{
			Rango:           finanzas.RangoLegible(p),
			Archivo:         finanzas.NombreArchivo(p),
			Resumen:         toResumenResponse(r),
			Metricas:        toMetricasResponse(finanzas.CalcularMetricas(e, r)),
			TopProductos:    toProductosVendidos(finanzas.TopProductos(ventas, e.Productos, true, limiteTopProductos)),
			VentasRecientes: toVentasResumen(finanzas.VentasRecientes(ventas, limiteVentasRecientes), s.opts.Location),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	out := *rep
	out.Generado = s.opts.ahora().Format("02/01/2006 15:04")
	return &out, nil
}

// ── CSV ──────────────────────────────────────────────────────────────────────

func (s *reporteService) ExportarCSV(ctx context.Context, q dto.PeriodoQuery) (string, []byte, error) {
	rep, err := s.Reporte(ctx, q)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("\ufeff") // UTF-8 BOM for Excel
	w := csv.NewWriter(&buf)
	w.UseCRLF = true

	r, m := rep.Resumen, rep.Metricas
	rows := [][]string{
		{"Reporte de ventas - " + s.negocio},
		{"Período: " + rep.Rango},
		{"Generado: " + rep.Generado},
		{},
		{"RESUMEN"},
		{"Total ventas (transacciones)", strconv.Itoa(m.TotalVentas)},
		{"Ingresos totales", "$" + r.IngresosTotales.StringFixed(2)},
		{"Costo de productos", "$" + r.CostoVentas.StringFixed(2)},
		{"Gastos administrativos (período)", "$" + r.TotalGastosAdmin.StringFixed(2)},
		{"Nóminas pagadas (período)", "$" + r.TotalNominas.StringFixed(2)},
		{"Ganancia bruta", "$" + r.GananciaBruta.StringFixed(2)},
		{"Ganancia neta", "$" + r.GananciaNeta.StringFixed(2)},
		{"Venta promedio", "$" + m.VentaPromedio.StringFixed(2)},
		{"Productos vendidos (unidades)", m.ProductosVendidos.String()},
		{"Margen ganancia (%)", m.MargenGanancia.StringFixed(2)},
		{},
		{"VENTAS DEL PERÍODO"},
		{"ID", "Fecha", "Total", "Pagado"},
	}
	for _, v := range rep.VentasRecientes {
		rows = append(rows, []string{
			strconv.FormatInt(v.ID, 10),
			v.Fecha,
			v.Total.StringFixed(2),
			v.Pagado.StringFixed(2),
		})
	}
	if err := w.WriteAll(rows); err != nil {
		return "", nil, fmt.Errorf("escribir csv: %w", err)
	}
	return rep.Archivo + ".csv", buf.Bytes(), nil
}

// ── PDF ──────────────────────────────────────────────────────────────────────

func (s *reporteService) EncolarPDF(ctx context.Context, req dto.ReportePDFRequest) (*dto.ReportePDFResponse, error) {
	p, err := finanzas.ResolverPeriodo(req.Periodo, req.Desde, req.Hasta, s.opts.ahora())
	if err != nil {
		return nil, err
	}
	if s.queue == nil {
		return nil, errors.New("cola de reportes no configurada")
	}

	jobID := uuid.NewString()
	archivo := fmt.Sprintf("%s-%s.pdf", finanzas.NombreArchivo(p), jobID[:8])
	payload := worker.ReportePDFPayload{
		JobID:   jobID,
		Archivo: archivo,
		Desde:   p.Desde,
		Hasta:   p.Hasta,
		Email:   req.Email,
	}
	if err := s.queue.EnqueueReportePDF(ctx, payload); err != nil {
		return nil, fmt.Errorf("encolar reporte: %w", err)
	}
	return &dto.ReportePDFResponse{
		JobID:   jobID,
		Archivo: archivo,
		URL:     "/v1/reportes/pdf/" + archivo,
	}, nil
}

func (s *reporteService) RutaPDF(archivo string) (string, error) {
	if archivo == "" || filepath.Base(archivo) != archivo || !strings.HasSuffix(archivo, ".pdf") {
		return "", ErrArchivoInvalido
	}
	ruta := filepath.Join(s.storagePath, archivo)
	if _, err := os.Stat(ruta); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrReporteNoDisponible
		}
		return "", err
	}
	return ruta, nil
}
