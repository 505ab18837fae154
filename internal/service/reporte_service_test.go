package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"posmejia/internal/dto"
	"posmejia/internal/finanzas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporte_Metricas(t *testing.T) {
	svc := NewReporteService(hoyFixture().repos(), opciones(), nil, t.TempDir(), "POS Juan Mejía")

	r, err := svc.Reporte(context.Background(), dto.PeriodoQuery{Periodo: "semana"})
	require.NoError(t, err)

	assert.Equal(t, "05/03/2025 - 12/03/2025", r.Rango)
	assert.Equal(t, "reporte-ventas-2025-03-05-2025-03-12", r.Archivo)
	assert.Equal(t, 2, r.Metricas.TotalVentas)
	assert.Equal(t, 2, r.Metricas.VentasPagadas)
	assertDec(t, "90", r.Metricas.VentaPromedio)
	assertDec(t, "55.56", r.Metricas.MargenGanancia)
	assertDec(t, "14", r.Metricas.ProductosVendidos)
	require.Len(t, r.TopProductos, 2)
	require.Len(t, r.VentasRecientes, 2)
}

func TestExportarCSV(t *testing.T) {
	svc := NewReporteService(hoyFixture().repos(), opciones(), nil, t.TempDir(), "POS Juan Mejía")

	nombre, data, err := svc.ExportarCSV(context.Background(), dto.PeriodoQuery{Periodo: "semana"})
	require.NoError(t, err)

	assert.Equal(t, "reporte-ventas-2025-03-05-2025-03-12.csv", nombre)
	out := string(data)
	assert.True(t, strings.HasPrefix(out, "\ufeffReporte de ventas - POS Juan Mejía\r\n"))
	assert.Contains(t, out, "Ganancia neta,$45.00\r\n")
	assert.Contains(t, out, "Margen ganancia (%),55.56\r\n")
	assert.Contains(t, out, "ID,Fecha,Total,Pagado\r\n2,2025-03-12 11:00,200.00,50.00\r\n1,2025-03-12 10:00,100.00,100.00\r\n")
}

func TestEncolarPDF(t *testing.T) {
	q := &fakeQueue{}
	svc := NewReporteService(hoyFixture().repos(), opciones(), q, t.TempDir(), "POS")
	email := "dueno@pos.mx"

	resp, err := svc.EncolarPDF(context.Background(), dto.ReportePDFRequest{
		PeriodoQuery: dto.PeriodoQuery{Periodo: "semana"},
		Email:        &email,
	})
	require.NoError(t, err)

	require.Len(t, q.jobs, 1)
	job := q.jobs[0]
	assert.Equal(t, resp.JobID, job.JobID)
	assert.Equal(t, resp.Archivo, job.Archivo)
	assert.True(t, strings.HasPrefix(resp.Archivo, "reporte-ventas-2025-03-05-2025-03-12-"))
	assert.True(t, strings.HasSuffix(resp.Archivo, ".pdf"))
	assert.Equal(t, "/v1/reportes/pdf/"+resp.Archivo, resp.URL)
	assert.Equal(t, &email, job.Email)
	assert.True(t, time.Date(2025, 3, 5, 0, 0, 0, 0, mx).Equal(job.Desde))
	assert.True(t, finanzas.FinDia(ahoraFijo).Equal(job.Hasta))

	_, err = svc.EncolarPDF(context.Background(), dto.ReportePDFRequest{PeriodoQuery: dto.PeriodoQuery{Periodo: "nunca"}})
	assert.ErrorIs(t, err, finanzas.ErrPeriodoInvalido)
	assert.Len(t, q.jobs, 1)
}

func TestEncolarPDF_VentanaFijaAlEncolar(t *testing.T) {
	ahora := time.Date(2025, 3, 12, 23, 59, 0, 0, mx)
	opts := opciones()
	opts.Now = func() time.Time { return ahora }
	q := &fakeQueue{}
	svc := NewReporteService(hoyFixture().repos(), opts, q, t.TempDir(), "POS")
	ctx := context.Background()

	resp, err := svc.EncolarPDF(ctx, dto.ReportePDFRequest{PeriodoQuery: dto.PeriodoQuery{Periodo: "semana"}})
	require.NoError(t, err)
	require.Len(t, q.jobs, 1)

	// the worker picks the job up after midnight
	ahora = ahora.Add(10 * time.Minute)
	job := q.jobs[0]
	rep, err := svc.ReporteDe(ctx, finanzas.Periodo{Desde: job.Desde, Hasta: job.Hasta})
	require.NoError(t, err)

	assert.Equal(t, "05/03/2025 - 12/03/2025", rep.Rango)
	assert.True(t, strings.HasPrefix(resp.Archivo, rep.Archivo+"-"))
}

func TestReporte_GeneradoFueraDeCache(t *testing.T) {
	ahora := ahoraFijo
	opts := opciones()
	opts.Now = func() time.Time { return ahora }
	cache := newFakeCache()
	opts.Cache = cache
	svc := NewReporteService(hoyFixture().repos(), opts, nil, t.TempDir(), "POS")
	ctx := context.Background()

	primero, err := svc.Reporte(ctx, dto.PeriodoQuery{Periodo: "semana"})
	require.NoError(t, err)
	assert.Equal(t, "12/03/2025 15:00", primero.Generado)

	ahora = ahora.Add(30 * time.Minute)
	segundo, err := svc.Reporte(ctx, dto.PeriodoQuery{Periodo: "semana"})
	require.NoError(t, err)

	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, "12/03/2025 15:30", segundo.Generado)
	assert.Equal(t, "12/03/2025 15:00", primero.Generado)
}

func TestRutaPDF(t *testing.T) {
	dir := t.TempDir()
	svc := NewReporteService(hoyFixture().repos(), opciones(), nil, dir, "POS")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "listo.pdf"), []byte("%PDF"), 0o644))

	_, err := svc.RutaPDF("../secreto.pdf")
	assert.ErrorIs(t, err, ErrArchivoInvalido)
	_, err = svc.RutaPDF("notas.txt")
	assert.ErrorIs(t, err, ErrArchivoInvalido)
	_, err = svc.RutaPDF("pendiente.pdf")
	assert.ErrorIs(t, err, ErrReporteNoDisponible)

	ruta, err := svc.RutaPDF("listo.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "listo.pdf"), ruta)
}
