package worker

// reporte_worker.go
// Renders sales report PDFs off the request path. The file is written under
// a temporary name and renamed when complete, so a download never sees a
// partial PDF. When an e-mail address came with the request, a mail job is
// queued for the finished file.

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"posmejia/internal/dto"
	"posmejia/internal/finanzas"
	"posmejia/internal/infra"

	"github.com/rs/zerolog/log"
)

// ReportePDFPayload is the job envelope sent to QueueReportes. The window is
// resolved at enqueue time so the file name and its contents always agree.
type ReportePDFPayload struct {
	JobID   string    `json:"job_id"`
	Archivo string    `json:"archivo"`
	Desde   time.Time `json:"desde"`
	Hasta   time.Time `json:"hasta"`
	Email   *string   `json:"email,omitempty"`
}

// ReporteBuilder computes the report; service.ReporteService implements it.
type ReporteBuilder interface {
	ReporteDe(ctx context.Context, p finanzas.Periodo) (*dto.ReporteResponse, error)
}

type ReporteWorker struct {
	builder     ReporteBuilder
	dispatcher  *Dispatcher
	storagePath string
	negocio     string
}

func NewReporteWorker(builder ReporteBuilder, dispatcher *Dispatcher, storagePath, negocio string) *ReporteWorker {
	return &ReporteWorker{
		builder:     builder,
		dispatcher:  dispatcher,
		storagePath: storagePath,
		negocio:     negocio,
	}
}

func (w *ReporteWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReportePDFPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("reporte_worker: invalid payload: %w", err)
	}
	if payload.Archivo == "" || filepath.Base(payload.Archivo) != payload.Archivo {
		return fmt.Errorf("reporte_worker: invalid archivo %q", payload.Archivo)
	}

	if payload.Desde.IsZero() || payload.Hasta.Before(payload.Desde) {
		return fmt.Errorf("reporte_worker: invalid window %s - %s", payload.Desde, payload.Hasta)
	}

	rep, err := w.builder.ReporteDe(ctx, finanzas.Periodo{Desde: payload.Desde, Hasta: payload.Hasta})
	if err != nil {
		return fmt.Errorf("reporte_worker: build report: %w", err)
	}
	rep.Archivo = payload.Archivo

	tmp, err := infra.GenerateReportePDF(rep, w.negocio, w.storagePath, payload.Archivo+".part")
	if err != nil {
		return fmt.Errorf("reporte_worker: %w", err)
	}
	final := filepath.Join(w.storagePath, payload.Archivo)
	if err := os.Rename(tmp, final); err != nil {
		return fmt.Errorf("reporte_worker: publish pdf: %w", err)
	}
	log.Info().Str("job", JobReportePDF).Str("job_id", payload.JobID).Str("pdf", final).Msg("reporte_worker: PDF generated")

	if payload.Email == nil || *payload.Email == "" {
		return nil
	}
	mail := EmailJobPayload{
		ToEmail: *payload.Email,
		Subject: fmt.Sprintf("%s: reporte de ventas %s", w.negocio, rep.Rango),
		Body: fmt.Sprintf("Adjunto el reporte de ventas del periodo %s.\nIngresos totales: $%s\nGanancia neta: $%s",
			rep.Rango, rep.Resumen.IngresosTotales.StringFixed(2), rep.Resumen.GananciaNeta.StringFixed(2)),
		PDFPath: final,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, mail); err != nil {
		// PDF is published; a mail failure does not fail the job.
		log.Warn().Err(err).Str("email", *payload.Email).Msg("reporte_worker: failed to enqueue email")
	}
	return nil
}
