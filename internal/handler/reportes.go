package handler

import (
	"net/http"

	"posmejia/internal/dto"
	"posmejia/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Reporte godoc
// @Summary      Reporte de ventas
// @Description  Resumen, métricas, productos más vendidos y ventas recientes del período.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        periodo query string false "hoy | semana | mes | año | personalizado"
// @Param        desde   query string false "YYYY-MM-DD"
// @Param        hasta   query string false "YYYY-MM-DD"
// @Success      200 {object} dto.ReporteResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reportes [get]
func (h *ReportesHandler) Reporte(c *gin.Context) {
	var q dto.PeriodoQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.Reporte(c.Request.Context(), q)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportarCSV godoc
// @Summary      Exportar reporte CSV
// @Tags         reportes
// @Produce      text/csv
// @Security     BearerAuth
// @Param        periodo query string false "hoy | semana | mes | año | personalizado"
// @Success      200 {file} file
// @Router       /v1/reportes/csv [get]
func (h *ReportesHandler) ExportarCSV(c *gin.Context) {
	var q dto.PeriodoQuery
	if !bindQuery(c, &q) {
		return
	}
	nombre, data, err := h.svc.ExportarCSV(c.Request.Context(), q)
	if err != nil {
		responderError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// EncolarPDF godoc
// @Summary      Generar reporte PDF
// @Description  Encola la generación del PDF. El archivo queda disponible en la URL devuelta; con email se envía además por correo.
// @Tags         reportes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ReportePDFRequest true "Período y correo opcional"
// @Success      202 {object} dto.ReportePDFResponse
// @Failure      422 {object} apierror.ValidationError
// @Router       /v1/reportes/pdf [post]
func (h *ReportesHandler) EncolarPDF(c *gin.Context) {
	var req dto.ReportePDFRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EncolarPDF(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}

// DescargarPDF godoc
// @Summary      Descargar reporte PDF
// @Tags         reportes
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        archivo path string true "Nombre devuelto al encolar"
// @Success      200 {file} file
// @Failure      404 {object} apierror.APIError
// @Router       /v1/reportes/pdf/{archivo} [get]
func (h *ReportesHandler) DescargarPDF(c *gin.Context) {
	ruta, err := h.svc.RutaPDF(c.Param("archivo"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.FileAttachment(ruta, c.Param("archivo"))
}
