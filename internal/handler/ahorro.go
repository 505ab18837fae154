package handler

import (
	"net/http"

	"posmejia/internal/dto"
	"posmejia/internal/service"

	"github.com/gin-gonic/gin"
)

type AhorroHandler struct{ svc service.AhorroService }

func NewAhorroHandler(svc service.AhorroService) *AhorroHandler {
	return &AhorroHandler{svc: svc}
}

// ListarMetas godoc
// @Summary      Metas de ahorro
// @Description  Metas con su resumen de amortización y el ahorro diario total de las metas activas.
// @Tags         metas
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.MetasResponse
// @Router       /v1/metas [get]
func (h *AhorroHandler) ListarMetas(c *gin.Context) {
	resp, err := h.svc.ListarMetas(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Calendario godoc
// @Summary      Calendario de una meta
// @Tags         metas
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int true  "ID de la meta"
// @Param        anio query int false "Año (default: actual)"
// @Param        mes  query int false "Mes 1-12 (default: actual)"
// @Success      200 {object} dto.CalendarioResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/metas/{id}/calendario [get]
func (h *AhorroHandler) Calendario(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var q dto.CalendarioQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.Calendario(c.Request.Context(), id, q)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarDia godoc
// @Summary      Marcar un día
// @Description  Registra si se ahorró en una fecha. Un día solo tiene un registro; volver a marcarlo lo reemplaza.
// @Tags         metas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                     true "ID de la meta"
// @Param        body body dto.RegistrarDiaRequest true "Fecha y resultado"
// @Success      200 {object} dto.RegistroDiaResponse
// @Failure      422 {object} apierror.APIError
// @Router       /v1/metas/{id}/dias [put]
func (h *AhorroHandler) RegistrarDia(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.RegistrarDiaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarDia(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Sugerencia godoc
// @Summary      Sugerencia de ahorro diario
// @Tags         metas
// @Produce      json
// @Security     BearerAuth
// @Param        meta         query string true "Monto objetivo"
// @Param        fecha_limite query string true "YYYY-MM-DD"
// @Success      200 {object} dto.SugerenciaResponse
// @Router       /v1/metas/sugerencia [get]
func (h *AhorroHandler) Sugerencia(c *gin.Context) {
	var q dto.SugerenciaQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.Sugerencia(c.Request.Context(), q)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
