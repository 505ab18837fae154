package handler

import (
	"net/http"
	"strconv"

	"posmejia/internal/apierror"
	"posmejia/internal/dto"
	"posmejia/internal/service"

	"github.com/gin-gonic/gin"
)

type FinanzasHandler struct{ svc service.FinanzasService }

func NewFinanzasHandler(svc service.FinanzasService) *FinanzasHandler {
	return &FinanzasHandler{svc: svc}
}

// Resumen godoc
// @Summary      Resumen financiero
// @Description  Ingresos, costo de ventas, gastos, nóminas y ganancia neta del período. Es el mismo cálculo que usan todas las pantallas.
// @Tags         finanzas
// @Produce      json
// @Security     BearerAuth
// @Param        periodo query string false "hoy | semana | mes | año | personalizado (default: año)"
// @Param        desde   query string false "YYYY-MM-DD (personalizado)"
// @Param        hasta   query string false "YYYY-MM-DD (personalizado)"
// @Success      200 {object} dto.ResumenResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/finanzas/resumen [get]
func (h *FinanzasHandler) Resumen(c *gin.Context) {
	var q dto.PeriodoQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.Resumen(c.Request.Context(), q)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Dashboard godoc
// @Summary      Dashboard
// @Description  Resumen de los últimos 7 días, transacciones de hoy, ventas recientes y productos más vendidos.
// @Tags         finanzas
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.DashboardResponse
// @Router       /v1/finanzas/dashboard [get]
func (h *FinanzasHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GastosAdmin godoc
// @Summary      Gastos administrativos
// @Description  Resumen del mes calendario más la lista filtrada de gastos y su desglose por categoría.
// @Tags         finanzas
// @Produce      json
// @Security     BearerAuth
// @Param        categoria query string false "Categoría (Todos = sin filtro)"
// @Param        desde     query string false "YYYY-MM-DD"
// @Param        hasta     query string false "YYYY-MM-DD"
// @Success      200 {object} dto.GastosAdminResponse
// @Router       /v1/finanzas/gastos-admin [get]
func (h *FinanzasHandler) GastosAdmin(c *gin.Context) {
	var q dto.GastosQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.GastosAdmin(c.Request.Context(), q)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Sueldos godoc
// @Summary      Sueldos
// @Description  Resumen de la semana de nómina, empleados pendientes de pago, adelantos activos y calendario del mes.
// @Tags         finanzas
// @Produce      json
// @Security     BearerAuth
// @Param        anio query int    false "año del calendario de nómina"
// @Param        mes  query int    false "mes del calendario de nómina (1-12)"
// @Param        dias query object false "días trabajados por empleado: dias[<empleado_id>]=<n>"
// @Success      200 {object} dto.SueldosResponse
// @Router       /v1/finanzas/sueldos [get]
func (h *FinanzasHandler) Sueldos(c *gin.Context) {
	var q dto.SueldosQuery
	if !bindQuery(c, &q) {
		return
	}
	dias, ok := diasTrabajados(c)
	if !ok {
		return
	}
	q.Dias = dias

	resp, err := h.svc.Sueldos(c.Request.Context(), q)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LienzoBalance godoc
// @Summary      Balance Lienzo Charro
// @Tags         lienzo
// @Produce      json
// @Security     BearerAuth
// @Param        periodo query string false "dia | semana | mes | año | todos (default: mes)"
// @Param        tipo    query string false "todos | ingreso | gasto"
// @Success      200 {object} dto.LienzoBalanceResponse
// @Router       /v1/lienzo/balance [get]
func (h *FinanzasHandler) LienzoBalance(c *gin.Context) {
	var q dto.LienzoQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.LienzoBalance(c.Request.Context(), q)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deudores godoc
// @Summary      Deudores
// @Description  Ventas pendientes agrupadas por cliente, mayor deuda primero.
// @Tags         deudores
// @Produce      json
// @Security     BearerAuth
// @Param        buscar query string false "Nombre o teléfono"
// @Success      200 {object} dto.DeudoresResponse
// @Router       /v1/deudores [get]
func (h *FinanzasHandler) Deudores(c *gin.Context) {
	var q dto.DeudoresQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.Deudores(c.Request.Context(), q)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// diasTrabajados reads dias[<empleado_id>]=<n>. Values outside 1..7 are
// clamped later; anything non-numeric is a 422.
func diasTrabajados(c *gin.Context) (map[int64]int, bool) {
	raw := c.QueryMap("dias")
	if len(raw) == 0 {
		return nil, true
	}
	dias := make(map[int64]int, len(raw))
	invalidos := map[string]string{}
	for k, v := range raw {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil || id <= 0 {
			invalidos["dias["+k+"]"] = "empleado invalido"
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			invalidos["dias["+k+"]"] = "debe ser numerico"
			continue
		}
		dias[id] = n
	}
	if len(invalidos) > 0 {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(invalidos))
		return nil, false
	}
	return dias, true
}
