package service

import (
	"time"

	"posmejia/internal/ahorro"
	"posmejia/internal/dto"
	"posmejia/internal/finanzas"
	"posmejia/internal/model"
	"posmejia/internal/sueldos"

	"github.com/shopspring/decimal"
)

const (
	formatoFecha     = "2006-01-02"
	formatoFechaHora = "2006-01-02 15:04"
)

func toResumenResponse(r finanzas.Resumen) dto.ResumenResponse {
	return dto.ResumenResponse{
		Desde:              r.Periodo.Desde.Format(time.RFC3339),
		Hasta:              r.Periodo.Hasta.Format(time.RFC3339),
		VentasPeriodo:      r.VentasPeriodo,
		IngresosVentas:     r.IngresosVentas,
		IngresosLienzo:     r.IngresosLienzo,
		IngresosTotales:    r.IngresosTotales,
		CostoVentas:        r.CostoVentas,
		GananciaBruta:      r.GananciaBruta,
		GastosPeriodo:      r.GastosPeriodo,
		TotalGastosAdmin:   r.TotalGastosAdmin,
		NominasPeriodo:     r.NominasPeriodo,
		TotalNominas:       r.TotalNominas,
		GananciaNeta:       r.GananciaNeta,
		EfectivoDisponible: r.EfectivoDisponible,
		EfectivoBajo:       r.EfectivoBajo,
	}
}

func toMetricasResponse(m finanzas.Metricas) dto.MetricasResponse {
	return dto.MetricasResponse{
		TotalVentas:       m.TotalVentas,
		VentasPagadas:     m.VentasPagadas,
		VentaPromedio:     m.VentaPromedio.Round(2),
		MargenGanancia:    m.MargenGanancia.Round(2),
		ProductosVendidos: m.ProductosVendidos,
		CostoPromedio:     m.CostoPromedio.Round(2),
		GananciaPorVenta:  m.GananciaPorVenta.Round(2),
	}
}

func toVentaResumen(v model.Venta, loc *time.Location) dto.VentaResumen {
	return dto.VentaResumen{
		ID:        v.ID,
		Fecha:     v.Fecha.In(loc).Format(formatoFechaHora),
		Total:     v.Total,
		Pagado:    v.MontoPagado(),
		Pendiente: v.Pendiente(),
		Estado:    v.Estado,
		Items:     len(v.Items),
	}
}

func toVentasResumen(ventas []model.Venta, loc *time.Location) []dto.VentaResumen {
	out := make([]dto.VentaResumen, 0, len(ventas))
	for _, v := range ventas {
		out = append(out, toVentaResumen(v, loc))
	}
	return out
}

func toProductosVendidos(ps []finanzas.ProductoVendido) []dto.ProductoVendidoResponse {
	out := make([]dto.ProductoVendidoResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, dto.ProductoVendidoResponse{
			ProductoID: p.ProductoID,
			Nombre:     p.Nombre,
			Cantidad:   p.Cantidad,
			Total:      p.Total,
			Stock:      p.Stock,
		})
	}
	return out
}

func toEmpleadoResponse(e model.Empleado) dto.EmpleadoResponse {
	return dto.EmpleadoResponse{ID: e.ID, Nombre: e.Nombre, Sueldo: e.Sueldo, Puesto: e.Puesto}
}

func toSueldosResponse(r finanzas.Resumen, e sueldos.Estado, loc *time.Location) dto.SueldosResponse {
	resp := dto.SueldosResponse{
		Resumen:          toResumenResponse(r),
		Semana:           e.Semana,
		TotalSueldos:     e.TotalSueldos,
		PagadosSemana:    make([]dto.EmpleadoResponse, 0, len(e.PagadosSemana)),
		Pendientes:       make([]dto.LineaNominaResponse, 0, len(e.Pendientes)),
		TotalBruto:       e.TotalBruto,
		TotalDescuentos:  e.TotalDescuentos,
		TotalNeto:        e.TotalNeto,
		AdelantosActivos: make([]dto.AdelantoResponse, 0, len(e.AdelantosActivos)),
		SaldoAdelantos:   e.SaldoAdelantos,
	}
	for _, emp := range e.PagadosSemana {
		resp.PagadosSemana = append(resp.PagadosSemana, toEmpleadoResponse(emp))
	}
	for _, l := range e.Pendientes {
		resp.Pendientes = append(resp.Pendientes, dto.LineaNominaResponse{
			Empleado:      toEmpleadoResponse(l.Empleado),
			Dias:          l.Dias,
			Bruto:         l.Bruto,
			Descuento:     l.Descuento,
			Neto:          l.Neto,
			SaldoAdelanto: l.SaldoAdelanto,
		})
	}
	for _, a := range e.AdelantosActivos {
		resp.AdelantosActivos = append(resp.AdelantosActivos, toAdelantoResponse(a, loc))
	}
	return resp
}

func toAdelantoResponse(a model.Adelanto, loc *time.Location) dto.AdelantoResponse {
	return dto.AdelantoResponse{
		ID:             a.ID,
		EmpleadoID:     a.EmpleadoID,
		Nombre:         a.Nombre,
		MontoTotal:     a.MontoTotal,
		Semanas:        a.Semanas,
		MontoPorSemana: a.MontoPorSemana,
		SaldoPendiente: a.SaldoPendiente,
		Fecha:          a.Fecha.In(loc).Format(formatoFecha),
	}
}

func toEventosResponse(eventos []sueldos.Evento, loc *time.Location) []dto.EventoNominaResponse {
	out := make([]dto.EventoNominaResponse, 0, len(eventos))
	for _, ev := range eventos {
		r := dto.EventoNominaResponse{
			Fecha:     ev.Fecha,
			Nominas:   make([]dto.NominaResumen, 0, len(ev.Nominas)),
			Adelantos: make([]dto.AdelantoResponse, 0, len(ev.Adelantos)),
		}
		for _, n := range ev.Nominas {
			r.Nominas = append(r.Nominas, dto.NominaResumen{ID: n.ID, Total: n.Total, Empleados: len(n.Items)})
		}
		for _, a := range ev.Adelantos {
			r.Adelantos = append(r.Adelantos, toAdelantoResponse(a, loc))
		}
		out = append(out, r)
	}
	return out
}

func toLienzoResponse(b finanzas.BalanceLienzo, loc *time.Location) dto.LienzoBalanceResponse {
	resp := dto.LienzoBalanceResponse{
		Desde:       b.Periodo.Desde.Format(time.RFC3339),
		Hasta:       b.Periodo.Hasta.Format(time.RFC3339),
		Ingresos:    b.Ingresos,
		Gastos:      b.Gastos,
		Balance:     b.Balance,
		Movimientos: make([]dto.MovimientoLienzoResponse, 0, len(b.Movimientos)),
	}
	for _, m := range b.Movimientos {
		resp.Movimientos = append(resp.Movimientos, dto.MovimientoLienzoResponse{
			ID:          m.ID,
			Fecha:       m.Fecha.In(loc).Format(formatoFechaHora),
			Tipo:        m.Tipo,
			Monto:       m.Monto,
			Descripcion: m.Descripcion,
		})
	}
	return resp
}

func toMetaResponse(m model.MetaAhorro, r ahorro.Resumen) dto.MetaResponse {
	return dto.MetaResponse{
		ID:            m.ID,
		Nombre:        m.Nombre,
		Meta:          m.Meta,
		FechaLimite:   ahorro.DiaDe(m.FechaLimite).String(),
		Estado:        m.Estado,
		TotalAhorrado: r.TotalAhorrado,
		Restante:      r.Restante,
		DiasRestantes: r.DiasRestantes,
		DiasPerdidos:  r.DiasPerdidos,
		AhorroDiario:  r.AhorroDiario,
		Vencida:       r.Vencida,
	}
}

func toCalendarioResponse(metaID int64, c ahorro.Calendario, diario decimal.Decimal) dto.CalendarioResponse {
	resp := dto.CalendarioResponse{
		MetaID:       metaID,
		Anio:         c.Anio,
		Mes:          int(c.Mes),
		AhorroDiario: diario,
		Celdas:       make([]dto.CeldaResponse, 0, len(c.Celdas)),
	}
	for _, cel := range c.Celdas {
		resp.Celdas = append(resp.Celdas, dto.CeldaResponse{
			Fecha:       cel.Fecha,
			Dia:         cel.Dia,
			Estado:      cel.Estado,
			Monto:       cel.Monto,
			PuedeMarcar: cel.PuedeMarcar,
		})
	}
	return resp
}
