// Package sueldos derives the weekly payroll status: who is still unpaid
// this week, prorated pay and salary-advance withholding.
package sueldos

import (
	"sort"
	"time"

	"posmejia/internal/model"

	"github.com/shopspring/decimal"
)

const (
	DiasSemana        = 7
	AdelantoActivo    = "activo"
	AdelantoLiquidado = "liquidado"
)

var siete = decimal.NewFromInt(DiasSemana)

// LunesSemana returns the Monday (YYYY-MM-DD) of t's week, which is the key
// payroll items carry in their Semana field. Sunday belongs to the week that
// started six days earlier.
func LunesSemana(t time.Time) string {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

// ClampDias limits days worked to [1, 7]. Zero means a full week.
func ClampDias(dias int) int {
	switch {
	case dias == 0:
		return DiasSemana
	case dias < 1:
		return 1
	case dias > DiasSemana:
		return DiasSemana
	}
	return dias
}

// PagoProrrateado is sueldo*dias/7 rounded to cents.
func PagoProrrateado(sueldo decimal.Decimal, dias int) decimal.Decimal {
	return sueldo.Mul(decimal.NewFromInt(int64(ClampDias(dias)))).Div(siete).Round(2)
}

// PagadosEnSemana collects the employees with a payroll item keyed to semana.
func PagadosEnSemana(nominas []model.Nomina, semana string) map[int64]bool {
	pagados := make(map[int64]bool)
	for _, n := range nominas {
		for _, it := range n.Items {
			if it.Semana != nil && *it.Semana == semana {
				pagados[it.EmpleadoID] = true
			}
		}
	}
	return pagados
}

// SaldoPorEmpleado sums the outstanding balance of active advances.
func SaldoPorEmpleado(adelantos []model.Adelanto) map[int64]decimal.Decimal {
	out := make(map[int64]decimal.Decimal)
	for _, a := range adelantos {
		if a.Estado != AdelantoActivo {
			continue
		}
		out[a.EmpleadoID] = out[a.EmpleadoID].Add(a.SaldoPendiente)
	}
	return out
}

// DescuentoPorEmpleado is the weekly withholding per employee. An advance is
// only withheld from weeks strictly after the one it was granted in.
func DescuentoPorEmpleado(adelantos []model.Adelanto, semana string, loc *time.Location) map[int64]decimal.Decimal {
	out := make(map[int64]decimal.Decimal)
	for _, a := range adelantos {
		if a.Estado != AdelantoActivo || a.Fecha.IsZero() {
			continue
		}
		if semana <= LunesSemana(a.Fecha.In(loc)) {
			continue
		}
		out[a.EmpleadoID] = out[a.EmpleadoID].Add(a.MontoPorSemana)
	}
	return out
}

// LineaNomina is the proposed pay for one unpaid employee.
type LineaNomina struct {
	Empleado      model.Empleado
	Dias          int
	Bruto         decimal.Decimal
	Descuento     decimal.Decimal
	Neto          decimal.Decimal
	SaldoAdelanto decimal.Decimal
}

// Estado is the payroll screen status for the current week.
type Estado struct {
	Semana           string
	TotalSueldos     decimal.Decimal
	PagadosSemana    []model.Empleado
	Pendientes       []LineaNomina
	TotalBruto       decimal.Decimal
	TotalDescuentos  decimal.Decimal
	TotalNeto        decimal.Decimal
	AdelantosActivos []model.Adelanto
	SaldoAdelantos   decimal.Decimal
}

// CalcularEstado builds the week status at ahora. dias optionally overrides
// days worked per employee; missing entries mean a full week.
func CalcularEstado(empleados []model.Empleado, nominas []model.Nomina, adelantos []model.Adelanto, dias map[int64]int, ahora time.Time) Estado {
	semana := LunesSemana(ahora)
	pagados := PagadosEnSemana(nominas, semana)
	saldos := SaldoPorEmpleado(adelantos)
	descuentos := DescuentoPorEmpleado(adelantos, semana, ahora.Location())

	e := Estado{
		Semana:          semana,
		TotalSueldos:    decimal.Zero,
		PagadosSemana:   []model.Empleado{},
		Pendientes:      []LineaNomina{},
		TotalBruto:      decimal.Zero,
		TotalDescuentos: decimal.Zero,
		SaldoAdelantos:  decimal.Zero,
	}

	for _, emp := range empleados {
		e.TotalSueldos = e.TotalSueldos.Add(emp.Sueldo)
		if pagados[emp.ID] {
			e.PagadosSemana = append(e.PagadosSemana, emp)
			continue
		}
		d := ClampDias(dias[emp.ID])
		l := LineaNomina{
			Empleado:      emp,
			Dias:          d,
			Bruto:         PagoProrrateado(emp.Sueldo, d),
			Descuento:     descuentos[emp.ID],
			SaldoAdelanto: saldos[emp.ID],
		}
		l.Neto = l.Bruto.Sub(l.Descuento)
		e.Pendientes = append(e.Pendientes, l)
		e.TotalBruto = e.TotalBruto.Add(l.Bruto)
		e.TotalDescuentos = e.TotalDescuentos.Add(l.Descuento)
	}
	e.TotalNeto = e.TotalBruto.Sub(e.TotalDescuentos)

	for _, a := range adelantos {
		if a.Estado == AdelantoActivo {
			e.AdelantosActivos = append(e.AdelantosActivos, a)
			e.SaldoAdelantos = e.SaldoAdelantos.Add(a.SaldoPendiente)
		}
	}
	return e
}

// Evento groups what happened on one day of the payroll calendar.
type Evento struct {
	Fecha     string
	Nominas   []model.Nomina
	Adelantos []model.Adelanto
}

// EventosPorFecha indexes payroll runs and advances by local calendar day,
// sorted by date.
func EventosPorFecha(nominas []model.Nomina, adelantos []model.Adelanto, loc *time.Location) []Evento {
	idx := make(map[string]*Evento)
	get := func(t time.Time) *Evento {
		k := t.In(loc).Format("2006-01-02")
		ev, ok := idx[k]
		if !ok {
			ev = &Evento{Fecha: k}
			idx[k] = ev
		}
		return ev
	}
	for _, n := range nominas {
		if n.Fecha.IsZero() {
			continue
		}
		ev := get(n.Fecha)
		ev.Nominas = append(ev.Nominas, n)
	}
	for _, a := range adelantos {
		if a.Fecha.IsZero() {
			continue
		}
		ev := get(a.Fecha)
		ev.Adelantos = append(ev.Adelantos, a)
	}

	out := make([]Evento, 0, len(idx))
	for _, ev := range idx {
		out = append(out, *ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha < out[j].Fecha })
	return out
}
