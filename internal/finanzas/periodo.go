package finanzas

import (
	"errors"
	"fmt"
	"time"
)

// Periodo is an inclusive [Desde, Hasta] window compared as instants.
type Periodo struct {
	Desde time.Time
	Hasta time.Time
}

// Contiene reports whether t falls inside the window, both ends included.
func (p Periodo) Contiene(t time.Time) bool {
	return !t.Before(p.Desde) && !t.After(p.Hasta)
}

// Preset names accepted by ResolverPeriodo.
const (
	PeriodoHoy           = "hoy"
	PeriodoSemana        = "semana"
	PeriodoMes           = "mes"
	PeriodoAnio          = "año"
	PeriodoPersonalizado = "personalizado"
)

var ErrPeriodoInvalido = errors.New("periodo inválido")

const formatoFecha = "2006-01-02"

// InicioDia returns local midnight of t's calendar day.
func InicioDia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FinDia returns the last millisecond of t's calendar day.
func FinDia(t time.Time) time.Time {
	return InicioDia(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}

// Hoy covers the current calendar day.
func Hoy(ahora time.Time) Periodo {
	return Periodo{Desde: InicioDia(ahora), Hasta: FinDia(ahora)}
}

// UltimosDias goes back n calendar days from today's midnight and ends at
// the end of today.
func UltimosDias(ahora time.Time, n int) Periodo {
	return Periodo{Desde: InicioDia(ahora).AddDate(0, 0, -n), Hasta: FinDia(ahora)}
}

// UltimoMes goes back one month from today's midnight.
func UltimoMes(ahora time.Time) Periodo {
	return Periodo{Desde: InicioDia(ahora).AddDate(0, -1, 0), Hasta: FinDia(ahora)}
}

// UltimoAnio goes back one year from today's midnight.
func UltimoAnio(ahora time.Time) Periodo {
	return Periodo{Desde: InicioDia(ahora).AddDate(-1, 0, 0), Hasta: FinDia(ahora)}
}

// MesCalendario covers the current month, from the 1st at 00:00 to the last
// day at 23:59:59.
func MesCalendario(ahora time.Time) Periodo {
	y, m, _ := ahora.Date()
	loc := ahora.Location()
	return Periodo{
		Desde: time.Date(y, m, 1, 0, 0, 0, 0, loc),
		Hasta: time.Date(y, m+1, 0, 23, 59, 59, 0, loc),
	}
}

// SemanaNomina is the payroll screen window: seven days back from today's
// midnight up to the current instant.
func SemanaNomina(ahora time.Time) Periodo {
	return Periodo{Desde: InicioDia(ahora).AddDate(0, 0, -7), Hasta: ahora}
}

// Personalizado builds a range from optional YYYY-MM-DD bounds in loc.
// A missing start means the epoch; a missing end means ahora.
func Personalizado(desde, hasta string, ahora time.Time) (Periodo, error) {
	loc := ahora.Location()
	p := Periodo{Desde: time.Unix(0, 0).In(loc), Hasta: ahora}
	if desde != "" {
		d, err := time.ParseInLocation(formatoFecha, desde, loc)
		if err != nil {
			return Periodo{}, fmt.Errorf("%w: desde %q", ErrPeriodoInvalido, desde)
		}
		p.Desde = d
	}
	if hasta != "" {
		h, err := time.ParseInLocation(formatoFecha, hasta, loc)
		if err != nil {
			return Periodo{}, fmt.Errorf("%w: hasta %q", ErrPeriodoInvalido, hasta)
		}
		p.Hasta = time.Date(h.Year(), h.Month(), h.Day(), 23, 59, 59, 0, loc)
	}
	if p.Hasta.Before(p.Desde) {
		return Periodo{}, fmt.Errorf("%w: hasta anterior a desde", ErrPeriodoInvalido)
	}
	return p, nil
}

// ResolverPeriodo maps a preset name (as used by the reports screen) to a
// concrete window. An empty name defaults to the last year.
func ResolverPeriodo(nombre, desde, hasta string, ahora time.Time) (Periodo, error) {
	switch nombre {
	case PeriodoHoy:
		return Hoy(ahora), nil
	case PeriodoSemana:
		return UltimosDias(ahora, 7), nil
	case PeriodoMes:
		return UltimoMes(ahora), nil
	case PeriodoAnio, "anio", "":
		return UltimoAnio(ahora), nil
	case PeriodoPersonalizado:
		return Personalizado(desde, hasta, ahora)
	default:
		return Periodo{}, fmt.Errorf("%w: %q", ErrPeriodoInvalido, nombre)
	}
}
