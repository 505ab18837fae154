package ahorro

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cell states.
const (
	EstadoVerde     = "verde"
	EstadoRojo      = "rojo"
	EstadoSinMarcar = "sin_marcar"
	EstadoFuturo    = "futuro"
)

// Celda is one day of the month grid. Blank leading cells have Dia == 0.
type Celda struct {
	Fecha       string
	Dia         int
	Estado      string
	Monto       *decimal.Decimal
	PuedeMarcar bool
}

// Calendario is a month grid whose first row starts on Sunday.
type Calendario struct {
	Anio   int
	Mes    time.Month
	Celdas []Celda
}

// ConstruirCalendario lays out the month with one leading blank per weekday
// before the 1st. Later records for the same date win.
func ConstruirCalendario(anio int, mes time.Month, hoy, limite Dia, registros []Registro) Calendario {
	montos := make(map[Dia]decimal.Decimal, len(registros))
	for _, r := range registros {
		montos[r.Fecha] = r.Monto
	}

	primero := time.Date(anio, mes, 1, 0, 0, 0, 0, time.UTC)
	diasEnMes := primero.AddDate(0, 1, -1).Day()
	blancos := int(primero.Weekday())

	cal := Calendario{Anio: anio, Mes: mes, Celdas: make([]Celda, 0, blancos+diasEnMes)}
	for i := 0; i < blancos; i++ {
		cal.Celdas = append(cal.Celdas, Celda{Estado: EstadoFuturo})
	}
	for d := 1; d <= diasEnMes; d++ {
		fecha := Dia{Anio: anio, Mes: mes, Dia: d}
		c := Celda{
			Fecha:       fecha.String(),
			Dia:         d,
			PuedeMarcar: PuedeMarcar(fecha, hoy, limite),
		}
		monto, registrado := montos[fecha]
		if registrado {
			m := monto
			c.Monto = &m
		}
		c.Estado = estadoCelda(registrado, monto, !fecha.After(hoy))
		cal.Celdas = append(cal.Celdas, c)
	}
	return cal
}

func estadoCelda(registrado bool, monto decimal.Decimal, pasadoOHoy bool) string {
	switch {
	case registrado && monto.IsPositive():
		return EstadoVerde
	case registrado && monto.IsZero() && pasadoOHoy:
		return EstadoRojo
	case !registrado && pasadoOHoy:
		return EstadoSinMarcar
	default:
		return EstadoFuturo
	}
}
