// Package ahorro computes the recommended daily amount for savings goals.
// Days the user explicitly marked as "not saved" compress the remaining
// schedule, so the target is still reached by the deadline.
//
// Dates are civil dates: only year, month and day are read, in whatever
// location the value carries. Callers derive hoy from the business clock.
package ahorro

import (
	"time"

	"posmejia/internal/model"

	"github.com/shopspring/decimal"
)

// Dia is a civil date with no time of day.
type Dia struct {
	Anio int
	Mes  time.Month
	Dia  int
}

// DiaDe extracts the civil date of t in its own location.
func DiaDe(t time.Time) Dia {
	y, m, d := t.Date()
	return Dia{Anio: y, Mes: m, Dia: d}
}

// ParseDia parses YYYY-MM-DD.
func ParseDia(s string) (Dia, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Dia{}, err
	}
	return DiaDe(t), nil
}

func (d Dia) utc() time.Time {
	return time.Date(d.Anio, d.Mes, d.Dia, 0, 0, 0, 0, time.UTC)
}

// Time returns midnight UTC of the date, the form stored in date columns.
func (d Dia) Time() time.Time { return d.utc() }

func (d Dia) String() string { return d.utc().Format("2006-01-02") }

func (d Dia) Before(o Dia) bool { return d.utc().Before(o.utc()) }

func (d Dia) After(o Dia) bool { return d.utc().After(o.utc()) }

// Registro is the minimal view of a day record. Monto > 0 means saved,
// Monto == 0 means explicitly not saved.
type Registro struct {
	Fecha Dia
	Monto decimal.Decimal
}

// DesdeModelo converts stored day records.
func DesdeModelo(rs []model.RegistroAhorroDia) []Registro {
	out := make([]Registro, 0, len(rs))
	for _, r := range rs {
		out = append(out, Registro{Fecha: DiaDe(r.Fecha), Monto: r.Monto})
	}
	return out
}

// DiasHasta counts calendar days from hoy to limite, never negative. The
// count is taken on UTC dates so DST transitions cannot shift it.
func DiasHasta(limite, hoy Dia) int {
	n := int(limite.utc().Sub(hoy.utc()).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// DiasPerdidos counts records dated today or earlier with a zero amount.
func DiasPerdidos(registros []Registro, hoy Dia) int {
	n := 0
	for _, r := range registros {
		if !r.Fecha.After(hoy) && r.Monto.IsZero() {
			n++
		}
	}
	return n
}

// DiasRestantes is DiasHasta minus missed days, floored at one.
func DiasRestantes(limite, hoy Dia, registros []Registro) int {
	n := DiasHasta(limite, hoy) - DiasPerdidos(registros, hoy)
	if n < 1 {
		return 1
	}
	return n
}

// TotalAhorrado sums the positive records.
func TotalAhorrado(registros []Registro) decimal.Decimal {
	total := decimal.Zero
	for _, r := range registros {
		if r.Monto.IsPositive() {
			total = total.Add(r.Monto)
		}
	}
	return total
}

// AhorroDiario is the amount to set aside each remaining day, rounded to
// cents half-up.
func AhorroDiario(meta decimal.Decimal, limite, hoy Dia, registros []Registro) decimal.Decimal {
	restante := meta.Sub(TotalAhorrado(registros))
	if restante.IsNegative() {
		restante = decimal.Zero
	}
	dias := decimal.NewFromInt(int64(DiasRestantes(limite, hoy, registros)))
	return restante.Div(dias).Round(2)
}

// AhorroDiarioSimple is the preview shown before any day has been recorded.
// A deadline of today or earlier yields zero.
func AhorroDiarioSimple(meta decimal.Decimal, limite, hoy Dia) decimal.Decimal {
	dias := DiasHasta(limite, hoy)
	if dias <= 0 {
		return decimal.Zero
	}
	return meta.Div(decimal.NewFromInt(int64(dias))).Round(2)
}

// PuedeMarcar reports whether fecha may be recorded: not in the future and
// not past the deadline.
func PuedeMarcar(fecha, hoy, limite Dia) bool {
	return !fecha.After(hoy) && !fecha.After(limite)
}

// Resumen is the per-goal amortization view.
type Resumen struct {
	TotalAhorrado decimal.Decimal
	Restante      decimal.Decimal
	DiasRestantes int
	DiasPerdidos  int
	AhorroDiario  decimal.Decimal
	Vencida       bool
}

// Resumir computes the amortization view for one goal.
func Resumir(meta decimal.Decimal, limite, hoy Dia, registros []Registro) Resumen {
	total := TotalAhorrado(registros)
	restante := meta.Sub(total)
	if restante.IsNegative() {
		restante = decimal.Zero
	}
	return Resumen{
		TotalAhorrado: total,
		Restante:      restante,
		DiasRestantes: DiasRestantes(limite, hoy, registros),
		DiasPerdidos:  DiasPerdidos(registros, hoy),
		AhorroDiario:  AhorroDiario(meta, limite, hoy, registros),
		Vencida:       DiasHasta(limite, hoy) <= 0,
	}
}
