package sueldos

import (
	"testing"
	"time"

	"posmejia/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strp(s string) *string { return &s }

func TestLunesSemana(t *testing.T) {
	tests := []struct {
		fecha time.Time
		want  string
	}{
		{time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), "2025-03-10"},
		{time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC), "2025-03-10"},
		{time.Date(2025, 3, 16, 22, 0, 0, 0, time.UTC), "2025-03-10"},
		{time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), "2025-03-17"},
		{time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC), "2025-02-24"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, LunesSemana(tc.fecha), tc.fecha.String())
	}
}

func TestPagoProrrateado(t *testing.T) {
	assert.Equal(t, "1000.00", PagoProrrateado(dec("1000"), 7).StringFixed(2))
	assert.Equal(t, "428.57", PagoProrrateado(dec("1000"), 3).StringFixed(2))
	assert.Equal(t, "142.86", PagoProrrateado(dec("1000"), -4).StringFixed(2))
	assert.Equal(t, "1000.00", PagoProrrateado(dec("1000"), 12).StringFixed(2))
	assert.Equal(t, "1000.00", PagoProrrateado(dec("1000"), 0).StringFixed(2))
}

func TestCalcularEstado(t *testing.T) {
	ahora := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)
	empleados := []model.Empleado{
		{ID: 1, Nombre: "Ana", Sueldo: dec("1400")},
		{ID: 2, Nombre: "Luis", Sueldo: dec("700")},
		{ID: 3, Nombre: "Eva", Sueldo: dec("2100")},
	}
	nominas := []model.Nomina{{
		ID:    9,
		Fecha: time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC),
		Total: dec("2100"),
		Items: []model.NominaItem{{EmpleadoID: 3, Monto: dec("2100"), Semana: strp("2025-03-10")}},
	}}
	adelantos := []model.Adelanto{
		{EmpleadoID: 1, MontoPorSemana: dec("100"), SaldoPendiente: dec("300"), Fecha: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), Estado: AdelantoActivo},
		{EmpleadoID: 2, MontoPorSemana: dec("50"), SaldoPendiente: dec("100"), Fecha: time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC), Estado: AdelantoActivo},
		{EmpleadoID: 1, MontoPorSemana: dec("999"), SaldoPendiente: dec("0"), Fecha: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), Estado: AdelantoLiquidado},
	}

	e := CalcularEstado(empleados, nominas, adelantos, map[int64]int{2: 3}, ahora)

	assert.Equal(t, "2025-03-10", e.Semana)
	assert.Equal(t, "4200", e.TotalSueldos.String())
	require.Len(t, e.PagadosSemana, 1)
	assert.Equal(t, int64(3), e.PagadosSemana[0].ID)

	require.Len(t, e.Pendientes, 2)
	ana, luis := e.Pendientes[0], e.Pendientes[1]
	assert.Equal(t, 7, ana.Dias)
	assert.True(t, dec("1400").Equal(ana.Bruto))
	assert.True(t, dec("100").Equal(ana.Descuento))
	assert.True(t, dec("1300").Equal(ana.Neto))
	assert.True(t, dec("300").Equal(ana.SaldoAdelanto))

	// granted this week: nothing withheld yet
	assert.Equal(t, 3, luis.Dias)
	assert.True(t, dec("300").Equal(luis.Bruto))
	assert.True(t, luis.Descuento.IsZero())

	assert.True(t, dec("1700").Equal(e.TotalBruto))
	assert.True(t, dec("1600").Equal(e.TotalNeto))
	assert.Len(t, e.AdelantosActivos, 2)
	assert.True(t, dec("400").Equal(e.SaldoAdelantos))
}

func TestEventosPorFecha(t *testing.T) {
	nominas := []model.Nomina{{ID: 1, Fecha: time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)}}
	adelantos := []model.Adelanto{
		{ID: 2, Fecha: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)},
		{ID: 3, Fecha: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)},
	}

	ev := EventosPorFecha(nominas, adelantos, time.UTC)

	require.Len(t, ev, 2)
	assert.Equal(t, "2025-03-01", ev[0].Fecha)
	assert.Equal(t, "2025-03-10", ev[1].Fecha)
	assert.Len(t, ev[1].Nominas, 1)
	assert.Len(t, ev[1].Adelantos, 1)
}
