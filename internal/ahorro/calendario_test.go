package ahorro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstruirCalendario_Layout(t *testing.T) {
	// March 2025 starts on a Saturday.
	cal := ConstruirCalendario(2025, time.March, dia("2025-03-10"), dia("2025-03-31"), nil)

	require.Len(t, cal.Celdas, 6+31)
	for i := 0; i < 6; i++ {
		assert.Equal(t, 0, cal.Celdas[i].Dia)
		assert.False(t, cal.Celdas[i].PuedeMarcar)
	}
	assert.Equal(t, 1, cal.Celdas[6].Dia)
	assert.Equal(t, "2025-03-01", cal.Celdas[6].Fecha)
	assert.Equal(t, 31, cal.Celdas[len(cal.Celdas)-1].Dia)
}

func TestConstruirCalendario_Estados(t *testing.T) {
	hoy := dia("2025-06-10")
	limite := dia("2025-06-20")
	regs := []Registro{
		reg("2025-06-02", "50"),
		reg("2025-06-03", "0"),
		reg("2025-06-15", "0"),
		reg("2025-06-16", "25"),
	}

	cal := ConstruirCalendario(2025, time.June, hoy, limite, regs)
	byDay := map[int]Celda{}
	for _, c := range cal.Celdas {
		if c.Dia > 0 {
			byDay[c.Dia] = c
		}
	}

	assert.Equal(t, EstadoVerde, byDay[2].Estado)
	assert.Equal(t, EstadoRojo, byDay[3].Estado)
	assert.Equal(t, EstadoSinMarcar, byDay[4].Estado)
	assert.Equal(t, EstadoSinMarcar, byDay[10].Estado)
	assert.Equal(t, EstadoFuturo, byDay[11].Estado)
	assert.Equal(t, EstadoFuturo, byDay[15].Estado)
	assert.Equal(t, EstadoVerde, byDay[16].Estado)

	assert.True(t, byDay[10].PuedeMarcar)
	assert.True(t, byDay[1].PuedeMarcar)
	assert.False(t, byDay[11].PuedeMarcar)
	require.NotNil(t, byDay[3].Monto)
	assert.True(t, byDay[3].Monto.IsZero())
	assert.Nil(t, byDay[4].Monto)
}

func TestPuedeMarcar_PastDeadline(t *testing.T) {
	hoy := dia("2025-06-10")
	limite := dia("2025-06-05")

	assert.True(t, PuedeMarcar(dia("2025-06-05"), hoy, limite))
	assert.False(t, PuedeMarcar(dia("2025-06-06"), hoy, limite))
	assert.False(t, PuedeMarcar(dia("2025-06-11"), hoy, dia("2025-06-30")))
}
