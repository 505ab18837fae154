package dto

import "github.com/shopspring/decimal"

type MetaResponse struct {
	ID            int64           `json:"id"`
	Nombre        string          `json:"nombre"`
	Meta          decimal.Decimal `json:"meta"`
	FechaLimite   string          `json:"fecha_limite"`
	Estado        string          `json:"estado"`
	TotalAhorrado decimal.Decimal `json:"total_ahorrado"`
	Restante      decimal.Decimal `json:"restante"`
	DiasRestantes int             `json:"dias_restantes"`
	DiasPerdidos  int             `json:"dias_perdidos"`
	AhorroDiario  decimal.Decimal `json:"ahorro_diario"`
	Vencida       bool            `json:"vencida"`
}

// MetasResponse backs GET /v1/metas. TotalDiario sums AhorroDiario over
// active goals only.
type MetasResponse struct {
	Metas       []MetaResponse  `json:"metas"`
	TotalDiario decimal.Decimal `json:"total_diario"`
}

type CalendarioQuery struct {
	Anio int `form:"anio" validate:"omitempty,min=2000,max=2100"`
	Mes  int `form:"mes"  validate:"omitempty,min=1,max=12"`
}

type CeldaResponse struct {
	Fecha       string           `json:"fecha,omitempty"`
	Dia         int              `json:"dia"`
	Estado      string           `json:"estado"`
	Monto       *decimal.Decimal `json:"monto,omitempty"`
	PuedeMarcar bool             `json:"puede_marcar"`
}

// CalendarioResponse is a Sunday-first month grid.
type CalendarioResponse struct {
	MetaID       int64           `json:"meta_id"`
	Anio         int             `json:"anio"`
	Mes          int             `json:"mes"`
	AhorroDiario decimal.Decimal `json:"ahorro_diario"`
	Celdas       []CeldaResponse `json:"celdas"`
}

// RegistrarDiaRequest is the body of PUT /v1/metas/:id/dias. Either Ahorro
// or Monto must be present; an explicit Monto wins.
type RegistrarDiaRequest struct {
	Fecha  string           `json:"fecha"  validate:"required,datetime=2006-01-02"`
	Ahorro *bool            `json:"ahorro" validate:"required_without=Monto"`
	Monto  *decimal.Decimal `json:"monto"  validate:"omitempty,min=0"`
}

type RegistroDiaResponse struct {
	MetaID int64           `json:"meta_id"`
	Fecha  string          `json:"fecha"`
	Monto  decimal.Decimal `json:"monto"`
	Meta   MetaResponse    `json:"meta"`
}

type SugerenciaQuery struct {
	Meta        string `form:"meta"         validate:"required,numeric"`
	FechaLimite string `form:"fecha_limite" validate:"required,datetime=2006-01-02"`
}

type SugerenciaResponse struct {
	Dias         int             `json:"dias"`
	AhorroDiario decimal.Decimal `json:"ahorro_diario"`
}
