package apierror

import (
	"errors"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type consulta struct {
	Periodo string `json:"periodo" validate:"omitempty,oneof=hoy semana"`
	Fecha   string `json:"fecha"   validate:"required,datetime=2006-01-02"`
}

func TestFromValidator(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string { return f.Tag.Get("json") })

	err := v.Struct(consulta{Periodo: "siglo", Fecha: "ayer"})
	require.Error(t, err)

	ve := FromValidator(err)
	require.NotNil(t, ve)
	assert.Equal(t, "Error de validacion", ve.Detail)
	assert.Equal(t, "debe ser uno de: hoy, semana", ve.Fields["periodo"])
	assert.Equal(t, "fecha invalida, use AAAA-MM-DD", ve.Fields["fecha"])
}

func TestFromValidator_OtherError(t *testing.T) {
	assert.Nil(t, FromValidator(errors.New("boom")))
}
