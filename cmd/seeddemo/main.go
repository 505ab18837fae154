// cmd/seeddemo/main.go: loads a small demo data set (one week of sales,
// expenses, payroll, ledger movements and a savings goal) into an empty
// database. Nothing is written when sales already exist.
// Uso: go run ./cmd/seeddemo
package main

import (
	"context"
	"time"

	"posmejia/internal/config"
	"posmejia/internal/infra"
	"posmejia/internal/model"
	"posmejia/internal/sueldos"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decp(s string) *decimal.Decimal { d := dec(s); return &d }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if err := infra.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("migrations")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}

	loc := cfg.Location()
	now := time.Now().In(loc)
	y, m, d := now.Date()
	dia := func(offset, hour int) time.Time { return time.Date(y, m, d+offset, hour, 0, 0, 0, loc) }

	err = db.WithContext(context.Background()).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Venta{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			log.Info().Int64("ventas", n).Msg("database already has data, nothing to do")
			return nil
		}

		tel := "5512345678"
		cliente := model.Cliente{Nombre: "Doña Rosa", Telefono: &tel}
		productos := []model.Producto{
			{Nombre: "Tortilla 1kg", Categoria: "Abarrotes", Precio: dec("24"), Costo: decp("16"), Stock: dec("40"), StockMinimo: dec("10"), Estado: "Activo", EsGranel: true},
			{Nombre: "Queso fresco", Categoria: "Lácteos", Precio: dec("120"), Costo: decp("85"), Stock: dec("4"), StockMinimo: dec("5"), Estado: "Activo", EsGranel: true},
			{Nombre: "Refresco 600ml", Categoria: "Bebidas", Precio: dec("18"), Costo: decp("11"), Stock: dec("60"), StockMinimo: dec("12"), Estado: "Activo"},
		}
		empleado := model.Empleado{Nombre: "Luis", Sueldo: dec("1400")}
		meta := model.MetaAhorro{Nombre: "Refrigerador", Meta: dec("9000"), FechaLimite: time.Date(y, m+2, 1, 0, 0, 0, 0, time.UTC), Estado: model.MetaActiva}

		// Masters first so the detail rows can reference generated ids.
		for _, v := range []interface{}{&cliente, &productos, &empleado, &meta} {
			if err := tx.Create(v).Error; err != nil {
				return err
			}
		}
		tortilla, queso, refresco := productos[0], productos[1], productos[2]

		ventas := []model.Venta{
			{Fecha: dia(-3, 10), Total: dec("96"), Estado: model.VentaPagada, Items: []model.VentaItem{
				{ProductoID: tortilla.ID, Nombre: tortilla.Nombre, Precio: dec("24"), Cantidad: dec("4"), Costo: decp("16")},
			}},
			{Fecha: dia(-1, 12), Total: dec("276"), Pagado: decp("100"), Estado: model.VentaPendiente, ClienteID: &cliente.ID, Items: []model.VentaItem{
				{ProductoID: queso.ID, Nombre: queso.Nombre, Precio: dec("120"), Cantidad: dec("2"), Costo: decp("85")},
				// no stored cost: exercises the product cost fallback
				{ProductoID: refresco.ID, Nombre: refresco.Nombre, Precio: dec("18"), Cantidad: dec("2")},
			}},
			{Fecha: dia(0, 9), Total: dec("54"), Estado: model.VentaPagada, Items: []model.VentaItem{
				{ProductoID: refresco.ID, Nombre: refresco.Nombre, Precio: dec("18"), Cantidad: dec("3"), Costo: decp("11")},
			}},
		}
		gastos := []model.GastoAdmin{
			{Fecha: dia(-2, 8), Descripcion: "Recibo de luz", Categoria: "Servicios básicos de casa", Monto: dec("350")},
			{Fecha: dia(-1, 18), Descripcion: "Gasolina", Categoria: "Automotriz", Monto: dec("500")},
		}
		semana := sueldos.LunesSemana(dia(-7, 12))
		nomina := model.Nomina{Fecha: dia(-7, 19), Total: dec("1400"), Items: []model.NominaItem{
			{EmpleadoID: empleado.ID, Nombre: empleado.Nombre, Monto: dec("1400"), Semana: &semana},
		}}
		lienzo := []model.MovimientoLienzo{
			{Fecha: dia(-2, 17), Tipo: model.LienzoIngreso, Monto: dec("1200")},
			{Fecha: dia(-2, 17), Tipo: model.LienzoGasto, Monto: dec("300")},
		}
		registros := []model.RegistroAhorroDia{
			{MetaID: meta.ID, Fecha: time.Date(y, m, d-2, 0, 0, 0, 0, time.UTC), Monto: dec("150")},
			{MetaID: meta.ID, Fecha: time.Date(y, m, d-1, 0, 0, 0, 0, time.UTC), Monto: decimal.Zero},
		}

		for _, v := range []interface{}{&ventas, &gastos, &nomina, &lienzo} {
			if err := tx.Create(v).Error; err != nil {
				return err
			}
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&registros).Error; err != nil {
			return err
		}
		log.Info().Int("ventas", len(ventas)).Int("gastos", len(gastos)).Msg("demo data loaded")
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}
