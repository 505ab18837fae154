package router

import (
	"posmejia/internal/config"
	"posmejia/internal/handler"
	"posmejia/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers are built by the composition root (cmd/server).
type Handlers struct {
	Health   gin.HandlerFunc
	Finanzas *handler.FinanzasHandler
	Reportes *handler.ReportesHandler
	Ahorro   *handler.AhorroHandler
}

// New returns the configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, h Handlers, limiter *middleware.IPRateLimiter) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	if limiter != nil {
		r.Use(limiter.Middleware())
	}

	// Public
	r.GET("/health", h.Health)

	// Protected routes
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		fin := v1.Group("/finanzas")
		{
			fin.GET("/resumen", h.Finanzas.Resumen)
			fin.GET("/dashboard", h.Finanzas.Dashboard)
			fin.GET("/gastos-admin", h.Finanzas.GastosAdmin)
			fin.GET("/sueldos", h.Finanzas.Sueldos)
		}

		v1.GET("/lienzo/balance", h.Finanzas.LienzoBalance)
		v1.GET("/deudores", h.Finanzas.Deudores)

		rep := v1.Group("/reportes")
		{
			rep.GET("", h.Reportes.Reporte)
			rep.GET("/csv", h.Reportes.ExportarCSV)
			rep.POST("/pdf", h.Reportes.EncolarPDF)
			rep.GET("/pdf/:archivo", h.Reportes.DescargarPDF)
		}

		metas := v1.Group("/metas")
		{
			metas.GET("", h.Ahorro.ListarMetas)
			metas.GET("/sugerencia", h.Ahorro.Sugerencia)
			metas.GET("/:id/calendario", h.Ahorro.Calendario)
			metas.PUT("/:id/dias", h.Ahorro.RegistrarDia)
		}
	}

	return r
}
