package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/medivisit/backend/internal/config"
	"github.com/medivisit/backend/internal/geocode"
	"github.com/medivisit/backend/internal/http/handlers"
	"github.com/medivisit/backend/internal/http/middleware"
	"github.com/medivisit/backend/internal/store"

	_ "github.com/medivisit/backend/docs"
)

func Router(cfg config.Config, st *store.Store, geocoder geocode.Geocoder, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:          st,
		Geocoder:       geocoder,
		Validator:      validator.New(),
		Logger:         logger,
		CountryDefault: cfg.CountryDefault,
	}

	r.GET("/healthz", h.Healthz)
	r.POST("/api/login", h.Login)

	api := r.Group("/api")
	api.Use(middleware.Session(st))
	{
		api.POST("/logout", h.Logout)
		api.GET("/session", h.SessionInfo)

		api.GET("/visits", h.VisitsList)
		api.POST("/visits", h.VisitCreate)
		api.GET("/visits/:id", h.VisitDetails)
		api.PUT("/visits/:id", h.VisitUpdate)
		api.DELETE("/visits/:id", h.VisitDelete)

		api.GET("/employees", h.EmployeesList)
		api.GET("/groups", h.GroupsList)

		api.GET("/reports/summary", h.ReportSummary)
		api.GET("/reports/performance", h.ReportPerformance)

		api.GET("/dashboard/widgets", h.WidgetsGet)
		api.PUT("/dashboard/widgets", h.WidgetsPut)

		api.POST("/employees/:id/password", h.EmployeePasswordChange)
	}

	admin := api.Group("")
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("/employees", h.EmployeeCreate)
		admin.GET("/employees/:id", h.EmployeeDetails)
		admin.PUT("/employees/:id", h.EmployeeUpdate)
		admin.DELETE("/employees/:id", h.EmployeeDelete)

		admin.POST("/groups", h.GroupCreate)
		admin.PUT("/groups/:id", h.GroupUpdate)
		admin.DELETE("/groups/:id", h.GroupDelete)

		admin.GET("/export/visits.csv", h.ExportVisitsCSV)
		admin.GET("/export/employees.csv", h.ExportEmployeesCSV)
		admin.GET("/export/performance.csv", h.ExportPerformanceCSV)
		admin.GET("/export/visits.xlsx", h.ExportVisitsExcel)
		admin.GET("/export/employees.xlsx", h.ExportEmployeesExcel)
		admin.GET("/export/performance.xlsx", h.ExportPerformanceExcel)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
