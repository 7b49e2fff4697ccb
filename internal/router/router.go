// Package router assembles the HTTP surface of the API.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/fon-raspored/raspored-api/internal/handler"
	"github.com/fon-raspored/raspored-api/internal/middleware"
	"github.com/fon-raspored/raspored-api/internal/models"
	"github.com/fon-raspored/raspored-api/internal/service"
	"github.com/fon-raspored/raspored-api/pkg/logger"
	corsmiddleware "github.com/fon-raspored/raspored-api/pkg/middleware/cors"
	reqidmiddleware "github.com/fon-raspored/raspored-api/pkg/middleware/requestid"
)

// Options configures the engine.
type Options struct {
	APIPrefix      string
	AllowedOrigins []string
	CookieName     string
	EnableDocs     bool
	Logger         *zap.Logger
}

// Handlers bundles everything the routes dispatch to.
type Handlers struct {
	Auth       *service.AuthService
	Metrics    *service.MetricsService
	Ops        *handler.MetricsHandler
	Profile    *handler.ProfileHandler
	Attendance *handler.AttendanceHandler
	Holidays   *handler.HolidayHandler
	Admin      *handler.AdminHandler
	Catalog    *handler.CatalogHandler
}

// New builds the gin engine with the full route table.
func New(opts Options, h Handlers) *gin.Engine {
	logr := opts.Logger
	if logr == nil {
		logr = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.SecurityHeaders())
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.Metrics(h.Metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", h.Ops.Health)
	r.GET("/ready", h.Ops.Ready)
	r.GET("/metrics", h.Ops.Prometheus)
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.APIPrefix, middleware.JWT(h.Auth, opts.CookieName))
	api.GET("/cabinets", h.Catalog.Cabinets)
	api.GET("/subjects", h.Catalog.Subjects)

	student := api.Group("/student", middleware.RequireRoles(models.RoleStudent))
	student.GET("/profile", h.Profile.Get)
	student.PATCH("/profile", h.Profile.Update)
	student.GET("/profile/export", h.Profile.Export)
	student.GET("/current-term", h.Attendance.CurrentTerm)
	student.POST("/attendance", h.Attendance.CheckIn)
	student.GET("/schedule", h.Attendance.Schedule)
	student.GET("/holidays", h.Holidays.List)

	admin := api.Group("/admin", middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/holidays", h.Holidays.List)
	admin.POST("/holidays", h.Holidays.Create)
	admin.DELETE("/holidays/:id", h.Holidays.Delete)
	admin.POST("/holidays/sync", h.Holidays.Sync)
	admin.GET("/stats", h.Admin.Stats)
	admin.GET("/groups", h.Admin.Groups)

	return r
}
