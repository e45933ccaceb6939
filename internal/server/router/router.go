package router

import (
	"fmt"
	"html/template"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"greencalc/internal/config"
	"greencalc/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(calc *handlers.CalculatorHandler, admin *handlers.AdminHandler, cfg config.Config, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	store := cookie.NewStore([]byte(cfg.Session.Secret))
	r.Use(sessions.Sessions("greencalc_session", store))

	r.SetFuncMap(template.FuncMap{
		// payback is optional; render the dereferenced value or nothing.
		"paybackYears": func(v *float64) string {
			if v == nil {
				return ""
			}
			return fmt.Sprintf("%.1f", *v)
		},
	})
	r.LoadHTMLGlob(cfg.Server.TemplatesGlob)

	r.GET("/", calc.ShowForm)
	r.POST("/", calc.Calculate)
	r.GET("/results", calc.Results)
	r.GET("/admin/history", admin.History)
	r.POST("/api/calculate", calc.CalculateJSON)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
