// Package router assembles the gin engine and its routes.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "vinyle_backend/internal/feature/auth/transport/handler"
	vinylehandler "vinyle_backend/internal/feature/vinyle/transport/handler"
	platformhandler "vinyle_backend/internal/platform/http/handler"
	"vinyle_backend/internal/platform/http/middleware"
	jwtmw "vinyle_backend/internal/platform/jwt"
)

// Options configures the cross-cutting middleware.
type Options struct {
	AllowedOrigins []string
	// AuthRequired protects the vinyle mutations with a bearer token.
	AuthRequired bool
	JWTSecret    string
	// Metrics is optional; nil disables /metrics.
	Metrics *middleware.Metrics
	// JetonLimiter throttles the token endpoint per client IP when set.
	JetonLimiter middleware.Limiter
}

// NewRouter builds the engine serving the API.
func NewRouter(vinyles *vinylehandler.VinyleHandler, jeton *authhandler.JetonHandler,
	health *platformhandler.HealthHandler, opts Options) *gin.Engine {
	r := gin.New()
	// route on the raw path so an escaped "/" stays inside one path parameter (artiste "AC/DC")
	r.UseRawPath = true
	r.UnescapePathValues = true
	r.Use(gin.Recovery(), middleware.RequestLogger())
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// platform
	r.GET("/healthz", health.Live)
	r.HEAD("/healthz", health.Live)
	r.OPTIONS("/healthz", health.Live)
	r.GET("/readyz", health.Ready)
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	api := r.Group("/api")

	// login (JWT issuance)
	jetonChain := []gin.HandlerFunc{}
	if opts.JetonLimiter != nil {
		jetonChain = append(jetonChain, middleware.RateLimit(opts.JetonLimiter))
	}
	api.POST("/jeton", append(jetonChain, jeton.GenerateToken)...)

	v := api.Group("/vinyles")
	{
		v.GET("/", vinyles.GetAll)
		v.GET("/artiste/:nomArtiste", vinyles.GetByArtiste)
		v.GET("/titre/:titreVinyle", vinyles.GetByTitre)
		v.GET("/:idVinyle", vinyles.GetByID)
	}

	mutations := v.Group("")
	if opts.AuthRequired {
		mutations.Use(jwtmw.AuthRequired(opts.JWTSecret))
	}
	{
		mutations.POST("/", vinyles.ValidateVinyle, vinyles.Add)
		mutations.PUT("/", vinyles.ValidateVinyle, vinyles.Update)
		mutations.DELETE("/:id", vinyles.Delete)
	}

	return r
}
