// Package server exposes the HTTP surface: the public invitation page, the
// admin/generator JSON API and the live-preview stream.
package server

import (
	"html/template"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dmoreno/invitado/internal/auth"
	"github.com/dmoreno/invitado/internal/metrics"
	"github.com/dmoreno/invitado/internal/middleware"
	"github.com/dmoreno/invitado/internal/preview"
	"github.com/dmoreno/invitado/internal/rsvp"
	"github.com/dmoreno/invitado/internal/store"
)

// Server wires the application services into an HTTP router.
type Server struct {
	store *store.Store
	rsvp  *rsvp.Service
	bus   *preview.Bus
	jwt   *auth.JWTManager
	authn *auth.PasswordAuthenticator

	baseURL string
	page    *template.Template
	log     *slog.Logger
}

// Options carries the server's dependencies.
type Options struct {
	Store         *store.Store
	RSVP          *rsvp.Service
	Bus           *preview.Bus
	JWT           *auth.JWTManager
	Authenticator *auth.PasswordAuthenticator
	BaseURL       string
	CORSOrigins   []string
	Logger        *slog.Logger
}

// New creates the server and its router.
func New(opts Options) (*Server, *gin.Engine) {
	log := opts.Logger
	if log == nil {
		log = slog.Default().With("component", "server")
	}
	s := &Server{
		store:   opts.Store,
		rsvp:    opts.RSVP,
		bus:     opts.Bus,
		jwt:     opts.JWT,
		authn:   opts.Authenticator,
		baseURL: opts.BaseURL,
		page:    template.Must(template.New("invitation").Parse(pageTemplate)),
		log:     log,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logging())

	corsCfg := cors.DefaultConfig()
	if len(opts.CORSOrigins) == 1 && opts.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = opts.CORSOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	corsCfg.AllowMethods = append(corsCfg.AllowMethods, "PATCH", "DELETE")
	router.Use(cors.New(corsCfg))

	router.GET("/", s.handleInvitationPage)
	router.GET("/healthz", s.handleHealth)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	{
		api.POST("/login", s.handleLogin)
		api.GET("/config", s.handleGetConfig)
		api.POST("/rsvp", s.handleRSVP)
		api.GET("/preview/stream", s.handlePreviewStream)
		api.POST("/preview/rsvp", s.handlePreviewRSVP)

		admin := api.Group("", middleware.RequireAuth(s.jwt))
		{
			admin.PATCH("/config", s.handlePatchConfig)
			admin.POST("/config/reload", s.handleReloadConfig)
			admin.GET("/guests", s.handleListGuests)
			admin.POST("/guests", s.handleSaveGuest)
			admin.POST("/guests/import", s.handleImportGuests)
			admin.POST("/guests/:id/toggle", s.handleToggleGuest)
			admin.DELETE("/guests/:id", s.handleDeleteGuest)
		}
	}

	return s, router
}
