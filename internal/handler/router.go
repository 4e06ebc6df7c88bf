package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"coworking-reservations/internal/handler/api"
	"coworking-reservations/internal/handler/middleware"
	"coworking-reservations/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Reservations *api.ReservationHandler
	Spaces       *api.SpaceHandler
	Users        *api.UserHandler
}

func NewHandlers(reservations *api.ReservationHandler, spaces *api.SpaceHandler, users *api.UserHandler) Handlers {
	return Handlers{Reservations: reservations, Spaces: spaces, Users: users}
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.NewRateLimitMiddleware(cfg.RateLimit))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	jsonBody := []gin.HandlerFunc{middleware.RequireJSON()}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup.Group("/users"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Users.List},
			{Method: http.MethodPost, Path: "", Handler: h.Users.Create, Mw: jsonBody},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Users.Get},
			{Method: http.MethodGet, Path: "/:id/reservations", Handler: h.Users.Reservations},
		})

		addRoutes(apiGroup.Group("/spaces"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Spaces.List},
			{Method: http.MethodPost, Path: "", Handler: h.Spaces.Create, Mw: jsonBody},
			{Method: http.MethodGet, Path: "/available", Handler: h.Spaces.Available},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Spaces.Get},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Spaces.Update, Mw: jsonBody},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Spaces.Delete},
			{Method: http.MethodGet, Path: "/:id/reservations", Handler: h.Spaces.Reservations},
		})

		addRoutes(apiGroup.Group("/reservations"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Reservations.List},
			{Method: http.MethodPost, Path: "", Handler: h.Reservations.Create, Mw: jsonBody},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Reservations.Get},
			{Method: http.MethodPatch, Path: "/:id", Handler: h.Reservations.Update, Mw: jsonBody},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Reservations.Cancel},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
