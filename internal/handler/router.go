package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentworks/internal/handler/api"
	"rentworks/internal/handler/middleware"
	"rentworks/internal/pkg/config"
	"rentworks/internal/pkg/jwt"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, rentalHandler *api.RentalHandler, quoteHandler *api.QuoteHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, rentalHandler, quoteHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, rentalHandler *api.RentalHandler, quoteHandler *api.QuoteHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		// Preview surface: no auth, nothing persisted.
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/quotes", Handler: quoteHandler.PreviewQuote},
			{Method: http.MethodGet, Path: "/resources/availability", Handler: quoteHandler.CheckAvailability},
		})

		rentals := apiGroup.Group("/rentals")
		rentals.Use(authMiddleware.RequireAuth())
		{
			addRoutes(rentals, []route{
				{Method: http.MethodPost, Path: "", Handler: rentalHandler.CreateRental},
				{Method: http.MethodGet, Path: "", Handler: rentalHandler.ListRentals},
				{Method: http.MethodGet, Path: "/:id", Handler: rentalHandler.GetRental},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: rentalHandler.CancelRental},
			})

			operator := authMiddleware.RequireRoleAtLeast(jwt.RoleOperator)
			addRoutes(rentals, []route{
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: rentalHandler.ConfirmRental, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPost, Path: "/:id/pickup", Handler: rentalHandler.PickupRental, Mw: []gin.HandlerFunc{operator}},
				{Method: http.MethodPost, Path: "/:id/return", Handler: rentalHandler.ReturnRental, Mw: []gin.HandlerFunc{operator}},
			})
		}
	}
}

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
