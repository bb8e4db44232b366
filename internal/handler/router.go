package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"quoteflow/internal/domain/actor"
	"quoteflow/internal/handler/api"
	"quoteflow/internal/handler/middleware"
	"quoteflow/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	requestHandler *api.RequestHandler,
	negotiationHandler *api.NegotiationHandler,
	pricingHandler *api.PricingHandler,
	productHandler *api.ProductHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, requestHandler, negotiationHandler, pricingHandler, productHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	requestHandler *api.RequestHandler,
	negotiationHandler *api.NegotiationHandler,
	pricingHandler *api.PricingHandler,
	productHandler *api.ProductHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		requests := apiGroup.Group("/requests")
		{
			addRoutes(requests, []route{
				{Method: http.MethodPost, Path: "", Handler: requestHandler.Create,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(actor.RoleCustomer)}},
				{Method: http.MethodGet, Path: "", Handler: requestHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: requestHandler.Get},
				{Method: http.MethodPost, Path: "/:id/review", Handler: requestHandler.BeginReview,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(actor.RoleManager)}},
				{Method: http.MethodPost, Path: "/:id/quote", Handler: requestHandler.Quote,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(actor.RoleManager)}},
				{Method: http.MethodPost, Path: "/:id/response", Handler: requestHandler.Respond,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(actor.RoleCustomer)}},
				{Method: http.MethodPost, Path: "/:id/transporter", Handler: requestHandler.AssignTransporter,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(actor.RoleManager)}},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: requestHandler.Complete,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(actor.RoleTransporter)}},
				{Method: http.MethodPost, Path: "/:id/offers", Handler: negotiationHandler.SubmitOffer},
				{Method: http.MethodGet, Path: "/:id/offers", Handler: negotiationHandler.History},
			})
		}

		offers := apiGroup.Group("/offers")
		{
			addRoutes(offers, []route{
				{Method: http.MethodPost, Path: "/:id/resolve", Handler: negotiationHandler.ResolveOffer,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(actor.RoleManager)}},
			})
		}

		products := apiGroup.Group("/products")
		{
			addRoutes(products, []route{
				{Method: http.MethodGet, Path: "", Handler: productHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: productHandler.Get},
			})
		}

		pricing := apiGroup.Group("/pricing")
		{
			addRoutes(pricing, []route{
				{Method: http.MethodGet, Path: "/breakdown", Handler: pricingHandler.Breakdown},
			})
		}

		delivery := apiGroup.Group("/delivery")
		{
			addRoutes(delivery, []route{
				{Method: http.MethodPost, Path: "/distance", Handler: pricingHandler.Distance},
			})
		}
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
