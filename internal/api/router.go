package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/auth"
	"github.com/AndrewCorlett/yacht-charter-backend/internal/charter"
	charterHttp "github.com/AndrewCorlett/yacht-charter-backend/internal/charter/http"
	"github.com/AndrewCorlett/yacht-charter-backend/internal/pricing"
	pricingHttp "github.com/AndrewCorlett/yacht-charter-backend/internal/pricing/http"
	"github.com/AndrewCorlett/yacht-charter-backend/internal/rules"
	rulesHttp "github.com/AndrewCorlett/yacht-charter-backend/internal/rules/http"
	"github.com/AndrewCorlett/yacht-charter-backend/internal/user"
	"github.com/AndrewCorlett/yacht-charter-backend/internal/yacht"
	yachtHttp "github.com/AndrewCorlett/yacht-charter-backend/internal/yacht/http"
)

// Config holds everything the router needs to assemble the API surface.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService    user.Service
	YachtService   yacht.Service
	CharterService charter.Service
	RuleService    rules.Service
	PricingService pricing.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // Dashboard dev server
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// staffMiddleware: Further checks if the authenticated user is charter staff.
	staffMiddleware := RequireStaff(cfg.UserService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	authHandler := NewAuthHandler(cfg.UserService, cfg.JWTManager)
	yachtHandler := yachtHttp.NewHandler(cfg.YachtService)
	charterHandler := charterHttp.NewHandler(cfg.CharterService)
	rulesHandler := rulesHttp.NewHandler(cfg.RuleService)
	pricingHandler := pricingHttp.NewHandler(cfg.PricingService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
		v1.GET("/me", authMiddleware, authHandler.Me)

		yachtHttp.RegisterRoutes(v1, yachtHandler, authMiddleware, staffMiddleware)
		charterHttp.RegisterRoutes(v1, charterHandler, authMiddleware)
		rulesHttp.RegisterRoutes(v1, rulesHandler, authMiddleware, staffMiddleware)
		pricingHttp.RegisterRoutes(v1, pricingHandler, authMiddleware, staffMiddleware)
	}

	return r
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
