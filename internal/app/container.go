package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AndrewCorlett/yacht-charter-backend/internal/api"
	"github.com/AndrewCorlett/yacht-charter-backend/internal/auth"
	"github.com/AndrewCorlett/yacht-charter-backend/internal/charter"
	"github.com/AndrewCorlett/yacht-charter-backend/internal/pkg/storage"
	"github.com/AndrewCorlett/yacht-charter-backend/internal/pricing"
	"github.com/AndrewCorlett/yacht-charter-backend/internal/rules"
	"github.com/AndrewCorlett/yacht-charter-backend/internal/user"
	"github.com/AndrewCorlett/yacht-charter-backend/internal/yacht"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	StoragePath  string
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	RuleDefaults rules.Defaults
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	imageProcessor := storage.NewImageProcessor()

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Yacht Module
	yachtRepo := yacht.NewPgxRepository(cfg.DBPool)
	yachtService := yacht.NewService(yachtRepo, store, imageProcessor)

	// Rules Module (charter policy defaults + blackout periods)
	ruleRepo := rules.NewPgxRepository(cfg.DBPool)
	ruleService := rules.NewService(ruleRepo, cfg.RuleDefaults)

	// Charter Module
	charterRepo := charter.NewPgxRepository(cfg.DBPool)
	charterService := charter.NewService(charterRepo, yachtService, ruleService)

	// Pricing Module
	pricingRepo := pricing.NewPgxRepository(cfg.DBPool)
	pricingService := pricing.NewService(pricingRepo, yachtService)

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		YachtService:   yachtService,
		CharterService: charterService,
		RuleService:    ruleService,
		PricingService: pricingService,
		JWTManager:     jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
