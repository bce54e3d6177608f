package main

import (
	"database/sql"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/wichananm65/online-supermarket/internal/cart"
	"github.com/wichananm65/online-supermarket/internal/category"
	"github.com/wichananm65/online-supermarket/internal/config"
	"github.com/wichananm65/online-supermarket/internal/logging"
	"github.com/wichananm65/online-supermarket/internal/middleware"
	"github.com/wichananm65/online-supermarket/internal/order"
	"github.com/wichananm65/online-supermarket/internal/product"
	"github.com/wichananm65/online-supermarket/internal/recommended"
	"github.com/wichananm65/online-supermarket/internal/rule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.Setup(cfg.Log)

	app := fiber.New(fiber.Config{
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: middleware.ErrorHandler(logger),
	})
	app.Use(recover.New())
	setupCORS(app)
	app.Use(middleware.RequestID())
	app.Use(middleware.Logging(logger))

	db := mustOpenDB(cfg.Database.URL)
	defer db.Close()
	migrate(db)

	aliases, err := category.LoadAliasFile(cfg.Recommend.AliasesPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Recommend.AliasesPath).Msg("failed to load alias table")
	}

	categoryRepo := category.NewPostgresRepository(db)
	productRepo := product.NewPostgresRepository(db)
	cartRepo := cart.NewPostgresRepository(db)

	var popularity recommended.Popularity = product.NewScorePopularity(productRepo)
	if cfg.Recommend.Popularity == "sales" {
		popularity = order.NewSalesPopularity(order.NewPostgresRepository(db), productRepo, popularity, cfg.Recommend.SalesWindow)
	}

	breaker := recommended.BreakerSettings{
		FailureThreshold: cfg.Breaker.FailureThreshold,
		Timeout:          cfg.Breaker.Timeout,
	}
	engine := recommended.NewEngine(
		recommended.GuardCarts(cart.NewReader(cartRepo, aliases), breaker),
		recommended.GuardCategories(categoryRepo, breaker),
		recommended.GuardCatalog(productRepo, breaker),
		recommended.GuardPopularity(popularity, breaker),
		rule.NewFileStore(cfg.Recommend.RulesPath, aliases),
		recommended.WithAliases(aliases),
		recommended.WithTarget(cfg.Recommend.Target),
		recommended.WithLogger(logging.Component("recommendation_engine")),
	)

	productHandler := product.NewHandler(product.NewService(productRepo))
	categoryHandler := category.NewHandler(category.NewService(categoryRepo))
	cartHandler := cart.NewHandler(cart.NewService(cartRepo))
	recommendedHandler := recommended.NewHandler(
		recommended.NewService(recommended.NewPostgresRepository(db)),
		engine,
		cfg.Recommend.Timeout,
	)

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	recommendedHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	// product routes last to avoid route param collision
	productHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.Auth.JWTSecret),
	}))

	cartHandler.RegisterProtectedRoutes(app)
	recommendedHandler.RegisterProtectedRoutes(app)

	log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
	if err := app.Listen(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to reach database")
	}

	return db
}
