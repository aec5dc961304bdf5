package server

import (
	"log"
	"strings"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/bootstrap"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/config"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/pkg/serverutils"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/websocket"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024, // 1MB, chat payloads are small
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(cfg),
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Visitor-Id",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on %s", s.cfg.App.BaseURL)
	return s.app.Listen(":" + s.cfg.App.Port)
}

// allowedOrigins merges the configured CORS list with the client URL so the
// website frontend is always permitted.
func allowedOrigins(cfg *config.Config) string {
	origins := cfg.App.CorsAllowedOrigins
	if cfg.App.ClientURL == "" || strings.Contains(origins, cfg.App.ClientURL) {
		return origins
	}
	if origins == "" {
		return cfg.App.ClientURL
	}
	return origins + ", " + cfg.App.ClientURL
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.AgentController.RegisterRoutes(api)
	c.KnowledgeController.RegisterRoutes(api)
	c.ProviderController.RegisterRoutes(api)
	c.OpsController.RegisterRoutes(api)

	// Live activity feed
	app.Use("/ws", func(ctx *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/activity", fiberws.New(func(conn *fiberws.Conn) {
		websocket.ServeWs(c.WebSocketHub, conn, "viewer-"+uuid.NewString())
	}))
}
