package server

import (
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"clipnote-be/internal/bootstrap"
	"clipnote-be/internal/pkg/serverutils"
)

type Server struct {
	app       *fiber.App
	container *bootstrap.Container
}

func New(container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		AppName: "clipnote-backend",
	})

	app.Use(recover.New())
	app.Use(otelfiber.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: container.Config.App.CorsAllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(serverutils.ErrorHandlerMiddleware())

	s := &Server{app: app, container: container}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	api := s.app.Group("/api/v1")
	s.container.AuthController.RegisterRoutes(api)
	s.container.OAuthController.RegisterRoutes(api)
	s.container.NoteController.RegisterRoutes(api)
	s.container.ClipController.RegisterRoutes(api)
	s.container.UserController.RegisterRoutes(api)
	s.container.ActivityController.RegisterRoutes(api)

	ws := s.app.Group("/ws")
	s.container.StreamHandler.RegisterRoutes(ws)
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
