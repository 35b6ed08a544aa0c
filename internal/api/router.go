package api

import (
	"carebridge/internal/api/handlers"
	"carebridge/pkg/auth"
	"carebridge/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	analysisHandler *handlers.AnalysisHandler,
	knowledgeHandler *handlers.KnowledgeHandler,
	messageHandler *handlers.MessageHandler,
	verifier *auth.TokenVerifier,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	protected := app.Group("/api/v1", middleware.AuthMiddleware(verifier, appLogger))

	protected.Post("/analysis", analysisHandler.Analyze)

	knowledge := protected.Group("/knowledge")
	knowledge.Get("", knowledgeHandler.List)
	knowledge.Post("/ingest", knowledgeHandler.Ingest)

	messages := protected.Group("/messages")
	messages.Post("", messageHandler.Create)
	messages.Get("/:id", messageHandler.Get)

	protected.Get("/students/:studentID/messages", messageHandler.ListByStudent)

	return app
}
