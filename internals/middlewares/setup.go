package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"minhaescola_backend/internals/middlewares/logger"
)

// SetupMiddlewares registra a cadeia padrão de middlewares (a ordem importa).
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
