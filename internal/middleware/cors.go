package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS allows any origin, method and header. maxAge is the preflight cache
// lifetime in seconds.
func CORS(maxAge int) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,PATCH,HEAD,OPTIONS",
		// Empty means the requested headers are echoed back.
		AllowHeaders: "",
		MaxAge:       maxAge,
	})
}
