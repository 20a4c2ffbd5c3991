package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Combustible-api/pkg/logger"
)

// RequestLogger registra cada request HTTP con método, ruta, estado y latencia.
// Los errores ya vienen mapeados a status por los handlers; aquí solo se observa.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		evt := log.Info()
		status := c.Response().StatusCode()
		if status >= fiber.StatusInternalServerError {
			evt = log.Error()
		} else if status >= fiber.StatusBadRequest {
			evt = log.Warn()
		}
		evt.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")
		return err
	}
}
