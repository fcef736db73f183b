package middleware

import (
	"time"

	"jobboard/internal/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

type AccessLogMiddleware struct {
	log *zap.SugaredLogger
}

func NewAccessLogMiddleware(log *zap.SugaredLogger) *AccessLogMiddleware {
	return &AccessLogMiddleware{log: logger.Component(log, "access")}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
			c.Request().Header.Set(requestIDHeader, rid)
		}
		c.Set(requestIDHeader, rid)

		err := c.Next()

		m.log.Infow("http access",
			logger.FieldRequestID, rid,
			logger.FieldMethod, c.Method(),
			logger.FieldPath, c.OriginalURL(),
			logger.FieldStatus, c.Response().StatusCode(),
			logger.FieldDurationMS, time.Since(start).Milliseconds(),
			"ip", c.IP(),
			"req_bytes", c.Request().Header.ContentLength(),
			"resp_bytes", len(c.Response().Body()),
			"ua", c.Get("User-Agent"),
		)

		return err
	}
}
