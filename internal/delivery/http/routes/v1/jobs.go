package v1

import (
	"jobboard/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterJobPosts(r fiber.Router, jobPostHandler *handler.JobPostHandler, g handler.Guards) {
	if r == nil {
		return
	}
	if jobPostHandler == nil {
		return
	}

	jobPostHandler.RegisterRoutes(r, g)
}
