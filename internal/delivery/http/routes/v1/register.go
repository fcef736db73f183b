package v1

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/domain/taxonomy"

	"github.com/gofiber/fiber/v3"
)

// Handlers are the /api/v1 resources. A nil entry is not mounted.
type Handlers struct {
	Auth           *handler.AuthHandler
	Users          *handler.UserHandler
	Companies      *handler.CompanyHandler
	RecruiterFirms *handler.RecruiterFirmHandler
	Industries     *handler.NamedHandler[taxonomy.Industry]
	Roles          *handler.NamedHandler[taxonomy.JobRole]
	Regions        *handler.RegionHandler
	JobPosts       *handler.JobPostHandler
	Notifications  *handler.NotificationHandler
}

type Options struct {
	Guards handler.Guards
	// AuthLimiter throttles the /auth group per client; nil disables it.
	AuthLimiter fiber.Handler
}

func Register(r fiber.Router, h Handlers, opts Options) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		var auth fiber.Router
		if opts.AuthLimiter != nil {
			auth = r.Group("/auth", opts.AuthLimiter)
		} else {
			auth = r.Group("/auth")
		}
		h.Auth.RegisterRoutes(auth, opts.Guards)
	}

	RegisterUsers(r.Group("/users"), h.Users, opts.Guards)
	RegisterJobPosts(r.Group("/job-posts"), h.JobPosts, opts.Guards)

	if h.Companies != nil {
		h.Companies.RegisterRoutes(r.Group("/companies"), opts.Guards)
	}
	if h.RecruiterFirms != nil {
		h.RecruiterFirms.RegisterRoutes(r.Group("/recruiter-firms"), opts.Guards)
	}
	if h.Industries != nil {
		h.Industries.RegisterRoutes(r.Group("/industries"), opts.Guards)
	}
	if h.Roles != nil {
		h.Roles.RegisterRoutes(r.Group("/roles"), opts.Guards)
	}
	if h.Regions != nil {
		h.Regions.RegisterRoutes(r.Group("/regions"), opts.Guards)
	}
	if h.Notifications != nil {
		h.Notifications.RegisterRoutes(r.Group("/notifications"), opts.Guards)
	}
}
