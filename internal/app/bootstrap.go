package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"
	v1 "jobboard/internal/delivery/http/routes/v1"
	"jobboard/internal/scheduler"
	"jobboard/internal/ws"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

const (
	bodyLimit       = 12 << 20
	jobPostSyncJob  = "job-post-sync"
	expiredPostsJob = "expired-postings-cleanup"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
	Scheduler *scheduler.Scheduler
}

// New builds the HTTP application on top of an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   c.Config.App.AppName,
		BodyLimit: bodyLimit,
	})

	registerGlobalMiddleware(f, c.Log)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, the HTTP app, the websocket hub and the
// scheduled jobs. The returned cleanup stops them in reverse order.
func Bootstrap(cfg config.Config, log *zap.SugaredLogger) (*App, func() error, error) {
	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	app := New(c)

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	sched, err := newScheduler(c)
	if err != nil {
		stopHub()
		_ = c.Close()
		return nil, nil, err
	}
	sched.Start()
	app.Scheduler = sched

	cleanup := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		sched.Stop(ctx)
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func newScheduler(c *Container) (*scheduler.Scheduler, error) {
	s := scheduler.New(c.Log)
	if err := s.Add(jobPostSyncJob, c.Config.Sync.Schedule, func(ctx context.Context) error {
		_, err := c.Usecases.Sync.Sync(ctx)
		return err
	}); err != nil {
		return nil, errors.Wrap(err, "schedule job post sync")
	}
	if err := s.Add(expiredPostsJob, c.Config.Cleanup.Schedule, func(ctx context.Context) error {
		_, err := c.Usecases.Cleanup.Run(ctx)
		return err
	}); err != nil {
		return nil, errors.Wrap(err, "schedule expired postings cleanup")
	}
	return s, nil
}

func registerGlobalMiddleware(app *fiber.App, log *zap.SugaredLogger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	app.Use(middleware.NewErrorMiddleware(log).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	uc := c.Usecases
	auth := middleware.NewAuthMiddleware(c.JWT)
	limiter := middleware.NewRateLimitMiddleware(c.Config.Auth.RateLimitRPS, c.Config.Auth.RateLimitBurst)

	health := handler.NewHealthHandler().
		With("postgres", c.DB, true).
		With("redis", c.Redis, false)

	handlers := v1.Handlers{
		Auth:           handler.NewAuthHandler(uc.Auth),
		Users:          handler.NewUserHandler(uc.Users, uc.Matches),
		Companies:      handler.NewCompanyHandler(uc.Companies),
		RecruiterFirms: handler.NewRecruiterFirmHandler(uc.RecruiterFirms),
		Industries:     handler.NewIndustryHandler(uc.Industries),
		Roles:          handler.NewRoleHandler(uc.Roles),
		Regions:        handler.NewRegionHandler(uc.Regions),
		JobPosts:       handler.NewJobPostHandler(uc.JobPosts, uc.Sync),
		Notifications:  handler.NewNotificationHandler(uc.Notifications),
	}
	opts := v1.Options{
		Guards:      handler.Guards{Authenticate: auth.Authenticate},
		AuthLimiter: limiter.Middleware(),
	}

	wsHandler := ws.NewHandler(c.Hub, c.JWT, c.Log)
	routes.NewRegistry(health, wsHandler.Handle, handlers, opts).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
