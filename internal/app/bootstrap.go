package app

import (
	"fmt"
	"strings"

	"joblens/internal/config"
	"joblens/internal/delivery/http/handler"
	"joblens/internal/delivery/http/middleware"
	"joblens/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	reg := &routes.Registry{
		Health:          handler.NewHealthHandler(c.DB, c.Redis),
		Auth:            handler.NewAuthHandler(c.AuthUC),
		Users:           handler.NewUserHandler(c.UserUC),
		Jobs:            handler.NewJobsHandler(c.JobsUC, c.RecsUC),
		Recommendations: handler.NewRecommendationHandler(c.RecsUC),
		AuthMw:          middleware.NewAuthMiddleware(c.JWT),
	}
	reg.Register(app)
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
