package routes

import (
	"joblens/internal/delivery/http/handler"
	"joblens/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Health          *handler.HealthHandler
	Auth            *handler.AuthHandler
	Users           *handler.UserHandler
	Jobs            *handler.JobsHandler
	Recommendations *handler.RecommendationHandler

	AuthMw *middleware.AuthMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}

	api := app.Group("/api")
	v1 := api.Group("/v1")

	if r.Auth != nil {
		r.Auth.RegisterRoutes(v1.Group("/auth"))
	}

	// Listing is public; the per-job match route requires auth and is
	// registered under the protected group below.
	if r.Jobs != nil {
		v1.Get("/jobs", r.Jobs.ListJobs)
		v1.Get("/jobs/:id", r.Jobs.GetJob)
	}

	if r.AuthMw == nil {
		return
	}
	protected := v1.Group("", r.AuthMw.Middleware())

	if r.Users != nil {
		r.Users.RegisterRoutes(protected.Group("/users"))
	}
	if r.Jobs != nil {
		protected.Get("/jobs/:id/match", r.Jobs.MatchJob)
	}
	if r.Recommendations != nil {
		r.Recommendations.RegisterRoutes(protected)
	}
}
