package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/cvpolish/api/http/handlers"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health  *handlers.HealthHandler
	CV      *handlers.CVHandler
	Resumes *handlers.ResumesHandler
}

// Register wires all HTTP routes onto given Fiber app. auth guards every
// route except the probes.
func Register(app *fiber.App, auth fiber.Handler, h Handlers) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	cv := v1.Group("/cv", auth)
	cv.Post("/parse", h.CV.Parse)
	cv.Post("/prefill", h.CV.Prefill)
	cv.Post("/improve", h.CV.Improve)
	cv.Post("/pdf", h.CV.PDF)

	rs := v1.Group("/resumes", auth)
	rs.Post("/", h.Resumes.Upload)
	rs.Get("/", h.Resumes.List)
	rs.Get("/:id", h.Resumes.Get)
	rs.Get("/:id/file", h.Resumes.Download)
	rs.Post("/:id/reparse", h.Resumes.Reparse)
	rs.Delete("/:id", h.Resumes.Delete)
}
