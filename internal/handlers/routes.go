package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type Handlers struct {
	Resume    *ResumeHandler
	Portfolio *PortfolioHandler
	JobMatch  *JobMatchHandler
}

type AppOptions struct {
	AppName     string
	BodyLimit   int
	RequestLogs bool
}

// NewApp builds the Fiber application with middleware and all API routes.
func NewApp(opts AppOptions, h Handlers, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      opts.AppName,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    opts.BodyLimit,
		ErrorHandler: NewErrorHandler(log),
	})

	app.Use(recover.New())
	if opts.RequestLogs {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().UTC(),
		})
	})

	api.Post("/resume/upload", h.Resume.HandleUpload)
	api.Post("/resume/parse", h.Resume.HandleParse)
	api.Put("/resume/update", h.Resume.HandleUpdate)
	api.Post("/portfolio/deploy", h.Portfolio.HandleDeploy)
	api.Get("/portfolio/:username", h.Portfolio.HandleGet)
	api.Post("/job-match/evaluate", h.JobMatch.HandleEvaluate)
	api.Get("/job-match/:id", h.JobMatch.HandleGetResult)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": opts.AppName,
			"endpoints": []string{
				"POST /api/resume/upload",
				"POST /api/resume/parse",
				"PUT /api/resume/update",
				"POST /api/portfolio/deploy",
				"GET /api/portfolio/:username",
				"POST /api/job-match/evaluate",
				"GET /api/job-match/:id",
			},
		})
	})

	return app
}
