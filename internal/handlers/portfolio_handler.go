package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-portfolio/internal/config"
	"alfredoptarigan/resume-portfolio/internal/models"
	"alfredoptarigan/resume-portfolio/internal/services"
)

type PortfolioHandler struct {
	portfolioService services.PortfolioService
	cfg              *config.Config
	logger           *zap.Logger
}

func NewPortfolioHandler(portfolioService services.PortfolioService, cfg *config.Config, logger *zap.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		cfg:              cfg,
		logger:           logger,
	}
}

// HandleDeploy handles POST /portfolio/deploy
func (h *PortfolioHandler) HandleDeploy(c *fiber.Ctx) error {
	var req models.DeployRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request payload")
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Template = strings.TrimSpace(req.Template)
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, "username, template and resumeData are required")
	}

	resume, err := models.ParseResume(req.ResumeData)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	portfolio, err := h.portfolioService.Publish(c.UserContext(), req.Username, req.Template, *resume)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	baseURL := h.cfg.ResolvePublicBaseURL(c.BaseURL())
	return c.JSON(models.DeployResponse{URL: baseURL + "/" + portfolio.Username})
}

// HandleGet handles GET /portfolio/:username
func (h *PortfolioHandler) HandleGet(c *fiber.Ctx) error {
	resume, err := h.portfolioService.Resolve(c.UserContext(), c.Params("username"))
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(models.PortfolioResponse{ResumeData: *resume})
}
