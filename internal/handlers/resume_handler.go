package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-portfolio/internal/models"
	"alfredoptarigan/resume-portfolio/internal/services"
)

type ResumeHandler struct {
	resumeService services.ResumeService
	maxFileSize   int64
	logger        *zap.Logger
}

func NewResumeHandler(resumeService services.ResumeService, maxFileSize int64, logger *zap.Logger) *ResumeHandler {
	return &ResumeHandler{
		resumeService: resumeService,
		maxFileSize:   maxFileSize,
		logger:        logger,
	}
}

// HandleUpload handles POST /resume/upload
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "a PDF or DOCX file is required in the 'file' field")
	}

	if h.maxFileSize > 0 && file.Size > h.maxFileSize {
		return badRequest(c, fmt.Sprintf("file too large. Max size: %d bytes", h.maxFileSize))
	}

	uploadID, err := h.resumeService.Upload(c.UserContext(), file)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(models.UploadResponse{UploadID: uploadID})
}

// HandleParse handles POST /resume/parse
func (h *ResumeHandler) HandleParse(c *fiber.Ctx) error {
	var req models.ParseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request payload")
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, "uploadId is required")
	}

	resume, err := h.resumeService.Parse(c.UserContext(), req.UploadID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(models.ParseResponse{ResumeData: *resume})
}

// HandleUpdate handles PUT /resume/update
func (h *ResumeHandler) HandleUpdate(c *fiber.Ctx) error {
	var req models.UpdateResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request payload")
	}

	req.Username = strings.TrimSpace(req.Username)
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, "username and resumeData are required")
	}

	resume, err := models.ParseResume(req.ResumeData)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	if err := h.resumeService.SaveDraft(c.UserContext(), req.Username, *resume); err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(models.UpdateResumeResponse{Status: "updated"})
}
