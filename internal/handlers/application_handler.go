package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/talentgate/recruitment-api/internal/models"
)

type ApplicationHandler struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewApplicationHandler(db *gorm.DB, log zerolog.Logger) *ApplicationHandler {
	return &ApplicationHandler{DB: db, Log: log}
}

type ApplyReq struct {
	CoverLetter string `json:"cover_letter"`
	ResumePath  string `json:"resume_path"`
}

// Apply files an application for the job in the path. Candidates only;
// the role gate runs before this handler.
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	jobID, err := c.ParamsInt("id")
	if err != nil || jobID <= 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid job id",
		})
	}

	var req ApplyReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	uid, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var job models.Job
	if err := h.DB.First(&job, "id = ?", jobID).Error; err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Job not found",
		})
	}
	if job.Status != models.JobStatusActive {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Job is not open for applications",
		})
	}

	app := models.Application{
		JobID:       job.ID,
		CandidateID: uid,
		Status:      models.ApplicationApplied,
		CoverLetter: req.CoverLetter,
		ResumePath:  req.ResumePath,
	}
	if err := h.DB.Create(&app).Error; err != nil {
		h.Log.Error().Err(err).Msg("application insert failed")
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Something went wrong. Please try again.",
		})
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Application submitted",
		"data":    app,
	})
}

// ListMine returns the calling candidate's applications with their jobs.
func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	uid, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var apps []models.Application
	if err := h.DB.
		Preload("Job").
		Where("candidate_id = ?", uid).
		Order("applied_at DESC").
		Find(&apps).Error; err != nil {
		h.Log.Error().Err(err).Msg("application list failed")
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Something went wrong. Please try again.",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    apps,
	})
}

type StatusUpdateReq struct {
	Status string `json:"status"`
}

// UpdateStatus moves an application through the pipeline. Recruiters and
// admins only.
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid application id",
		})
	}

	var req StatusUpdateReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	status := models.ApplicationStatus(req.Status)
	if !models.ValidApplicationStatus(status) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid application status",
		})
	}

	var app models.Application
	if err := h.DB.First(&app, "id = ?", id).Error; err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Application not found",
		})
	}

	app.Status = status
	if err := h.DB.Save(&app).Error; err != nil {
		h.Log.Error().Err(err).Msg("application update failed")
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Something went wrong. Please try again.",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Application status updated",
		"data":    app,
	})
}
