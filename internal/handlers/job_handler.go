package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/talentgate/recruitment-api/internal/models"
)

type JobHandler struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewJobHandler(db *gorm.DB, log zerolog.Logger) *JobHandler {
	return &JobHandler{DB: db, Log: log}
}

type JobCreateReq struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Location     string `json:"location"`

	SalaryMin *float64 `json:"salary_min"`
	SalaryMax *float64 `json:"salary_max"`

	JobType         string `json:"job_type"`
	ExperienceLevel string `json:"experience_level"`
	Status          string `json:"status"`     // defaults to draft
	ExpiresAt       string `json:"expires_at"` // YYYY-MM-DD
}

func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req JobCreateReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if req.Title == "" || req.Description == "" || req.Requirements == "" || req.Location == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Title, description, requirements and location are required",
		})
	}
	if !models.ValidJobType(models.JobType(req.JobType)) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid job type",
		})
	}
	if !models.ValidExperienceLevel(models.ExperienceLevel(req.ExperienceLevel)) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid experience level",
		})
	}

	status := models.JobStatusDraft
	if req.Status != "" {
		status = models.JobStatus(req.Status)
		if !models.ValidJobStatus(status) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid job status",
			})
		}
	}

	var expiresAt *datatypes.Date
	if req.ExpiresAt != "" {
		t, err := time.Parse("2006-01-02", req.ExpiresAt)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid expiry date, expected YYYY-MM-DD",
			})
		}
		d := datatypes.Date(t)
		expiresAt = &d
	}

	uid, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return fiber.ErrUnauthorized
	}

	job := models.Job{
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Location:        req.Location,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		JobType:         models.JobType(req.JobType),
		ExperienceLevel: models.ExperienceLevel(req.ExperienceLevel),
		PostedBy:        uid,
		Status:          status,
		ExpiresAt:       expiresAt,
	}
	if err := h.DB.Create(&job).Error; err != nil {
		h.Log.Error().Err(err).Msg("job insert failed")
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Something went wrong. Please try again.",
		})
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Job created",
		"data":    job,
	})
}

// ListPublic returns active postings only.
func (h *JobHandler) ListPublic(c *fiber.Ctx) error {
	var jobs []models.Job
	if err := h.DB.
		Where("status = ?", models.JobStatusActive).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		h.Log.Error().Err(err).Msg("job list failed")
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Something went wrong. Please try again.",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    jobs,
	})
}

func (h *JobHandler) GetDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid job id",
		})
	}

	var job models.Job
	if err := h.DB.First(&job, "id = ?", id).Error; err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Job not found",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    job,
	})
}
