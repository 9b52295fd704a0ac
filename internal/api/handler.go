package api

import (
	"time"

	"weatherdesk/internal/models"
	"weatherdesk/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	session *services.Session
	logger  *zap.Logger
}

func NewHandler(session *services.Session, logger *zap.Logger) *Handler {
	return &Handler{
		session: session,
		logger:  logger,
	}
}

// GetState handles GET /api/v1/state
func (h *Handler) GetState(c *fiber.Ctx) error {
	return c.JSON(h.session.State(time.Now()))
}

type queryRequest struct {
	Query string `json:"query"`
}

// PostQuery handles POST /api/v1/query
func (h *Handler) PostQuery(c *fiber.Ctx) error {
	var req queryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	h.session.SetQuery(req.Query)
	return c.JSON(h.session.State(time.Now()))
}

type selectRequest struct {
	Index int `json:"index"`
}

// PostSelect handles POST /api/v1/select
func (h *Handler) PostSelect(c *fiber.Ctx) error {
	var req selectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	place, err := h.session.Select(req.Index)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.logger.Info("Selection accepted", zap.String("place", place.Label()))
	return c.JSON(h.session.State(time.Now()))
}

type unitRequest struct {
	Unit string `json:"unit"`
}

// PostUnit handles POST /api/v1/unit
func (h *Handler) PostUnit(c *fiber.Ctx) error {
	var req unitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	h.session.SetUnit(models.ParseUnit(req.Unit))
	return c.JSON(h.session.State(time.Now()))
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now(),
		"uptime":    time.Since(startTime).String(),
	})
}

var startTime = time.Now()
