package syncapi

import (
	"errors"
	"strconv"

	"inventory-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for the sync API.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/runs", h.HandleTrigger)
	group.Get("/runs", h.HandleHistory)
	group.Get("/runs/:id", h.HandleGet)
	group.Get("/status", h.HandleStatus)
}

// HandleTrigger starts a synchronization run and blocks until it
// completes, returning the full report.
func (h *Handler) HandleTrigger(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("sync run triggered via API")

	report, err := h.service.Run(c.Context())
	if err != nil {
		if errors.Is(err, ErrRunInProgress) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("triggered run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}

// HandleHistory lists persisted runs, newest first. The limit query
// parameter caps the result count.
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	if !h.service.HasHistory() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "run history persistence is not configured",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	runs, err := h.service.History(c.Context(), limit)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("history query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"count": len(runs), "results": runs})
}

// HandleGet returns one persisted run with its device results.
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	if !h.service.HasHistory() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "run history persistence is not configured",
		})
	}

	run, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "run not found"})
		}
		logger.WithRayID(h.service.logger, c).Error("run lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(run)
}

// HandleStatus reports whether a run is executing and summarizes the
// last completed run of this process.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	running, last := h.service.Status()

	resp := fiber.Map{"running": running}
	if last != nil {
		resp["last_run_id"] = last.RunID
		resp["last_finished"] = last.Finished
		resp["last_summary"] = last.Summary
	}
	return c.JSON(resp)
}
