package sync

import (
	"errors"

	"immich-album-sync/core/config"
	"immich-album-sync/core/immich"
	"immich-album-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for sync runs.
type Handler struct {
	service *Service
	config  *config.Config
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, cfg *config.Config, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, config: cfg, logger: logger}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Get("/", h.HandleLastReport)
	group.Post("/", h.HandleTrigger)
}

// HandleLastReport returns the report of the most recent run.
func (h *Handler) HandleLastReport(c *fiber.Ctx) error {
	report := h.service.LastReport()
	if report == nil {
		return c.JSON(fiber.Map{"status": "never_run"})
	}
	return c.JSON(report)
}

// HandleTrigger runs a sync and returns its report. ?dry_run=true only plans.
func (h *Handler) HandleTrigger(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	rc := NewRunContext(h.config, l)
	rc.DryRun = c.QueryBool("dry_run", false)
	l.Info("Sync triggered over HTTP", zap.String("run_id", rc.ID), zap.Bool("dry_run", rc.DryRun))

	report, err := h.service.Run(c.UserContext(), rc)
	if err == nil {
		return c.JSON(report)
	}

	status := fiber.StatusInternalServerError
	var fetchErr *immich.FetchError
	if errors.As(err, &fetchErr) {
		status = fiber.StatusBadGateway
	}
	if report == nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(status).JSON(report)
}
