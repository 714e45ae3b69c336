package integrity

import (
	"errors"

	"immich-album-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/destination", h.HandleDestinationCheck)
	group.Get("/manifest", h.HandleManifestCheck)
	group.Get("/schema", h.HandleSchemaCheck)
}

// HandleIntegrityCheck runs all checks. ?verify=true hashes every recorded file.
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := h.service.CheckAll(c.UserContext(), c.QueryBool("verify", false))
	if !report.Healthy() {
		l.Warn("Integrity problems detected")
	}
	return c.JSON(report)
}

// HandleDestinationCheck checks and optionally creates the destination (?fix=true).
func (h *Handler) HandleDestinationCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.QueryBool("fix", false)

	report := h.service.CheckDestination(c.UserContext())
	if !report.Readable {
		l.Warn("Destination is not readable", zap.String("location", report.Location), zap.String("error", report.Error))

		if fix {
			l.Info("Attempting to create destination")
			if err := h.service.FixDestination(c.UserContext()); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to create destination",
					"details": err.Error(),
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"report": h.service.CheckDestination(c.UserContext()),
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "checked",
		"report": report,
	})
}

// HandleManifestCheck compares the manifest with the destination. ?verify=true hashes files.
func (h *Handler) HandleManifestCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckManifest(c.UserContext(), c.QueryBool("verify", false))
	if errors.Is(err, ErrNoManifest) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Manifest check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Manifest check completed",
		zap.Int("checked", report.Checked),
		zap.Int("missing", len(report.Missing)),
		zap.Int("hash_mismatch", len(report.HashMismatch)))

	return c.JSON(report)
}

// HandleSchemaCheck checks the manifest table schema.
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema()
	if errors.Is(err, ErrNoManifest) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}
