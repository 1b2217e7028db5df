package integrity

import (
	"errors"

	"refcheck/core/logger"
	"refcheck/core/refindex"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service     *Service
	allowRepair bool
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, allowRepair bool) *Handler {
	return &Handler{service: service, allowRepair: allowRepair}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/references", h.HandleReferenceReport)
	group.Get("/schema", h.HandleSchemaCheck)
	if h.allowRepair {
		group.Post("/references/repair", h.HandleReferenceRepair)
	}
}

// HandleReferenceReport returns the missing file references without changing anything.
// @Summary Report Missing File References
// @Description Scans the reference index and lists managed and soft references to files missing from the content root. Nothing is changed.
// @Tags integrity
// @Accept json
// @Produce json
// @Param refresh query boolean false "Rebuild the reference index first"
// @Success 200 {object} map[string]interface{} "Summary and Result"
// @Failure 503 {object} map[string]string "Reference index unavailable"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/references [get]
func (h *Handler) HandleReferenceReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Reference report requested")

	result, err := h.service.Report(c.Context(), c.QueryBool("refresh"))
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(fiber.Map{
		"summary": result.Summary(),
		"result":  result,
	})
}

// HandleReferenceRepair clears managed references to missing files.
// @Summary Repair Missing File References
// @Description Removes managed references to missing files from the reference index. Soft references are only reported. Registered only when repairs are allowed and an API key is set.
// @Tags integrity
// @Accept json
// @Produce json
// @Param refresh query boolean false "Rebuild the reference index first"
// @Success 200 {object} map[string]interface{} "Summary and Result"
// @Failure 503 {object} map[string]string "Reference index unavailable"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/references/repair [post]
func (h *Handler) HandleReferenceRepair(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Warn("Reference repair requested")

	result, err := h.service.Repair(c.Context(), c.QueryBool("refresh"))
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(fiber.Map{
		"summary": result.Summary(),
		"result":  result,
	})
}

// HandleSchemaCheck verifies the reference index table layout.
// @Summary Check Reference Index Schema
// @Description Checks that the reference index table has every column the configured profile maps.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	missing, err := h.service.CheckSchema()
	if err != nil {
		return h.fail(c, logger.WithRayID(h.service.logger, c), err)
	}
	status := "ok"
	if len(missing) > 0 {
		status = "mismatch"
	}
	return c.JSON(fiber.Map{
		"status":          status,
		"missing_columns": missing,
	})
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	l.Error("Integrity check failed", zap.Error(err))
	status := fiber.StatusInternalServerError
	if errors.Is(err, refindex.ErrStoreUnavailable) {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
