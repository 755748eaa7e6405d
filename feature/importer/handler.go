package importer

import (
	"errors"

	"econfeed/core/errs"
	"econfeed/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for imports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the import routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/import")
	group.Post("/:source", h.HandleImport)
	group.Get("/:source/catalog", h.HandleCatalog)
}

// HandleImport triggers one import run against a source.
// @Summary Run Import
// @Description Fetch series from an external agency and reconcile them into the store.
// @Tags import
// @Accept json
// @Produce json
// @Param source path string true "Source name (e.g. 'fred')"
// @Param request body ImportRequest false "Optional run narrowing"
// @Success 200 {object} map[string]interface{} "Import Result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /import/{source} [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	source := c.Params("source")
	l := logger.WithRayID(h.service.logger, c)

	var req ImportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "malformed request body",
			})
		}
	}

	result, err := h.service.Run(c.Context(), source, req)
	if err != nil {
		l.Error("Import run failed", zap.String("source", source), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "import completed",
		"result":  result,
	})
}

// HandleCatalog lists the series a source can serve.
// @Summary Get Source Catalog
// @Description List the series available from a source and whether its credential is configured.
// @Tags import
// @Produce json
// @Param source path string true "Source name (e.g. 'fred')"
// @Success 200 {object} map[string]interface{} "Catalog"
// @Failure 400 {object} map[string]string "Unknown Source"
// @Router /import/{source}/catalog [get]
func (h *Handler) HandleCatalog(c *fiber.Ctx) error {
	source := c.Params("source")

	catalog, err := h.service.Catalog(source)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.JSON(catalog)
}

func statusFor(err error) int {
	var verr *errs.ValidationError
	var cerr *errs.ConfigurationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest
	case errors.As(err, &cerr):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
