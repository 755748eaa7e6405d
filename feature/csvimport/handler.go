package csvimport

import (
	"io"
	"strings"

	"econfeed/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles the CSV upload endpoint.
type Handler struct {
	service      *Service
	uploadSecret string
	logger       *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, uploadSecret string, logger *zap.Logger) *Handler {
	return &Handler{service: service, uploadSecret: uploadSecret, logger: logger}
}

// RegisterRoutes registers the CSV routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/csv")
	group.Post("/upload", h.HandleUpload)
}

// HandleUpload ingests one uploaded CSV file.
// @Summary Upload CSV
// @Description Validate and reconcile a CSV file of indicator releases. The whole file is rejected if any row fails validation.
// @Tags csv
// @Accept multipart/form-data
// @Produce json
// @Param secret formData string true "Shared upload secret"
// @Param file formData file true "CSV file"
// @Success 200 {object} UploadResult "Upload Result"
// @Failure 400 {object} map[string]interface{} "Validation Errors"
// @Failure 401 {object} map[string]string "Bad Secret"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /csv/upload [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	if h.uploadSecret == "" || c.FormValue("secret") != h.uploadSecret {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid upload secret",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing file field",
		})
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "only .csv files are accepted",
		})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unreadable file",
		})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unreadable file",
		})
	}
	if len(data) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is empty",
		})
	}

	result, rejection, err := h.service.Ingest(c.Context(), fileHeader.Filename, data)
	if err != nil {
		l.Error("CSV ingest failed", zap.String("filename", fileHeader.Filename), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if rejection != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":     false,
			"errors":      rejection.Errors,
			"totalErrors": rejection.TotalErrors,
		})
	}

	return c.JSON(result)
}
