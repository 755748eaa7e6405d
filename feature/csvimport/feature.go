package csvimport

import (
	"econfeed/core/storage"
	"econfeed/feature/importer"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	db      *gorm.DB
	service *Service
	handler *Handler
}

// NewFeature wires the CSV ingestion service. A nil storage client disables
// upload archiving.
func NewFeature(db *gorm.DB, client storage.Client, bucket, uploadSecret string, logger *zap.Logger) *Feature {
	engine := importer.NewEngine(importer.NewStore(db), logger)
	svc := NewService(engine, client, bucket, logger)
	h := NewHandler(svc, uploadSecret, logger)
	return &Feature{db: db, service: svc, handler: h}
}

// Service exposes the ingestion service for CLI one-shot runs.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "csvimport"
}

// IsEnabled checks if the feature is enabled. Ingestion needs the store.
func (f *Feature) IsEnabled() bool {
	return f.db != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
