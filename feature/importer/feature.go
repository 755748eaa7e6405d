package importer

import (
	"econfeed/feature/sources"

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

// NewFeature wires the store, engine, orchestrator and handler together.
func NewFeature(db *gorm.DB, registry *sources.Registry, cfg sources.Config, logger *zap.Logger) *Feature {
	engine := NewEngine(NewStore(db), logger)
	svc := NewService(registry, engine, cfg, logger)
	h := NewHandler(svc)
	return &Feature{db: db, service: svc, handler: h}
}

// Service exposes the orchestrator for CLI one-shot runs.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "importer"
}

// IsEnabled checks if the feature is enabled. Imports need the store.
func (f *Feature) IsEnabled() bool {
	return f.db != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
