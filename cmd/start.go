package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"econfeed/core/config"
	"econfeed/core/database"
	"econfeed/core/loader"
	"econfeed/core/logger"
	"econfeed/core/middleware/auth"
	"econfeed/core/middleware/rayid"
	"econfeed/core/storage"
	"econfeed/feature/csvimport"
	"econfeed/feature/importer"
	impmodels "econfeed/feature/importer/models"
	"econfeed/feature/ratelimit"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "econfeed/docs/swagger"
)

// @title Econfeed API
// @version 1.0
// @description API for importing and reconciling economic indicator releases.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the econfeed server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Optional)
		// Without it the server still answers catalog requests; import and
		// upload endpoints report a store error.
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
			if err := db.AutoMigrate(
				&impmodels.Indicator{},
				&impmodels.Release{},
				&ratelimit.RequestLog{},
			); err != nil {
				logg.Fatal("Auto-migration failed", zap.Error(err))
			}
			logg.Info("Connected to indicator store")
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 5. Initialize Storage (Optional, CSV upload archive)
		var store storage.Client
		if cfg.Storage.Enabled {
			store, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
		}

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		registry := newRegistry(cfg.Sources)
		mgr.Register(importer.NewFeature(db, registry, cfg.Sources, logg))
		mgr.Register(csvimport.NewFeature(db, store, cfg.Storage.Bucket, cfg.Server.UploadSecret, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(cfg.Server))

		// 4. Rate Limit (needs the credential from auth and the store)
		if db != nil {
			limiter := ratelimit.NewLimiter(db, logg, cfg.RateLimit)
			app.Use(ratelimit.Middleware(limiter, cfg.Server))
		} else {
			logg.Warn("Rate limiting disabled, no database connection")
		}

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", mgr.Loaded()))

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
