package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"license-sync/core/database"
	"license-sync/core/loader"
	"license-sync/core/logger"
	"license-sync/core/middleware/auth"
	"license-sync/core/middleware/rayid"
	"license-sync/core/remote"
	"license-sync/core/storage"
	"license-sync/feature/directory"
	"license-sync/feature/integrity"
	"license-sync/feature/license"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "license-sync/docs/swagger"
)

// @title License Sync API
// @version 1.0
// @description Stored license details enriched with client directory URLs.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the license reporting server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}
		defer database.Close(db)
		logg.Info("Connected to licensing database", zap.String("driver", cfg.Database.Driver))

		if cfg.Database.AutoMigrate {
			if err := license.NewRepository(db).Migrate(); err != nil {
				return err
			}
		}

		// Storage is only needed for the archive check
		var store storage.Client
		if cfg.Storage.ArchiveEnabled {
			if store, err = storage.NewClient(cfg.Storage); err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
		}

		client := remote.NewClient(cfg.Remote)
		dirService := directory.NewService(
			directory.NewFetcher(client, logger.Component(logg, "directory")),
			cfg.Server.DirectoryCacheTTL(),
			logg,
		)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager()
		mgr.Register(license.NewFeature(db, logg))
		mgr.Register(directory.NewFeature(dirService))
		mgr.Register(integrity.NewFeature(store, cfg.Storage.Bucket, cfg.Storage.Prefix, logg, db))

		// RayID first so every later log line carries it
		app.Use(rayid.New())

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

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/swagger"}}))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			return err
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			errCh <- app.Listen(":" + cfg.Server.Port)
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-sig:
		}

		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
