package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"immich-album-sync/core/loader"
	"immich-album-sync/core/logger"
	"immich-album-sync/core/middleware/auth"
	"immich-album-sync/core/middleware/rayid"
	"immich-album-sync/core/server"
	"immich-album-sync/feature/integrity"
	albumsync "immich-album-sync/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sync on an interval and serve run reports over HTTP",
	Long: `Runs a sync immediately and then every interval_minutes (default 60),
and starts an HTTP server with the last report, a manual trigger and the
integrity checks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.close()
		logg := a.log
		zap.ReplaceGlobals(logg)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		comps, err := albumsync.Build(ctx, a.cfg, logg)
		if err != nil {
			logg.Error("CRITICAL: Failed to prepare sync. Exiting.", zap.Error(err))
			return err
		}
		defer comps.Close()

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager()
		mgr.Register(albumsync.NewFeature(comps.Service, a.cfg, logg))
		mgr.Register(integrity.NewFeature(comps.Service.Destination(), comps.Manifest, a.cfg.AlbumID, logg))

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

		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey, Skip: []string{"/health"}}))

		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Error("Failed to load features", zap.Error(err))
			return err
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		interval := server.SyncInterval(a.cfg.IntervalMinutes)
		go comps.Service.Loop(ctx, interval, func() *albumsync.RunContext {
			return albumsync.NewRunContext(a.cfg, logg)
		})

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server",
				zap.String("port", a.cfg.Server.Port),
				zap.Duration("sync_interval", interval))
			errCh <- app.Listen(a.cfg.Server.Address())
		}()

		select {
		case err := <-errCh:
			logg.Error("Server failed to start", zap.Error(err))
			return err
		case <-ctx.Done():
		}

		logg.Info("Shutting down server...")
		return app.ShutdownWithTimeout(10 * time.Second)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

