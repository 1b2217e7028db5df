package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"refcheck/core/loader"
	"refcheck/core/logger"
	"refcheck/core/middleware/auth"
	"refcheck/core/middleware/rayid"
	"refcheck/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the refcheck HTTP server",
	Long:  `Starts the HTTP server exposing the reference integrity endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()
		logg := rt.logger
		zap.ReplaceGlobals(logg)

		rc, err := rt.reconciler(cmd.Context())
		if err != nil {
			return err
		}

		if cfg := rt.cfg.Server; cfg.AllowRepair && !cfg.RepairEnabled() {
			logg.Warn("Repair endpoint stays disabled until SERVER_API_KEY is set")
		}

		app := newServer(rt, rc, logg)

		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			if err := app.Listen(":" + rt.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

// newServer builds the Fiber app with middleware and every enabled feature.
func newServer(rt *runtime, runner integrity.Runner, logg *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID first so every log line can be traced.
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

	app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))

	mgr := loader.NewManager(logg)
	mgr.Register(integrity.NewFeature(runner, rt.store, logg, rt.cfg.Server.RepairEnabled()))
	if err := mgr.LoadAll(app); err != nil {
		logg.Fatal("Failed to load features", zap.Error(err))
	}
	return app
}

func init() {
	RootCmd.AddCommand(startCmd)
}
