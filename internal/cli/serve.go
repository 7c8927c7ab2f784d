package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/habitflow/internal/api"
	"github.com/terraincognita07/habitflow/internal/logger"
	"github.com/terraincognita07/habitflow/internal/reminders"
	"github.com/terraincognita07/habitflow/internal/security"
)

const shutdownTimeout = 10 * time.Second

type ServeCmd struct {
	Port         string `help:"TCP port to listen on." env:"PORT" default:"8080"`
	SecretKey    string `name:"secret-key" help:"Key that signs API tokens (>= 32 characters)." env:"SECRET_KEY"`
	PlanSchedule string `name:"plan-schedule" help:"Cron spec for planning reminders of every user." default:"@every 15m"`
}

func (cmd *ServeCmd) Run(ctx *Context) error {
	port, err := resolvePort(cmd.Port)
	if err != nil {
		return err
	}
	if err := security.ValidateSecretKey(cmd.SecretKey); err != nil {
		return err
	}

	bundle, closeDB, err := ctx.OpenServices()
	if err != nil {
		return err
	}
	defer closeDB()

	handler, err := api.NewHandler(bundle, cmd.SecretKey)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	fiberApp := fiber.New(fiber.Config{
		AppName:               "habitflow",
		DisableStartupMessage: true,
	})
	fiberApp.Use(recover.New())
	fiberApp.Use(fiberlogger.New(fiberlogger.Config{Output: logger.Writer()}))
	api.RegisterRoutes(fiberApp, handler)

	scheduler, err := reminders.NewScheduler(reminders.LogSender{}, bundle.Location)
	if err != nil {
		return err
	}
	planner := bundle.Reminders(scheduler)
	planAll := func(jobCtx context.Context) {
		planned, err := planner.PlanAll(jobCtx)
		if err != nil {
			logger.Error("plan reminders", "err", err)
			return
		}
		logger.Debug("reminders planned", "count", planned)
	}
	if err := scheduler.AddDailyJob(cmd.PlanSchedule, planAll); err != nil {
		return err
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	planAll(sigCtx)
	scheduler.Start()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		scheduler.Stop(shutdownCtx)
		if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "err", err)
		}
	}()

	logger.Info("habitflow listening", "port", port, "db", ctx.Globals.DB, "tz", bundle.Location.String())
	if err := fiberApp.Listen(":" + port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func resolvePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return "8080", nil
	}
	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return port, nil
}
