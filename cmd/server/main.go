// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/serviceops/maintdesk/internal/config"
	"github.com/serviceops/maintdesk/internal/handlers"
	"github.com/serviceops/maintdesk/internal/middleware"
	"github.com/serviceops/maintdesk/internal/reminder"
	"github.com/serviceops/maintdesk/internal/service"
	"github.com/serviceops/maintdesk/internal/store"
	"github.com/serviceops/maintdesk/pkg/auth"
	"github.com/serviceops/maintdesk/pkg/email"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}
	if cfg.Server.Environment == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	log.WithField("path", cfg.Database.Path).Info("Opening database")
	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		log.WithError(err).Fatal("Failed to open database")
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.WithError(err).Error("Failed to close database")
		}
	}()

	tokenManager := auth.NewTokenManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenDuration,
		cfg.JWT.RefreshTokenDuration,
	)

	var emailService email.Service
	if cfg.Email.TestingMode || cfg.Server.Environment == "development" {
		log.Info("Using mock email service")
		emailService = email.NewMockService()
	} else {
		log.Info("Using SMTP email service")
		smtpService := email.NewSMTPService(&email.Config{
			SMTPHost:     cfg.Email.SMTPHost,
			SMTPPort:     cfg.Email.SMTPPort,
			SMTPUsername: cfg.Email.SMTPUsername,
			SMTPPassword: cfg.Email.SMTPPassword,
			FromEmail:    cfg.Email.FromEmail,
			FromName:     cfg.Email.FromName,
			BaseURL:      cfg.Email.BaseURL,
			AppName:      cfg.Email.AppName,
		})
		if err := smtpService.TestConnection(context.Background()); err != nil {
			log.WithError(err).Warn("SMTP connection test failed")
		}
		emailService = smtpService
	}

	taskService := service.NewTaskService(st)
	knowledgeService := service.NewKnowledgeService(st)
	authService := service.NewAuthService(st, tokenManager)

	reminderService := reminder.NewService(st, emailService, log).
		WithSendDelay(cfg.Reminder.SendDelay)
	scheduler, err := reminder.NewScheduler(reminderService, cfg.Server.Environment, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to set up reminder scheduler")
	}
	scheduler.Start()
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.Email.AppName,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	handlers.Register(app, tokenManager,
		handlers.NewAuthHandler(authService),
		handlers.NewTaskHandler(taskService),
		handlers.NewKnowledgeHandler(knowledgeService),
		handlers.NewReminderHandler(reminderService, st),
	)

	go func() {
		addr := ":" + cfg.Server.Port
		log.WithField("addr", addr).Info("Server listening")
		if err := app.Listen(addr); err != nil {
			log.WithError(err).Fatal("Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Error("Shutdown failed")
	}
}
