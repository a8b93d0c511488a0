package main

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/talentgate/recruitment-api/internal/auth"
	"github.com/talentgate/recruitment-api/internal/config"
	"github.com/talentgate/recruitment-api/internal/db"
	"github.com/talentgate/recruitment-api/internal/handlers"
	"github.com/talentgate/recruitment-api/internal/middleware"
	"github.com/talentgate/recruitment-api/internal/models"
	"github.com/talentgate/recruitment-api/internal/session"
	"github.com/talentgate/recruitment-api/internal/store"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}

	if err := gdb.AutoMigrate(&models.User{}, &models.Job{}, &models.Application{}); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	// Sessions live in Redis when configured, otherwise in-process.
	var sessions session.Store
	if cfg.RedisAddr != "" {
		rdb := session.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Msg("redis connect failed")
		}
		sessions = session.NewRedisStore(rdb)
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis session store")
	} else {
		sessions = session.NewMemoryStore()
		log.Info().Msg("using in-memory session store")
	}

	users := store.NewGormUserStore(gdb)
	sessionTTL := time.Duration(cfg.SessionTTLMin) * time.Minute
	svc := auth.NewService(users, sessions, cfg.BcryptCost, sessionTTL, log)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	authH := &handlers.AuthHandler{
		Svc:           svc,
		SessionSecret: cfg.SessionSecret,
		SessionTTL:    sessionTTL,
		Log:           log,
	}
	googleH := &handlers.GoogleOAuthHandler{
		Users:           users,
		Svc:             svc,
		SessionSecret:   cfg.SessionSecret,
		SessionTTL:      sessionTTL,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBase,
		Log:             log,
	}
	jobH := handlers.NewJobHandler(gdb, log)
	appH := handlers.NewApplicationHandler(gdb, log)

	api := app.Group("/api")

	// public
	api.All("/auth", authH.Dispatch)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)
	api.Get("/jobs", jobH.ListPublic)
	api.Get("/jobs/:id", jobH.GetDetail)

	// protected (session cookie)
	protected := api.Group("/",
		middleware.SessionFromCookie(cfg.SessionSecret, sessions),
		middleware.AttachSessionLocals(),
	)

	protected.Get("/me", func(c *fiber.Ctx) error {
		sess := c.Locals("session").(*session.Session)
		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"id":        sess.UserID,
				"username":  sess.Username,
				"role":      sess.Role,
				"full_name": sess.FullName,
			},
		})
	})

	protected.Post("/jobs",
		middleware.RequireRoles("recruiter", "admin"),
		jobH.Create,
	)
	protected.Post("/jobs/:id/apply",
		middleware.RequireRoles("candidate"),
		appH.Apply,
	)
	protected.Get("/applications",
		middleware.RequireRoles("candidate"),
		appH.ListMine,
	)
	protected.Patch("/applications/:id/status",
		middleware.RequireRoles("recruiter", "admin"),
		appH.UpdateStatus,
	)

	log.Fatal().Err(app.Listen(":" + cfg.AppPort)).Msg("server stopped")
}
