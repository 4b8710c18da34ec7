package server

import (
	"github.com/faazahm/backend-camping/internal/auth"
	"github.com/faazahm/backend-camping/internal/booking"
	"github.com/faazahm/backend-camping/internal/campsite"
	"github.com/faazahm/backend-camping/internal/config"
	"github.com/faazahm/backend-camping/internal/equipment"
	"github.com/faazahm/backend-camping/internal/notify"
	"github.com/faazahm/backend-camping/internal/realtime"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
	Hub   *realtime.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
		Hub:   realtime.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	adminMiddleware := auth.RequireAdmin()

	bookings := booking.NewService(s.DB, s.Hub, notify.NewNotifier(s.Redis))

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	campsite.RegisterRoutes(s.App.Group("/campsites"), campsite.NewService(s.DB), jwtMiddleware, adminMiddleware)
	equipment.RegisterRoutes(s.App.Group("/equipment"), equipment.NewService(s.DB), jwtMiddleware, adminMiddleware)
	booking.RegisterRoutes(s.App.Group("/bookings"), bookings, jwtMiddleware)
	booking.RegisterAdminRoutes(s.App.Group("/admin/bookings"), bookings, jwtMiddleware, adminMiddleware)
	booking.RegisterAvailabilityRoutes(s.App.Group("/availability"), bookings)
	realtime.RegisterRoutes(s.App.Group("/stream"), s.Hub)
}
