package server

import (
	"time"

	"dormirlahaut/internal/catalog"
	"dormirlahaut/internal/config"
	"dormirlahaut/internal/contribution"
	"dormirlahaut/internal/gateway"
	"dormirlahaut/internal/moderation"
	"dormirlahaut/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	Log      *zap.Logger
	Sessions *session.Manager
	Gateway  *gateway.Client
	Catalog  *catalog.Service
	Contribs *contribution.Service
	Queue    *moderation.Service
}

func NewServer(cfg config.Config, redisClient *redis.Client, log *zap.Logger) *Server {
	var store session.Store
	if redisClient != nil {
		store = session.NewRedisStore(redisClient, time.Duration(cfg.SessionTTLh)*time.Hour)
	} else {
		store = session.NewMemoryStore()
	}
	sessions := session.NewManager(store, log)

	gw := gateway.NewClient(cfg.APIBaseURL, log)

	s := &Server{
		Cfg:      cfg,
		Log:      log,
		Sessions: sessions,
		Gateway:  gw,
		Catalog:  catalog.NewService(gw, redisClient, time.Duration(cfg.CatalogTTLs)*time.Second, log),
		Contribs: contribution.NewService(gw, cfg.MaxPhotoMB, log),
		Queue:    moderation.NewService(gw, log),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: s.errorHandler,
		BodyLimit:    (cfg.MaxPhotoMB + 1) * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(session.Middleware(sessions))
	s.App = app

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	registerAuthRoutes(s, s.App.Group("/auth"))
	registerMapRoutes(s, s.App.Group("/map"))
	registerPOIRoutes(s)
	registerProfileRoutes(s, s.App.Group("/profile"))
	registerAdminRoutes(s, s.App.Group("/admin"))
}

// requireAuth redirects anonymous visitors to the sign-in page, mirroring
// the protected-route behavior of the original client.
func requireAuth(c *fiber.Ctx) error {
	if !session.FromCtx(c).Authenticated() {
		return c.Redirect("/signin", fiber.StatusFound)
	}
	return c.Next()
}

// requireAdmin sends non-admins away entirely; the admin surface must never
// render a degraded view.
func requireAdmin(c *fiber.Ctx) error {
	sess := session.FromCtx(c)
	if !sess.Authenticated() || !sess.User.IsAdmin() {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Next()
}

func token(c *fiber.Ctx) gateway.TokenSource {
	return gateway.StaticToken(session.FromCtx(c).Token)
}
