// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	_ "aurasocial/docs" // swagger docs
	"aurasocial/internal/config"
	"aurasocial/internal/database"
	"aurasocial/internal/featureflags"
	"aurasocial/internal/ledger"
	"aurasocial/internal/middleware"
	"aurasocial/internal/models"
	"aurasocial/internal/notifications"
	"aurasocial/internal/repository"
	"aurasocial/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the connections a Server is built on. Redis and Ledger are optional.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Ledger *ledger.Client
}

var (
	promOnce sync.Once
	promMW   *fiberprometheus.FiberPrometheus
)

// httpMetrics registers the HTTP collectors once per process.
func httpMetrics() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMW = fiberprometheus.New("aurasocial-api")
	})
	return promMW
}

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	ledger         *ledger.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	featureFlags   *featureflags.Manager

	notifier *notifications.Notifier
	hub      *notifications.Hub

	profileService      *service.ProfileService
	postService         *service.PostService
	interactionService  *service.InteractionService
	notificationService *service.NotificationService
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
func NewServerWithDeps(cfg *config.Config, deps Deps) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config:         cfg,
		db:             deps.DB,
		redis:          deps.Redis,
		promMiddleware: httpMetrics(),
		shutdownCtx:    ctx,
		shutdownFn:     cancel,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
	}
	if deps.Ledger != nil {
		s.ledger = deps.Ledger.WithCache(deps.Redis)
	}

	users := repository.NewUserRepository(deps.DB)
	posts := repository.NewPostRepository(deps.DB)
	follows := repository.NewFollowRepository(deps.DB)
	inbox := repository.NewNotificationRepository(deps.DB)

	// Live push goes through Redis so every instance's hub sees it. Without
	// Redis it is delivered to this instance's hub directly. Who may open a
	// stream is decided per address by the realtime_push flag.
	var publisher notifications.Publisher
	s.hub = notifications.NewHub()
	if deps.Redis != nil {
		s.notifier = notifications.NewNotifier(deps.Redis)
		publisher = s.notifier
	} else {
		publisher = hubPublisher{hub: s.hub}
	}

	s.profileService = service.NewProfileService(users, follows)
	s.postService = service.NewPostService(posts)
	s.interactionService = service.NewInteractionService(service.InteractionRepos{
		Posts:    posts,
		Likes:    repository.NewLikeRepository(deps.DB),
		Comments: repository.NewCommentRepository(deps.DB),
		Follows:  follows,
		Tips:     repository.NewTipRepository(deps.DB),
		Shares:   repository.NewShareRepository(deps.DB),
	}, notifications.NewDispatcher(inbox, publisher))
	s.notificationService = service.NewNotificationService(inbox)

	return s
}

// hubPublisher delivers straight to the local hub when there is no Redis.
type hubPublisher struct {
	hub *notifications.Hub
}

func (p hubPublisher) PublishUser(_ context.Context, address string, payload string) error {
	p.hub.Broadcast(address, payload)
	return nil
}

// NewApp creates the Fiber app with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	bodyLimit := s.config.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 10
	}

	app := fiber.New(fiber.Config{
		AppName:   "Aura Social Index",
		BodyLimit: bodyLimit * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message, Status: fe.Code})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected requests still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		MaxAge:       86400,
	}))

	maxRequests := s.config.RateLimitMax
	if maxRequests <= 0 {
		maxRequests = 100
	}
	window := time.Duration(s.config.RateLimitWindowSeconds) * time.Second
	if window <= 0 {
		window = 15 * time.Minute
	}
	app.Use("/api", limiter.New(limiter.Config{
		Max:        maxRequests,
		Expiration: window,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error:  "Too many requests, please try again later.",
				Status: fiber.StatusTooManyRequests,
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/swagger/*", swagger.HandlerDefault)
	api.Get("/features", s.GetFeatureFlags)

	// Write throttle shared by every mutation, keyed by the acting wallet.
	writes := middleware.RateLimit(s.redis, 30, time.Minute, "mutation")

	users := api.Group("/users")
	users.Post("/profile", writes, s.UpsertProfile)
	users.Get("/profile/:address", s.GetProfile)
	users.Get("/trending", s.GetTrendingUsers)
	users.Get("/search/:query", middleware.RateLimit(s.redis, 10, time.Minute, "search"), s.SearchUsers)
	users.Get("/:address/followers", s.GetFollowers)
	users.Get("/:address/following", s.GetFollowing)
	users.Get("/:follower/follows/:following", s.IsFollowing)

	posts := api.Group("/posts")
	posts.Post("/", writes, s.CreatePost)
	posts.Get("/timeline", s.GetTimeline)
	posts.Get("/feed/:address", s.GetFeed)
	posts.Get("/user/:address", s.GetUserPosts)
	posts.Get("/:postId", s.GetPost)

	interactions := api.Group("/interactions")
	interactions.Post("/like", writes, s.LikePost)
	interactions.Delete("/like", writes, s.UnlikePost)
	interactions.Get("/like/:postId/:userAddress", s.HasLiked)
	interactions.Post("/comment", writes, s.CreateComment)
	interactions.Get("/comments/:postId", s.GetComments)
	interactions.Post("/follow", writes, s.FollowUser)
	interactions.Delete("/follow", writes, s.UnfollowUser)
	interactions.Post("/tip", writes, s.RecordTip)
	interactions.Get("/tips/:address", s.GetTips)
	interactions.Post("/share", writes, s.SharePost)

	// Specific /:address/... routes before generic /:id routes.
	notes := api.Group("/notifications")
	notes.Get("/:address/count", s.GetUnreadCount)
	notes.Put("/:address/read-all", s.MarkAllNotificationsRead)
	notes.Put("/:id/read", s.MarkNotificationRead)
	notes.Delete("/:id", s.DeleteNotification)
	notes.Get("/:address", s.GetNotifications)

	contract := api.Group("/contract", s.LedgerRequired())
	contract.Get("/address", s.GetContractAddress)
	contract.Get("/abi", s.GetContractABI)
	contract.Get("/post-counter", s.GetPostCounter)
	contract.Get("/post/:postId", s.GetOnChainPost)
	contract.Get("/profile/:address", s.GetOnChainProfile)
	contract.Get("/tx/:hash", s.GetTransactionStatus)

	api.Get("/ws/notifications/:address", s.WebSocketUpgradeRequired(), s.NotificationStreamHandler())
}

// StartRealtime wires the hub to Redis pub/sub. It is a no-op without both.
func (s *Server) StartRealtime() error {
	if s.notifier == nil {
		return nil
	}
	return s.hub.StartWiring(s.shutdownCtx, s.notifier)
}

// LivenessCheck reports that the process is serving requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports database and Redis health. Redis is optional, so
// only the database decides readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	ledgerStatus := "unconfigured"
	if s.ledger != nil {
		ledgerStatus = "configured"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
			"ledger":   ledgerStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown stops realtime wiring and closes live connections. The caller
// owns and closes the database, Redis and ledger connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}
	if s.hub != nil {
		if err := s.hub.Shutdown(ctx); err != nil {
			middleware.Logger.Warn("error shutting down notification hub", slog.String("error", err.Error()))
		}
	}
	middleware.Logger.Info("Server shutdown complete")
	return nil
}
