// Package server wires the HTTP routes, middleware and page handlers.
package server

import (
	"context"
	"fmt"
	"time"

	_ "blogsite/docs" // swagger docs
	"blogsite/internal/cache"
	"blogsite/internal/config"
	"blogsite/internal/database"
	"blogsite/internal/middleware"
	"blogsite/internal/models"
	"blogsite/internal/repository"
	"blogsite/internal/service"
	"blogsite/internal/view"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	tokens         *service.TokenService
	userService    *service.UserService
	postService    *service.PostService
	commentService *service.CommentService
	likeService    *service.LikeService
	imageService   *service.ImageService
}

// NewServer connects to the database and Redis and builds the server.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	if cfg.HomeCacheTTLSeconds > 0 {
		cache.HomeTTL = time.Duration(cfg.HomeCacheTTLSeconds) * time.Second
	}

	tokens := service.NewTokenService(cfg.JWTSecret, nil)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("blogsite"),
		tokens:         tokens,
		userService:    service.NewUserService(userRepo, tokens),
		postService:    service.NewPostService(postRepo, userRepo, commentRepo, likeRepo),
		commentService: service.NewCommentService(commentRepo, postRepo, userRepo),
		likeService:    service.NewLikeService(likeRepo, postRepo),
		imageService:   service.NewImageService(cfg),
	}, nil
}

// NewApp builds the fiber app with views, middleware and routes.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Blogsite",
		Views:        view.New(),
		BodyLimit:    int(s.imageService.MaxUploadSizeBytes()) + 1024*1024,
		ErrorHandler: s.errorHandler,
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.TracingMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Global in-memory rate limiting per IP; the Redis limits below are per action.
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return !s.config.IsProduction()
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many requests, please try again later.")
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded pictures
	app.Static("/images", s.imageService.UploadDir())

	authRequired := middleware.AuthRequired(s.tokens)

	// Auth pages
	app.Get("/user/register", s.ShowRegister)
	app.Post("/user/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	app.Get("/user/login", s.ShowLogin)
	app.Post("/user/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	app.Get("/logout", s.Logout)

	// Owner pages. The guard is per route: /user also holds the public login pages.
	user := app.Group("/user")
	user.Get("/dashboard", authRequired, s.Dashboard)
	user.Get("/profileedit", authRequired, s.ProfileEdit)
	user.Get("/blog", authRequired, s.MyPosts)
	user.Get("/comment", authRequired, s.MyComments)
	app.Post("/profile", authRequired, s.UpdateProfile)

	// Moderation
	app.Post("/comments/approve", authRequired, s.ApproveComment)
	app.Post("/comments/disapprove", authRequired, s.DisapproveComment)

	// Public post pages. Specific /:id/:action routes before the generic /:id route.
	app.Post("/post/:id/comment", middleware.RateLimit(
		s.redis, 5, time.Minute, "create_comment"), s.CreateComment)
	app.Post("/post/:id/like", s.LikePost)
	app.Get("/post/:id", s.GetPost)

	app.Get("/", s.Home)
	app.Get("/blog", s.BlogLanding)
	app.Get("/category", s.Category)

	// Post management, unguarded: authorId comes from the form.
	app.Post("/posts", s.CreatePost)
	app.Post("/posts/update", s.UpdatePost)
	app.Post("/posts/delete", s.DeletePost)
}

// LivenessCheck handles liveness probe requests
// @Summary Liveness probe
// @Description Reports that the process is up
// @Tags health
// @Produce json
// @Success 200 {object} object{status=string,time=string}
// @Router /health/live [get]
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional: a
// missing client is reported but does not fail readiness.
// @Summary Readiness probe
// @Description Checks the database and Redis
// @Tags health
// @Produce json
// @Success 200 {object} object
// @Failure 503 {object} object
// @Router /health/ready [get]
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// errorHandler renders the error page for anything a handler returns unhandled.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Server error"

	if fe, ok := err.(*fiber.Error); ok {
		status = fe.Code
		message = fe.Message
	} else if _, ok := asAppError(err); ok {
		status = models.StatusFor(err)
		message = models.PublicMessage(err)
	}

	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
			"path", c.Path(), "status", status, "error", err.Error())
	}

	c.Status(status)
	if renderErr := c.Render("error", fiber.Map{"Status": status, "Message": message}); renderErr != nil {
		return c.SendString(message)
	}
	return nil
}

// Start runs the HTTP listener until it fails or is shut down.
func (s *Server) Start() error {
	if s.app == nil {
		s.NewApp()
	}
	middleware.Logger.Info("server starting", "port", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err.Error())
		}
	}

	if err := database.Close(s.db); err != nil {
		middleware.Logger.Error("error closing database", "error", err.Error())
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", "error", err.Error())
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
