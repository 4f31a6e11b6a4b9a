package server

import (
	"context"
	"log"

	"edumate-be/internal/bootstrap"
	"edumate-be/internal/config"
	"edumate-be/internal/constant"
	"edumate-be/internal/pkg/logger"
	"edumate-be/internal/pkg/serverutils"
	"edumate-be/internal/service"
	"edumate-be/pkg/learner"
	"edumate-be/pkg/llm"
	"edumate-be/pkg/resume"
	"edumate-be/pkg/roadmap"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// RouteRegistrar is implemented by every controller and handler.
type RouteRegistrar interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
}

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := NewApp(cfg, container.Logger)

	Mount(app, serverutils.JwtMiddleware(cfg.Auth.JWTSecret),
		container.AuthController,
		container.LearnerController,
		container.RoadmapController,
		container.MentorController,
		container.ResumeController,
		container.NotificationHandler,
	)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

// NewApp builds the fiber app with the shared middleware and error mapping
// but no routes.
func NewApp(cfg *config.Config, log logger.ILogger) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    resume.MaxSize + 1<<20,
		ErrorHandler: serverutils.ErrorHandlerMiddleware(log, ErrorStatuses()...),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	app.Use(otelfiber.Middleware())

	return app
}

// Mount registers every registrar under /api.
func Mount(app *fiber.App, auth fiber.Handler, registrars ...RouteRegistrar) {
	api := app.Group("/api")
	for _, r := range registrars {
		r.RegisterRoutes(api, auth)
	}
}

// ErrorStatuses maps domain errors to HTTP statuses. AI failures share one
// generic message so backend details never reach the client.
func ErrorStatuses() []serverutils.ErrorStatus {
	return []serverutils.ErrorStatus{
		{Err: learner.ErrTaskNotFound, Code: fiber.StatusNotFound},
		{Err: learner.ErrNoRoadmap, Code: fiber.StatusConflict},
		{Err: learner.ErrEmptyRoadmap, Code: fiber.StatusBadRequest},
		{Err: learner.ErrTrackRequired, Code: fiber.StatusBadRequest},

		{Err: roadmap.ErrMalformedRoadmap, Code: fiber.StatusBadGateway, Message: constant.MsgRoadmapFailed},
		{Err: llm.ErrBackendUnavailable, Code: fiber.StatusBadGateway, Message: constant.MsgBackendDown},

		{Err: resume.ErrUnsupportedFileType, Code: fiber.StatusUnsupportedMediaType, Message: constant.MsgExtractFailed},
		{Err: resume.ErrEmptyResume, Code: fiber.StatusUnprocessableEntity, Message: constant.MsgExtractFailed},
		{Err: resume.ErrTooLarge, Code: fiber.StatusRequestEntityTooLarge},

		{Err: service.ErrInvalidCredentials, Code: fiber.StatusUnauthorized},
		{Err: service.ErrEmailTaken, Code: fiber.StatusConflict},
		{Err: service.ErrAccountBlocked, Code: fiber.StatusForbidden},
		{Err: service.ErrUserNotFound, Code: fiber.StatusNotFound},
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
