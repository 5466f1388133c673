package workoutHandler

import (
	workoutService "RehabSense/internal/api/workout/service"
	"RehabSense/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type WorkoutHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	workoutService workoutService.IWorkoutService
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ws workoutService.IWorkoutService,
) *WorkoutHandler {
	return &WorkoutHandler{
		log:            log,
		validator:      validator,
		middleware:     middleware,
		workoutService: ws,
	}
}

func (h *WorkoutHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	sessions := srv.Group("/workout/sessions")
	sessions.Post("/start", h.StartSession)
	sessions.Post("/:sessionId/metrics", h.UpdateMetrics)
	sessions.Get("/:sessionId/metrics", h.GetMetrics)
	sessions.Post("/:sessionId/end", h.EndSession)

	sessions.Use("/:sessionId/ws", wsMiddleware)
	sessions.Get("/:sessionId/ws", websocket.New(h.handleFrameStream))

	srv.Get("/workout/ws/health", h.StreamHealth)
}

func (h *WorkoutHandler) StreamHealth(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"status":    "healthy",
		"websocket": "ready",
	})
}
