package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/pkg/logger"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/pkg/serverutils"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/service"
)

type IOpsController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	Usage(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
}

type opsController struct {
	consumerService service.IConsumerService
	logger          logger.ILogger
}

func NewOpsController(consumerService service.IConsumerService, log logger.ILogger) IOpsController {
	return &opsController{
		consumerService: consumerService,
		logger:          log,
	}
}

func (c *opsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ops/v1")
	h.Get("health", c.Health)
	h.Get("usage", serverutils.JwtMiddleware, c.Usage)
	h.Get("logs", serverutils.JwtMiddleware, c.Logs)
}

func (c *opsController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("OK", fiber.Map{"status": "healthy"}))
}

func (c *opsController) Usage(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success show usage stats", c.consumerService.Stats()))
}

func (c *opsController) Logs(ctx *fiber.Ctx) error {
	level := ctx.Query("level", "")
	limit := ctx.QueryInt("limit", 100)
	offset := ctx.QueryInt("offset", 0)

	entries, err := c.logger.GetLogs(level, limit, offset)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to read logs")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show logs", entries))
}
