package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/dto"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/pkg/serverutils"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/service"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/pkg/session"
)

type IAgentController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type agentController struct {
	agentService service.IAgentService
}

func NewAgentController(agentService service.IAgentService) IAgentController {
	return &agentController{
		agentService: agentService,
	}
}

func (c *agentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/agent/v1")
	h.Use(serverutils.IdentityMiddleware)
	h.Use(serverutils.RateLimitMiddleware(30, time.Minute))
	h.Post("chat", c.Chat)
	h.Get("sessions/:id", c.History)
}

func (c *agentController) Chat(ctx *fiber.Ctx) error {
	userId := ctx.Locals(serverutils.UserIdLocal).(string)

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.agentService.Chat(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate response", res))
}

func (c *agentController) History(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	res, err := c.agentService.History(sessionId)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Session not found")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}
