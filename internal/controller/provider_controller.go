package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/pkg/serverutils"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/service"
)

type IProviderController interface {
	RegisterRoutes(r fiber.Router)
	Status(ctx *fiber.Ctx) error
	Refresh(ctx *fiber.Ctx) error
}

type providerController struct {
	providerService service.IProviderService
}

func NewProviderController(providerService service.IProviderService) IProviderController {
	return &providerController{
		providerService: providerService,
	}
}

func (c *providerController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/providers/v1")
	h.Get("status", c.Status)
	h.Post("refresh", serverutils.JwtMiddleware, c.Refresh)
}

func (c *providerController) Status(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success show provider status", c.providerService.Status(ctx.Context())))
}

func (c *providerController) Refresh(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success refresh provider status", c.providerService.Refresh(ctx.Context())))
}
