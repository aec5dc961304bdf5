package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/dto"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/pkg/serverutils"
	"github.com/Meta3VenturesAI/meta3ventures-agentic-website-sub004/internal/service"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
	AddDocument(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	knowledgeService service.IKnowledgeService
}

func NewKnowledgeController(knowledgeService service.IKnowledgeService) IKnowledgeController {
	return &knowledgeController{
		knowledgeService: knowledgeService,
	}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/knowledge/v1")
	h.Post("search", c.Search)
	h.Get("stats", c.Stats)
	// Mutations require a valid token
	h.Post("documents", serverutils.JwtMiddleware, c.AddDocument)
}

func (c *knowledgeController) AddDocument(ctx *fiber.Ctx) error {
	var req dto.AddDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.knowledgeService.AddDocument(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add document", res))
}

func (c *knowledgeController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.knowledgeService.Search(&req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search knowledge", res))
}

func (c *knowledgeController) Stats(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success show knowledge stats", c.knowledgeService.Stats()))
}
