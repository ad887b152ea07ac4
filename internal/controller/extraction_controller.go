package controller

import (
	"household-sync-be/internal/dto"
	"household-sync-be/internal/pkg/serverutils"
	"household-sync-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IExtractionController interface {
	RegisterRoutes(r fiber.Router)
	ExtractIngredients(ctx *fiber.Ctx) error
	ParseRecipeNotes(ctx *fiber.Ctx) error
}

type extractionController struct {
	service service.IExtractionService
}

func NewExtractionController(service service.IExtractionService) IExtractionController {
	return &extractionController{service: service}
}

func (c *extractionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/extract/v1")
	h.Post("ingredients", c.ExtractIngredients)
	h.Post("recipe-notes", c.ParseRecipeNotes)
}

func (c *extractionController) ExtractIngredients(ctx *fiber.Ctx) error {
	var req dto.ExtractTextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res := c.service.ExtractIngredients(ctx.UserContext(), &req)
	return ctx.JSON(serverutils.SuccessResponse("Success extract ingredients", res))
}

func (c *extractionController) ParseRecipeNotes(ctx *fiber.Ctx) error {
	var req dto.ExtractTextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res := c.service.ParseRecipeNotes(ctx.UserContext(), &req)
	return ctx.JSON(serverutils.SuccessResponse("Success parse recipe notes", res))
}
