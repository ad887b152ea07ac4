package controller

import (
	"errors"

	"household-sync-be/internal/dto"
	"household-sync-be/internal/pkg/serverutils"
	"household-sync-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGroupController interface {
	RegisterRoutes(r fiber.Router)
	Upsert(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type groupController struct {
	service service.IGroupService
}

func NewGroupController(service service.IGroupService) IGroupController {
	return &groupController{service: service}
}

func (c *groupController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/group/v1")
	h.Post("", c.Upsert)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

func (c *groupController) Upsert(ctx *fiber.Ctx) error {
	var req dto.UpsertGroupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Upsert(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upsert group", res))
}

func (c *groupController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Show(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show group", res))
}

func (c *groupController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete group", nil))
}
