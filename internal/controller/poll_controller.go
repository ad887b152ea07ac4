package controller

import (
	"household-sync-be/internal/dto"
	"household-sync-be/internal/pkg/serverutils"
	"household-sync-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPollController interface {
	RegisterRoutes(r fiber.Router)
	Subscribe(ctx *fiber.Ctx) error
	Unsubscribe(ctx *fiber.Ctx) error
	Run(ctx *fiber.Ctx) error
	Trigger(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
}

type pollController struct {
	service service.IPollService
}

func NewPollController(service service.IPollService) IPollController {
	return &pollController{service: service}
}

func (c *pollController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/poll/v1")
	h.Post("subscriptions", c.Subscribe)
	h.Delete("subscriptions", c.Unsubscribe)
	h.Post("run", c.Run)
	h.Post("trigger", c.Trigger)
	h.Post("reset", c.Reset)
}

func parseTarget(ctx *fiber.Ctx) (*dto.PollTargetRequest, error) {
	var req dto.PollTargetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (c *pollController) Subscribe(ctx *fiber.Ctx) error {
	req, err := parseTarget(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Subscribe(ctx.UserContext(), req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success subscribe device", req))
}

func (c *pollController) Unsubscribe(ctx *fiber.Ctx) error {
	req, err := parseTarget(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Unsubscribe(ctx.UserContext(), req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success unsubscribe device", req))
}

// Run polls once and reports the cycle result. A "retry" result is not an
// HTTP error; the caller decides whether to call again.
func (c *pollController) Run(ctx *fiber.Ctx) error {
	req, err := parseTarget(ctx)
	if err != nil {
		return err
	}

	res := c.service.Run(ctx.UserContext(), req)
	return ctx.JSON(serverutils.SuccessResponse("Success run poll cycle", res))
}

func (c *pollController) Trigger(ctx *fiber.Ctx) error {
	res, err := c.service.EnqueueAll(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Success trigger poll", res))
}

func (c *pollController) Reset(ctx *fiber.Ctx) error {
	req, err := parseTarget(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Reset(ctx.UserContext(), req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reset observed state", req))
}
