package controller

import (
	"edumate-be/internal/dto"
	"edumate-be/internal/pkg/serverutils"
	"edumate-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMentorController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Send(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
}

type mentorController struct {
	service service.IMentorService
}

func NewMentorController(service service.IMentorService) IMentorController {
	return &mentorController{service: service}
}

func (c *mentorController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/mentor")
	h.Use(auth)
	h.Post("/messages", c.Send)
	h.Get("/messages", c.History)
	h.Delete("/messages", c.Reset)
}

func (c *mentorController) Send(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	var req dto.MentorMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Send(ctx.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Mentor replied", res))
}

func (c *mentorController) History(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversation", c.service.History(userID)))
}

func (c *mentorController) Reset(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	c.service.Reset(userID)
	return ctx.JSON(serverutils.SuccessResponse[any]("Conversation cleared", nil))
}
