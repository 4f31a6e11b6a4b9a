package controller

import (
	"edumate-be/internal/dto"
	"edumate-be/internal/pkg/serverutils"
	"edumate-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRoadmapController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Generate(ctx *fiber.Ctx) error
	Adopt(ctx *fiber.Ctx) error
}

type roadmapController struct {
	service service.IRoadmapService
}

func NewRoadmapController(service service.IRoadmapService) IRoadmapController {
	return &roadmapController{service: service}
}

func (c *roadmapController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/roadmap")
	h.Use(auth)
	h.Post("/generate", c.Generate)
	h.Post("/adopt", c.Adopt)
}

func (c *roadmapController) Generate(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	var req dto.GenerateRoadmapRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	weeks, err := c.service.Generate(ctx.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Roadmap generated", weeks))
}

func (c *roadmapController) Adopt(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	var req dto.AdoptRoadmapRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Adopt(ctx.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Roadmap selected", res))
}
