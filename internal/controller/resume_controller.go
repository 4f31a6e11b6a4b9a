package controller

import (
	"errors"
	"io"

	"edumate-be/internal/constant"
	"edumate-be/internal/pkg/serverutils"
	"edumate-be/internal/service"
	"edumate-be/pkg/llm"
	"edumate-be/pkg/resume"

	"github.com/gofiber/fiber/v2"
)

type IResumeController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Analyze(ctx *fiber.Ctx) error
	AnalyzeSample(ctx *fiber.Ctx) error
}

type resumeController struct {
	service service.IResumeService
}

func NewResumeController(service service.IResumeService) IResumeController {
	return &resumeController{service: service}
}

func (c *resumeController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/resume")
	h.Use(auth)
	h.Post("/analyze", c.Analyze)
	h.Post("/sample", c.AnalyzeSample)
}

func (c *resumeController) Analyze(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Resume file is required")
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, resume.MaxSize+1))
	if err != nil {
		return err
	}

	res, err := c.service.Analyze(ctx.UserContext(), userID, file.Filename, data)
	if err != nil {
		return analysisError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Resume analyzed", res))
}

func (c *resumeController) AnalyzeSample(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.AnalyzeSample(ctx.UserContext(), userID)
	if err != nil {
		return analysisError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Resume analyzed", res))
}

func analysisError(err error) error {
	if errors.Is(err, llm.ErrBackendUnavailable) {
		return serverutils.WrapAppError(fiber.StatusBadGateway, constant.MsgAnalysisFailed, err)
	}
	return err
}
