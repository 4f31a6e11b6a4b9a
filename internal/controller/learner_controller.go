package controller

import (
	"net/url"

	"edumate-be/internal/constant"
	"edumate-be/internal/dto"
	"edumate-be/internal/pkg/serverutils"
	"edumate-be/internal/service"
	"edumate-be/pkg/learner"

	"github.com/gofiber/fiber/v2"
)

type ILearnerController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Overview(ctx *fiber.Ctx) error
	CheckIn(ctx *fiber.Ctx) error
	Tasks(ctx *fiber.Ctx) error
	ToggleTask(ctx *fiber.Ctx) error
	DailyTasks(ctx *fiber.Ctx) error
	Roadmap(ctx *fiber.Ctx) error
	Track(ctx *fiber.Ctx) error
	SelectTrack(ctx *fiber.Ctx) error
	ActiveTab(ctx *fiber.Ctx) error
	SetActiveTab(ctx *fiber.Ctx) error
	Catalog(ctx *fiber.Ctx) error
}

type learnerController struct {
	service service.ILearnerService
}

func NewLearnerController(service service.ILearnerService) ILearnerController {
	return &learnerController{service: service}
}

func (c *learnerController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Get("/tracks", c.Catalog)

	h := r.Group("/learner")
	h.Use(auth)
	h.Get("/overview", c.Overview)
	h.Post("/check-in", c.CheckIn)
	h.Get("/tasks", c.Tasks)
	h.Patch("/tasks/:id", c.ToggleTask)
	h.Get("/daily-tasks", c.DailyTasks)
	h.Get("/roadmap", c.Roadmap)
	h.Get("/track", c.Track)
	h.Put("/track", c.SelectTrack)
	h.Get("/tab", c.ActiveTab)
	h.Put("/tab", c.SetActiveTab)
}

func (c *learnerController) Overview(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.Overview(ctx.UserContext(), userID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Dashboard overview", res))
}

func (c *learnerController) CheckIn(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.CheckIn(ctx.UserContext(), userID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Visit recorded", dto.CheckInResponse{
		Status: string(res.Status),
		Streak: res.Streak,
		Ledger: res.Ledger,
	}))
}

func (c *learnerController) Tasks(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	tasks, err := c.service.Tasks(ctx.UserContext(), userID)
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []learner.Task{}
	}
	return ctx.JSON(serverutils.SuccessResponse("Tasks retrieved", tasks))
}

func (c *learnerController) ToggleTask(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := url.PathUnescape(ctx.Params("id"))
	if err != nil || id == "" {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid task id")
	}

	var req dto.ToggleTaskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	task, err := c.service.ToggleTask(ctx.UserContext(), userID, id, *req.Completed)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Task updated", task))
}

func (c *learnerController) DailyTasks(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	var q dto.DailyTasksQuery
	if err := ctx.QueryParser(&q); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid query")
	}
	if err := serverutils.ValidateRequest(&q); err != nil {
		return err
	}

	res, err := c.service.DailyTasks(ctx.UserContext(), userID, learner.DailyFilter{
		Query:      q.Query,
		Difficulty: q.Difficulty,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Daily tasks", res))
}

func (c *learnerController) Roadmap(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	weeks, err := c.service.Roadmap(ctx.UserContext(), userID)
	if err != nil {
		return err
	}
	if weeks == nil {
		weeks = []learner.Week{}
	}
	return ctx.JSON(serverutils.SuccessResponse("Roadmap retrieved", weeks))
}

func (c *learnerController) Track(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	track, err := c.service.Track(ctx.UserContext(), userID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Selected track", dto.TrackResponse{Track: track}))
}

func (c *learnerController) SelectTrack(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	var req dto.SelectTrackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	track := constant.TrackTitle(req.Track)
	if err := c.service.SelectTrack(ctx.UserContext(), userID, track); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Track selected", dto.TrackResponse{Track: track}))
}

func (c *learnerController) ActiveTab(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	tab, err := c.service.ActiveTab(ctx.UserContext(), userID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Active tab", dto.ActiveTabResponse{Tab: tab}))
}

func (c *learnerController) SetActiveTab(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	var req dto.ActiveTabRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}
	if err := c.service.SetActiveTab(ctx.UserContext(), userID, req.Tab); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Active tab saved", dto.ActiveTabResponse{Tab: req.Tab}))
}

func (c *learnerController) Catalog(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Track catalog", constant.Tracks))
}
