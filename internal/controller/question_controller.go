package controller

import (
	"interview-prep-be/internal/dto"
	"interview-prep-be/internal/pkg/serverutils"
	"interview-prep-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQuestionController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	AddToSession(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	TogglePin(ctx *fiber.Ctx) error
	UpdateNote(ctx *fiber.Ctx) error
}

type questionController struct {
	sessionService  service.ISessionService
	questionService service.IQuestionService
}

func NewQuestionController(sessionService service.ISessionService, questionService service.IQuestionService) IQuestionController {
	return &questionController{
		sessionService:  sessionService,
		questionService: questionService,
	}
}

func (c *questionController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/question/v1")
	h.Use(auth)
	h.Post("", c.AddToSession)
	h.Get(":id", c.Show)
	h.Put(":id/pin", c.TogglePin)
	h.Put(":id/note", c.UpdateNote)
}

func (c *questionController) AddToSession(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.AddQuestionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.AddQuestions(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add questions", res))
}

func (c *questionController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.questionService.Show(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show question", res))
}

func (c *questionController) TogglePin(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.questionService.TogglePin(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success toggle pin", res))
}

func (c *questionController) UpdateNote(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.questionService.UpdateNote(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note", res))
}
