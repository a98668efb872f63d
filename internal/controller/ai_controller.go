package controller

import (
	"interview-prep-be/internal/dto"
	"interview-prep-be/internal/pkg/serverutils"
	"interview-prep-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAiController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	GenerateQuestions(ctx *fiber.Ctx) error
	GenerateExplanation(ctx *fiber.Ctx) error
	GenerateForSession(ctx *fiber.Ctx) error
}

type aiController struct {
	generationService service.IGenerationService
}

func NewAiController(generationService service.IGenerationService) IAiController {
	return &aiController{
		generationService: generationService,
	}
}

func (c *aiController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/ai/v1")
	h.Use(auth)
	h.Post("generate-questions", c.GenerateQuestions)
	h.Post("generate-explanation", c.GenerateExplanation)
	h.Post("session/:id/generate", c.GenerateForSession)
}

func (c *aiController) GenerateQuestions(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateQuestionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generationService.GenerateQuestions(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate questions", res))
}

func (c *aiController) GenerateExplanation(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateExplanationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generationService.GenerateExplanation(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate explanation", res))
}

func (c *aiController) GenerateForSession(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := parseIdParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.GenerateForSessionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.SessionId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generationService.GenerateForSession(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate questions for session", res))
}
