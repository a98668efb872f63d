package serverutils

import (
	"errors"

	"interview-prep-be/internal/pkg/apperror"
	"interview-prep-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// StatusOf maps an error kind to its HTTP status.
func StatusOf(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindForbidden:
		return fiber.StatusForbidden
	case apperror.KindPartialCreation:
		return fiber.StatusConflict
	case apperror.KindProvider:
		return fiber.StatusBadGateway
	case apperror.KindRateLimited:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

func ErrorHandlerMiddleware(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		kind := apperror.KindOf(err)
		status := StatusOf(kind)
		res := ErrorResponse(status, err.Error())
		res.Error = &ErrorDetail{Kind: string(kind)}

		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			res.Error.Fields = appErr.Fields
			if appErr.Message != "" && kind != apperror.KindPersistence {
				res.Message = appErr.Message
			}
		}

		var partial *apperror.PartialCreationError
		if errors.As(err, &partial) {
			id := partial.SessionId
			res.Error.SessionId = &id
			res.Error.Stage = partial.Stage
		}

		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"error":  err,
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"kind":   string(kind),
			})
			if kind == apperror.KindPersistence || kind == apperror.KindUnknown {
				res.Message = "internal server error"
			}
		}

		return ctx.Status(status).JSON(res)
	}
}
