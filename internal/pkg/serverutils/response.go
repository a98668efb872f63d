package serverutils

import (
	"github.com/google/uuid"
)

type ErrorDetail struct {
	Kind      string            `json:"kind"`
	Fields    map[string]string `json:"fields,omitempty"`
	SessionId *uuid.UUID        `json:"session_id,omitempty"`
	Stage     string            `json:"stage,omitempty"`
}

type Response[T any] struct {
	Success bool         `json:"success"`
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Data    T            `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

func SuccessResponse[T any](message string, data T) *Response[T] {
	return &Response[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) *Response[any] {
	return &Response[any]{
		Success: false,
		Code:    code,
		Message: message,
	}
}
