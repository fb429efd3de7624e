package utils

import (
	"github.com/gofiber/fiber/v2"
)

// Error codes used across the API.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeAuth         = "AUTHENTICATION_ERROR"
	CodeForbidden    = "AUTHORIZATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
	CodeRateLimited  = "RATE_LIMIT_EXCEEDED"
)

// Meta carries pagination info alongside list responses.
type Meta struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasNext bool  `json:"hasNext"`
}

// NewMeta computes hasNext = page*limit < total.
func NewMeta(page, limit int, total int64) Meta {
	return Meta{
		Page:    page,
		Limit:   limit,
		Total:   total,
		HasNext: int64(page*limit) < total,
	}
}

type errorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *errorBody  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// OK writes a success envelope.
func OK(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(envelope{Success: true, Data: data})
}

// OKWithMeta writes a success envelope with pagination meta.
func OKWithMeta(c *fiber.Ctx, data interface{}, meta Meta) error {
	return c.Status(fiber.StatusOK).JSON(envelope{Success: true, Data: data, Meta: &meta})
}

// Fail writes an error envelope. At most one details value is used.
func Fail(c *fiber.Ctx, status int, code, message string, details ...interface{}) error {
	body := errorBody{Code: code, Message: message}
	if len(details) > 0 {
		body.Details = details[0]
	}
	return c.Status(status).JSON(envelope{Success: false, Error: &body})
}
