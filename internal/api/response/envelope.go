// Package response defines the single JSON shape every API outcome is written in.
package response

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the uniform API body: {"success": bool, "message"?: string, "data"?: T}.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// NewSuccess wraps data in a success envelope.
func NewSuccess(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// NewError wraps message in an error envelope.
func NewError(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// Success writes data with status 200.
func Success(c *fiber.Ctx, data any) error {
	return c.Status(http.StatusOK).JSON(NewSuccess(data))
}

// Created writes data with status 201.
func Created(c *fiber.Ctx, data any) error {
	return c.Status(http.StatusCreated).JSON(NewSuccess(data))
}

// Message writes a success envelope that carries only a message.
func Message(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusOK).JSON(Envelope{Success: true, Message: message})
}

// Error writes an error envelope with the given status.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(NewError(message))
}
