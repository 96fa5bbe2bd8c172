package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serviceconnect/api/internal/api/dto"
	"github.com/serviceconnect/api/internal/api/response"
	"github.com/serviceconnect/api/internal/service"
)

// MessagesHandler manages direct messages.
type MessagesHandler struct {
	messages *service.MessageService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(messages *service.MessageService) *MessagesHandler {
	return &MessagesHandler{messages: messages}
}

// List handles GET /api/messages.
func (h *MessagesHandler) List(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	limit, offset := parsePage(c)
	messages, err := h.messages.List(c.UserContext(), caller, service.MessageListFilter{
		WithID:    optionalQuery(c, "with"),
		ProjectID: optionalQuery(c, "projectId"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return err
	}
	return response.Success(c, mapSlice(messages, messageResponse))
}

// Send handles POST /api/messages.
func (h *MessagesHandler) Send(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req dto.SendMessageRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	msg, err := h.messages.Send(c.UserContext(), caller, service.SendMessageInput{
		RecipientID: req.RecipientID,
		ProjectID:   req.ProjectID,
		Content:     req.Content,
	})
	if err != nil {
		return err
	}
	return response.Created(c, messageResponse(msg))
}

// MarkRead handles PUT /api/messages/:id/read.
func (h *MessagesHandler) MarkRead(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "Message")
	if err != nil {
		return err
	}
	msg, err := h.messages.MarkRead(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return response.Success(c, messageResponse(msg))
}
