package presenter

import (
	"mime"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the body of every non-2xx JSON answer.
type ErrorResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

// Error writes an ErrorResponse tagged with the request id set by the requestid middleware.
func Error(c *fiber.Ctx, status int, message string) error {
	rid, _ := c.Locals("requestid").(string)
	return JSON(c, status, ErrorResponse{Message: message, RequestID: rid})
}

// Attachment sends body as a downloadable file.
func Attachment(c *fiber.Ctx, filename, contentType string, body []byte) error {
	c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Set(fiber.HeaderContentType, contentType)
	return c.Status(fiber.StatusOK).Send(body)
}
