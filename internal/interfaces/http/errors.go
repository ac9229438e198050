package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/domain"
)

var validate = validator.New()

// statusFor maps a domain error code to the HTTP status.
func statusFor(code string) int {
	switch code {
	case "NOT_FOUND", "PRODUCT_NOT_FOUND", "SESSION_NOT_FOUND", "NO_WASTE_DATA", "NO_TAX_DATA", "NO_SALES_DATA":
		return fiber.StatusNotFound
	case "VALIDATION", "INVALID_QUANTITY", "INVALID_REASON", "PHOTO_REQUIRED",
		"PHOTO_INVALID", "INVALID_FORMAT", "INVALID_ACTION", "INVALID_BODY", "MISSING_ID":
		return fiber.StatusBadRequest
	case "INSUFFICIENT_STOCK", "SESSION_ALREADY_OPEN", "SESSION_CLOSED",
		"BARCODE_EXISTS", "CATEGORY_IN_USE", "DUPLICATE", "EMAIL_EXISTS":
		return fiber.StatusConflict
	case "UNAUTHORIZED", "INVALID_CREDENTIALS", "MISSING_TOKEN", "INVALID_TOKEN":
		return fiber.StatusUnauthorized
	case "FORBIDDEN":
		return fiber.StatusForbidden
	case "RATE_LIMITED":
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError translates any error into the {code, message} envelope.
func respondError(c *fiber.Ctx, err error) error {
	code := domain.CodeOf(err)
	return c.Status(statusFor(code)).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// errMissingID flags a required identifier parameter that was not sent.
func errMissingID(name string) error {
	return domain.NewError("MISSING_ID", name+" is required")
}

// parseBody decodes and validates a JSON request body.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewError("INVALID_BODY", "invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return domain.NewError("VALIDATION", err.Error())
	}
	return nil
}
