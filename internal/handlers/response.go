package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respond writes the {status, message, data} envelope every endpoint uses.
func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// validationErrorMap flattens validator errors into a field -> reason map.
func validationErrorMap(err error) map[string]string {
	errorMessages := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	} else {
		errorMessages["error"] = err.Error()
	}
	return errorMessages
}

// checkEmptyFields rejects requests where a provided field is present but
// empty. Returns the name of the first offending field, or "".
func checkEmptyFields(body map[string]interface{}) string {
	for field, value := range body {
		if s, ok := value.(string); ok && s == "" {
			return field
		}
		if value == nil {
			return field
		}
	}
	return ""
}
