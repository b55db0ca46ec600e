package proxy

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/onrampdev/onramp/pkg/params"
)

// handleValidateParameters runs validation without forwarding anything,
// letting clients preview how their parameters will be clamped.
func (p *Proxy) handleValidateParameters(c *fiber.Ctx) error {
	var body map[string]any
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"valid": false,
				"error": "no JSON data provided",
			})
		}
	}
	if body == nil {
		body = map[string]any{}
	}

	validated, err := params.Validate(body)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"valid": false,
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"valid":      true,
		"parameters": validated,
		"message":    "Parameters validated successfully",
	})
}

// handleDefaultParameters returns the default parameter set together with
// the documentation table for each clamped parameter.
func (p *Proxy) handleDefaultParameters(c *fiber.Ctx) error {
	info := make(map[string]params.Info)
	for _, param := range params.Describe() {
		info[param.Name] = param
	}

	return c.JSON(fiber.Map{
		"defaults":       params.Defaults(),
		"parameter_info": info,
	})
}
