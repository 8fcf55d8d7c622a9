package utils

import (
	"encoding/json"
	"time"

	"table-reservation/types"

	"github.com/gofiber/fiber/v2"
)

// Request body fields that must never reach the request log.
var sensitiveFields = []string{"password", "phone_number", "guest_token"}

func sanitizeRequestBody(c *fiber.Ctx) string {
	body := c.Body()
	if len(body) == 0 {
		return ""
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		// Not JSON, keep a copy as-is.
		return string(append([]byte(nil), body...))
	}

	for _, field := range sensitiveFields {
		if _, ok := parsed[field]; ok {
			parsed[field] = "[REDACTED]"
		}
	}

	sanitized, err := json.Marshal(parsed)
	if err != nil {
		return ""
	}
	return string(sanitized)
}

// CreateSanitizedLogEntry captures the request/response pair for the async
// request log, with credentials and raw phone numbers redacted. All data is
// deep-copied because fiber reuses its buffers.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		ClientIP:        c.IP(),
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}
