package apperr

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// Respond is the single boundary adapter between use-case errors and
// the HTTP surface. Every failure becomes {status:"fail", message},
// plus per-field details for validation errors. Internal error chains
// are never exposed.
func Respond(c *gin.Context, err error) {
	status := HTTPStatus(err)

	body := gin.H{"status": "fail"}
	var e *Error
	if errors.As(err, &e) {
		body["message"] = e.Message
		if len(e.Details) > 0 {
			body["details"] = e.Details
		}
	} else {
		body["message"] = "Internal server error"
	}

	c.JSON(status, body)
}
