package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorCase pairs a sentinel error with the status and message it answers with.
// Handlers declare one table per resource and hand it to RespondWithMappedError.
type ErrorCase struct {
	Err     error
	Status  int
	Message string
}

// RespondWithMappedError answers with the first case matching err, in table
// order, or with the fallback when nothing matches. A nil err answers 200 with
// no body.
func RespondWithMappedError(c *gin.Context, err error, cases []ErrorCase, fallbackStatus int, fallbackMessage string) {
	if err == nil {
		c.Status(http.StatusOK)
		return
	}

	for _, mapped := range cases {
		if mapped.Err != nil && errors.Is(err, mapped.Err) {
			c.JSON(mapped.Status, NewErrorResponse(c, mapped.Message))
			return
		}
	}

	c.JSON(fallbackStatus, NewErrorResponse(c, fallbackMessage))
}
