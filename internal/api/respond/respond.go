// Package respond maps service results onto HTTP responses so every
// handler speaks the same envelope.
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gallery-app/internal/services"
)

// Result writes a lifecycle outcome. Successes are 200 with the
// confirmation message; failures carry the taxonomy code and a status
// derived from it. Nothing here ever panics past the handler.
func Result(c *gin.Context, res services.Result) {
	c.JSON(statusFor(res), res)
}

// Created writes a lifecycle outcome, using 201 for success.
func Created(c *gin.Context, res services.Result) {
	if res.OK {
		c.JSON(http.StatusCreated, res)
		return
	}
	c.JSON(statusFor(res), res)
}

func statusFor(res services.Result) int {
	if res.OK {
		return http.StatusOK
	}
	switch res.Code {
	case services.CodeMissingField, services.CodeInvalidDate, services.CodeInvalidNumeric:
		return http.StatusBadRequest
	case services.CodeNotFound, services.CodeArtworkNotFound:
		return http.StatusNotFound
	case services.CodeDuplicateTransaction, services.CodeDuplicateRecord:
		return http.StatusConflict
	case services.CodeStoreError:
		return http.StatusInternalServerError
	default:
		// state errors: not available, not returnable, immutable, finished
		return http.StatusUnprocessableEntity
	}
}
