package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"battleships/internal/game"
	"battleships/internal/util"
)

// statusFor maps an error kind to its HTTP status
func statusFor(kind game.Kind) int {
	switch kind {
	case game.KindValidation:
		return http.StatusBadRequest
	case game.KindConflict:
		return http.StatusConflict
	case game.KindUnauthorized:
		return http.StatusUnauthorized
	case game.KindAuthorization, game.KindState:
		return http.StatusForbidden
	case game.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// respondError writes a rule violation as-is and hides anything else behind a generic message
func respondError(c *gin.Context, err error) {
	var ge *game.Error
	if !errors.As(err, &ge) {
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Something went wrong, please try again", err)
		return
	}
	// err may carry a more specific message than the sentinel it wraps
	util.RuleErrorResponse(c, statusFor(ge.Kind), ge.Code, err.Error())
}

func badRequest(c *gin.Context, message string) {
	util.RuleErrorResponse(c, http.StatusBadRequest, "invalid_request", message)
}
