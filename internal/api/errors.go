package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/spinlab/internal/errs"
	"github.com/abhisek/spinlab/internal/onboarding"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   string   `json:"error"`
	Kind    string   `json:"kind"`
	Missing []string `json:"missing,omitempty"`
}

// statusFor maps a domain error to an HTTP status and a short kind.
func statusFor(err error) (int, string) {
	switch {
	case errs.IsNotFound(err):
		return http.StatusNotFound, "not_found"
	case errs.IsPrerequisiteNotMet(err):
		return http.StatusConflict, "prerequisite_not_met"
	case errs.IsInvalidArgument(err):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, onboarding.ErrCompleted),
		errors.Is(err, onboarding.ErrNoQuiz),
		errors.Is(err, onboarding.ErrQuizFinished):
		return http.StatusConflict, "conflict"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (h *handlers) fail(c *gin.Context, err error) {
	status, kind := statusFor(err)
	body := errorBody{Error: err.Error(), Kind: kind}
	var pre *errs.PrerequisiteNotMetError
	if errors.As(err, &pre) {
		body.Missing = pre.Missing
	}
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", "path", c.FullPath(), "user", c.Param("user"), "error", err)
		body.Error = "internal error"
	}
	c.AbortWithStatusJSON(status, body)
}
