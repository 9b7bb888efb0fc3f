package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studybuds/studybuds-backend/internal/delivery/http/middleware"
	"github.com/studybuds/studybuds-backend/internal/domain"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error         string   `json:"error"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// writeError maps domain errors to HTTP status codes. Unknown errors become
// 500 with a generic message; the cause is kept on the context for the
// request logger.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var incomplete *domain.ProfileIncompleteError
	if errors.As(err, &incomplete) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:         domain.ErrProfileIncomplete.Error(),
			MissingFields: incomplete.MissingFields,
		})
		return
	}

	status, message := http.StatusInternalServerError, "internal server error"
	switch {
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrMatchNotFound),
		errors.Is(err, domain.ErrEventNotFound):
		status, message = http.StatusNotFound, rootMessage(err)
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrContentEmpty),
		errors.Is(err, domain.ErrCannotMatchSelf):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrActiveMatchExists),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrMatchNotAccepted):
		status, message = http.StatusConflict, rootMessage(err)
	case errors.Is(err, domain.ErrNotMatchParticipant),
		errors.Is(err, domain.ErrForbidden):
		status, message = http.StatusForbidden, rootMessage(err)
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidToken):
		status, message = http.StatusUnauthorized, rootMessage(err)
	case errors.Is(err, domain.ErrMatchingUnavailable):
		status, message = http.StatusServiceUnavailable, domain.ErrMatchingUnavailable.Error()
	}

	c.JSON(status, ErrorResponse{Error: message})
}

// rootMessage strips usecase wrapping so internals do not leak to clients.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
}

// caller returns the authenticated identity or writes 401.
func caller(c *gin.Context) (domain.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return domain.Identity{}, false
	}
	return identity, true
}
