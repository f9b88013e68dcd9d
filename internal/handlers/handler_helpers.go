package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fbangoura/bakery_ledger_app/internal/apperrors"
)

// ErrorResponse is the generic error body returned by every handler.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusForError maps service sentinel errors to HTTP status codes.
// Unknown errors fall through to 500; the caller hides their message.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidTransfer),
		errors.Is(err, apperrors.ErrInvalidPrincipal):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrInvalidState),
		errors.Is(err, apperrors.ErrAlreadyProcessed),
		errors.Is(err, apperrors.ErrHasPayments),
		errors.Is(err, apperrors.ErrAlreadyPaid),
		errors.Is(err, apperrors.ErrNotApproved):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrCreditLimitExceeded),
		errors.Is(err, apperrors.ErrAmountExceedsRemaining),
		errors.Is(err, apperrors.ErrInsufficientStock):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// respondError writes the mapped error response. Internal errors are replaced
// with a generic message so database details never leak to clients.
func respondError(c *gin.Context, err error, fallback string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, ErrorResponse{Error: fallback})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

const dateLayout = "2006-01-02"

// parseDateRange reads the from/to query params. Missing values default to
// the last 30 days ending today.
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid 'from' date %q, expected YYYY-MM-DD", raw)
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid 'to' date %q, expected YYYY-MM-DD", raw)
		}
		// Include the whole closing day.
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}
