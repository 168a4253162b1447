package ui

import (
	"errors"
	"net/http"

	"pincheck/adapters/sheets"
	"pincheck/app"
	apperrors "pincheck/internal/errors"
	"pincheck/ports"
)

// statusForError maps the application error taxonomy onto HTTP statuses.
// Upstream sheet problems surface as 502 so callers can tell our bug from
// Google's outage.
func statusForError(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.CodeInvalidService, apperrors.CodeInvalidPincode:
		return http.StatusBadRequest
	case apperrors.CodePincodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeTransport, apperrors.CodeNonTabular,
		apperrors.CodeSourceExhausted, apperrors.CodeSchemaResolution:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// isLoadFailure reports whether the error means the sheet itself could not
// be loaded, as opposed to a problem with the query.
func isLoadFailure(err error) bool {
	switch apperrors.GetCode(err) {
	case apperrors.CodeTransport, apperrors.CodeNonTabular,
		apperrors.CodeSourceExhausted, apperrors.CodeSchemaResolution:
		return true
	}
	return false
}

// loadAttempts pulls the fetch attempt log off a load error, whichever
// wrapper carries it.
func loadAttempts(err error) []ports.FetchAttempt {
	var exhausted *sheets.ExhaustedError
	if errors.As(err, &exhausted) {
		return exhausted.Attempts
	}
	var schemaErr *app.SchemaError
	if errors.As(err, &schemaErr) {
		return schemaErr.Attempts
	}
	return nil
}

// userMessage picks the text shown to a person. Validation and lookup
// errors carry presentable messages already; upstream failures get a
// generic line instead of a candidate-URL dump.
func userMessage(err error) string {
	switch apperrors.GetCode(err) {
	case apperrors.CodeTransport, apperrors.CodeNonTabular, apperrors.CodeSourceExhausted:
		return "The serviceability sheet is unreachable right now. Please try again in a few minutes."
	case apperrors.CodeSchemaResolution:
		return "The serviceability sheet changed shape and could not be read."
	case apperrors.CodeInternalError:
		return "Something went wrong on our side."
	default:
		return err.Error()
	}
}
