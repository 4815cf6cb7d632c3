// Package errors provides structured application errors with HTTP mapping.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"

	// Request errors
	CodeInvalidFilter    Code = "INVALID_FILTER"
	CodeInvalidOrderBy   Code = "INVALID_ORDER_BY"
	CodeInvalidTheme     Code = "INVALID_THEME"
	CodeInvalidColumn    Code = "INVALID_COLUMN"
	CodeInvalidArgument  Code = "INVALID_ARGUMENT"
	CodeMethodNotAllowed Code = "METHOD_NOT_ALLOWED"

	// Lookup errors
	CodeNotFound       Code = "NOT_FOUND"
	CodeSessionExpired Code = "SESSION_EXPIRED"

	// Infrastructure errors
	CodeExportFailed       Code = "EXPORT_FAILED"
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidFilter,
		CodeInvalidOrderBy,
		CodeInvalidTheme,
		CodeInvalidColumn,
		CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case CodeNotFound:
		return http.StatusNotFound
	case CodeSessionExpired:
		return http.StatusConflict
	case CodeStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
