package dto

import "net/http"

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation and input error codes
const (
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
)

// Authorization error codes
const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeBusinessRule      = "ERR_BUSINESS_RULE"
	ErrCodeInvalidQuantity   = "ERR_INVALID_QUANTITY"
	ErrCodeInvalidTransfer   = "ERR_INVALID_TRANSFER"
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
	ErrCodeIllegalTransition = "ERR_ILLEGAL_TRANSITION"
	ErrCodeInvalidStatus     = "ERR_INVALID_STATUS"
	ErrCodeEmptyOrder        = "ERR_EMPTY_ORDER"
	ErrCodeOrderLocked       = "ERR_ORDER_LOCKED"
	ErrCodeDuplicateLineItem = "ERR_DUPLICATE_LINE_ITEM"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule violations -> 422 Unprocessable Entity
	ErrCodeBusinessRule:      http.StatusUnprocessableEntity,
	ErrCodeInvalidQuantity:   http.StatusUnprocessableEntity,
	ErrCodeInvalidTransfer:   http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,
	ErrCodeIllegalTransition: http.StatusUnprocessableEntity,
	ErrCodeInvalidStatus:     http.StatusUnprocessableEntity,
	ErrCodeEmptyOrder:        http.StatusUnprocessableEntity,
	ErrCodeOrderLocked:       http.StatusUnprocessableEntity,
	ErrCodeDuplicateLineItem: http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code,
// defaulting to 500 for unrecognized codes
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to wire error codes
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"FORBIDDEN":            ErrCodeForbidden,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"INVALID_STATE":        ErrCodeBusinessRule,
	"INVALID_QUANTITY":     ErrCodeInvalidQuantity,
	"INVALID_TRANSFER":     ErrCodeInvalidTransfer,
	"INSUFFICIENT_STOCK":   ErrCodeInsufficientStock,
	"ILLEGAL_TRANSITION":   ErrCodeIllegalTransition,
	"INVALID_STATUS":       ErrCodeInvalidStatus,
	"EMPTY_ORDER":          ErrCodeEmptyOrder,
	"ORDER_LOCKED":         ErrCodeOrderLocked,
	"DUPLICATE_LINE_ITEM":  ErrCodeDuplicateLineItem,
	"INTERNAL_ERROR":       ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the wire format.
// Unrecognized codes pass through unchanged.
func NormalizeErrorCode(code string) string {
	if wireCode, ok := domainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
