// Package errors provides the coded errors the console answers with when a
// request cannot be served.
//
//nolint:lll
package errors

import (
	"fmt"
	"net/http"
)

// Error codes in the 40001-49999 range are the caller's fault, codes in the
// 50001-59999 range are the console's fault. There is no correlation between
// Code and HTTP status. Never reuse a retired code.
var (
	ErrUnauthorized      = Error{Code: 40001, HTTPstatus: http.StatusUnauthorized, Err: fmt.Errorf("authentication required"), LogLevel: "info"}
	ErrForbidden         = Error{Code: 40003, HTTPstatus: http.StatusForbidden, Err: fmt.Errorf("session is not allowed to access this resource"), LogLevel: "info"}
	ErrMalformedBody     = Error{Code: 40004, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid form body")}
	ErrInvalidFormData   = Error{Code: 40005, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid form data provided")}
	ErrMalformedURLParam = Error{Code: 40010, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid URL parameter")}
	ErrInvalidTab        = Error{Code: 40011, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("unknown dashboard tab")}
	ErrInvalidModal      = Error{Code: 40012, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("unknown detail view")}
	ErrRecordNotFound    = Error{Code: 40401, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("record not found in the current listing")}
	ErrActionConflict    = Error{Code: 40901, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("another action is already in progress"), LogLevel: "info"}

	ErrBackendUnavailable         = Error{Code: 50001, HTTPstatus: http.StatusBadGateway, Err: fmt.Errorf("server error: platform backend unavailable"), LogLevel: "error"}
	ErrGenericInternalServerError = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("server error: operation failed"), LogLevel: "error"}
	ErrStateStorage               = Error{Code: 50006, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("server error: state storage failed"), LogLevel: "error"}
	ErrTemplateRendering          = Error{Code: 50009, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("server error: page rendering failed"), LogLevel: "error"}
)
