package ecode

import "net/http"

const (
	OK = 0

	RequestErr = -200
	ParamErr   = -201

	NothingFound     = -304
	Conflict         = -309
	MethodNotAllowed = -305

	ServerErr          = -500
	UpstreamErr        = -502
	ServiceUnavailable = -503
	Deadline           = -504
)

var messages = map[int]string{
	OK:                 "ok",
	RequestErr:         "Invalid request",
	ParamErr:           "Invalid parameters",
	NothingFound:       "Resource not found",
	Conflict:           "Resource conflict",
	MethodNotAllowed:   "Method not allowed",
	ServerErr:          "Internal server error",
	UpstreamErr:        "Upstream service error",
	ServiceUnavailable: "Service unavailable",
	Deadline:           "Deadline exceeded",
}

// Text returns the default message for code.
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[ServerErr]
}

// ToHTTPStatus maps a business code onto an HTTP status.
func ToHTTPStatus(code int) int {
	switch code {
	case OK:
		return http.StatusOK
	case RequestErr, ParamErr:
		return http.StatusBadRequest
	case NothingFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case MethodNotAllowed:
		return http.StatusMethodNotAllowed
	case UpstreamErr:
		return http.StatusBadGateway
	case ServiceUnavailable:
		return http.StatusServiceUnavailable
	case Deadline:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
