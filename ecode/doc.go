// Package ecode defines the numeric business codes returned alongside HTTP
// errors and small helpers for building field-level messages.
//
// Code ranges:
//   - 0: success
//   - -200 to -299: request validation errors
//   - -300 to -399: resource errors
//   - -500+: server and upstream errors
//
// Codes map onto HTTP statuses with ToHTTPStatus:
//
//	status := ecode.ToHTTPStatus(ecode.NothingFound) // 404
package ecode
