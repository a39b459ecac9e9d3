package ecode

import (
	"fmt"
)

const (
	emptyMsg    = "empty"
	requiredMsg = "is required"
	failedMsg   = "Failed to"
	notExistMsg = "not found"
)

// FieldIsRequired returns field required message
func FieldIsRequired(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], requiredMsg)
	}
	return emptyMsg
}

// Failed returns the canned failure message for an action, e.g.
// Failed("fetch tasks") is "Failed to fetch tasks".
func Failed(action ...string) string {
	if len(action) > 0 {
		return fmt.Sprintf("%s %s", failedMsg, action[0])
	}
	return failedMsg
}

// NotExist returns not exist message
func NotExist(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], notExistMsg)
	}
	return notExistMsg
}
