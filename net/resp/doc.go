// Package resp writes JSON success and failure responses.
//
// Successful responses carry the payload as the body:
//
//	resp.Success(w, task)
//	resp.WithStatusCode(w, http.StatusCreated, task)
//
// Failures carry a canned message under "error", the business code, and
// optional per-field details:
//
//	{"error": "Task title is required", "code": -200}
//
//	resp.Fail(w, resp.BadRequest("Task title is required"))
//	resp.Fail(w, resp.InternalServer("Failed to fetch tasks"))
package resp
