// Package repository defines error types that are reused across multiple
// repositories.  Repositories never build client-facing messages; they
// return these sentinels and let the handlers or the transaction workflow
// phrase the error for the caller.
package repository

import "errors"

// ErrNotFound is returned when a lookup, update or delete addresses a row
// that does not exist.  Handlers translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")
