// Package sentinel provides an immutable error type for declaring the
// queue's error taxonomy (AlreadyExists, DoesNotExist, Closed, ...) as
// comparable constants instead of package-level errors.New variables.
package sentinel
