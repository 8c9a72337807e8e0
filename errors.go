package main

import "fmt"

// WrapOperationError wraps an error with a consistent "failed to {operation}: %w" format.
//
// Example:
//   if err := c.Save(out); err != nil {
//       return WrapOperationError("save deck", err)
//   }
func WrapOperationError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// WrapOperationErrorf wraps an error with additional context using format string.
//
// Example:
//   if err != nil {
//       return WrapOperationErrorf("read plan %s", err, path)
//   }
func WrapOperationErrorf(format string, err error, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("failed to %s: %w", msg, err)
}
