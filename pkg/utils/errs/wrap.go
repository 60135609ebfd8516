package errs

import "fmt"

// Wrap joins a sentinel error with the error that caused it, keeping both
// reachable through errors.Is and errors.As.
func Wrap(base, ext error) error {
	return fmt.Errorf("%w: %w", base, ext)
}

// Wrapf annotates a sentinel error with a formatted message.
func Wrapf(base error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", base, fmt.Sprintf(format, args...))
}
