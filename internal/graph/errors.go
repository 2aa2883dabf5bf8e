package graph

import "errors"

// ErrOverflow is returned when an element-wise operation leaves the int64 range.
var ErrOverflow = errors.New("integer overflow")

// invalidGraphError reports a structurally invalid graph.
type invalidGraphError struct{ msg string }

func (e invalidGraphError) Error() string { return "invalid graph: " + e.msg }

// IsInvalidGraph reports whether err indicates a structurally invalid graph.
func IsInvalidGraph(err error) bool {
	var e invalidGraphError
	return errors.As(err, &e)
}

// formatError reports an artifact that cannot be decoded: wrong format name,
// unsupported version or checksum mismatch.
type formatError struct{ msg string }

func (e formatError) Error() string { return "artifact format: " + e.msg }

// IsFormatError reports whether err indicates an unreadable artifact envelope.
func IsFormatError(err error) bool {
	var e formatError
	return errors.As(err, &e)
}
