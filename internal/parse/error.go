package parse

import "fmt"

// Error reports that a file could not be decoded or parsed. It carries the
// path and the underlying cause so the engine can pin the failure to the
// file whose symbols were requested.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
