package extractor

import (
	"errors"
	"fmt"
)

// ErrEmptyFile marks a zero-byte file. It is a warning, not a failure:
// there is nothing to import, so the file contributes an empty result.
var ErrEmptyFile = errors.New("file is empty, nothing to scan")

// AccessError reports a file that could not be stat'd or read
type AccessError struct {
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("error accessing file %s: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// CapacityError reports a file rejected before reading because it exceeds
// the size ceiling
type CapacityError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("file %s is too large (%d bytes, limit %d bytes)", e.Path, e.Size, e.Limit)
}

// EncodingError reports content that none of the attempted encodings could decode
type EncodingError struct {
	Path string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("could not decode %s with any supported encoding", e.Path)
}

// SyntaxError reports content that decoded but did not parse as Python
type SyntaxError struct {
	Path string
	Line uint
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in %s at line %d: %s", e.Path, e.Line, e.Msg)
}
