// Package errs defines the error kinds surfaced by a frame analysis run.
//
// Every failure that aborts a run is an [*Error] carrying a [Kind] and the
// offending path. Callers classify errors with [KindOf] or with errors.Is
// against the sentinel values (ErrInvalidDirectory, ErrImageDecode, ...).
package errs

import (
	"errors"
	"fmt"
)

// Kind categorizes a run failure.
type Kind string

const (
	KindInvalidDirectory Kind = "invalid_directory"
	KindInvalidFileName  Kind = "invalid_file_name"
	KindFrameNumberParse Kind = "frame_number_parse"
	KindImageDecode      Kind = "image_decode"
	KindOutputWrite      Kind = "output_write"
	KindConfig           Kind = "config"
)

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrInvalidDirectory = &Error{Kind: KindInvalidDirectory}
	ErrInvalidFileName  = &Error{Kind: KindInvalidFileName}
	ErrFrameNumberParse = &Error{Kind: KindFrameNumberParse}
	ErrImageDecode      = &Error{Kind: KindImageDecode}
	ErrOutputWrite      = &Error{Kind: KindOutputWrite}
	ErrConfig           = &Error{Kind: KindConfig}
)

// Error is a classified failure naming the path it concerns.
type Error struct {
	Kind    Kind
	Path    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s '%s'", msg, e.Path)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates an error of the given kind.
func New(kind Kind, path, message string, cause error) *Error {
	return &Error{Kind: kind, Path: path, Message: message, Cause: cause}
}

// InvalidDirectory reports an input path that is not an existing directory.
func InvalidDirectory(path string, cause error) *Error {
	return New(KindInvalidDirectory, path, "invalid data directory", cause)
}

// InvalidFileName reports a name too short to hold a frame-number field.
func InvalidFileName(path string) *Error {
	return New(KindInvalidFileName, path, "invalid filename", nil)
}

// FrameNumberParse reports a frame-number field that is not a decimal integer.
func FrameNumberParse(path string, cause error) *Error {
	return New(KindFrameNumberParse, path, "unable to parse frame number from file", cause)
}

// ImageDecode reports an unreadable image or one with empty dimensions.
func ImageDecode(path string, cause error) *Error {
	return New(KindImageDecode, path, "error while opening image", cause)
}

// OutputWrite reports a result destination that could not be written.
func OutputWrite(path string, cause error) *Error {
	return New(KindOutputWrite, path, "unable to open result file", cause)
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
