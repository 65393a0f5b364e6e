package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies tool failures. The string value is what MCP callers see.
type ErrorKind string

const (
	KindInvalidArgument ErrorKind = "InvalidArgument"
	KindAttachment      ErrorKind = "AttachmentError"
	KindUpstream        ErrorKind = "UpstreamError"
	KindNotFound        ErrorKind = "NotFound"
)

type Error struct {
	Kind    ErrorKind
	Op      string // tool or vendor operation, e.g. "chat_with_vision"
	Status  int    // vendor HTTP status, 0 when no response was received
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if msg == "" {
		msg = "error"
	}
	if e.Op != "" {
		return e.Op + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

func InvalidArgument(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func AttachmentError(path string, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:    KindAttachment,
		Message: fmt.Sprintf("%s: %s", path, fmt.Sprintf(format, args...)),
		Cause:   cause,
	}
}

func UpstreamError(op string, status int, message string, cause error) *Error {
	return &Error{Kind: KindUpstream, Op: op, Status: status, Message: message, Cause: cause}
}

func NotFound(op, responseID string, cause error) *Error {
	return &Error{
		Kind:    KindNotFound,
		Op:      op,
		Status:  404,
		Message: fmt.Sprintf("response %s not found or expired", responseID),
		Cause:   cause,
	}
}

// KindOf returns the kind of the first *Error in err's chain. Errors outside
// the taxonomy are reported as upstream failures.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUpstream
}

func IsInvalidArgument(err error) bool { return isKind(err, KindInvalidArgument) }
func IsAttachment(err error) bool      { return isKind(err, KindAttachment) }
func IsUpstream(err error) bool        { return isKind(err, KindUpstream) }
func IsNotFound(err error) bool        { return isKind(err, KindNotFound) }

func isKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
