package luxem

import (
	"errors"
	"fmt"
)

// ErrCallbackAbort is returned (wrapped) by Reader.Feed when an event
// callback returns false, so that hosts can distinguish "the parser
// rejected the input" from "application code rejected the input" using
// errors.Is.
var ErrCallbackAbort = errors.New("luxem: callback aborted parsing")

// ErrSinkNotConfigured is returned by Writer methods when no sink has
// been set via SetCallbackSink, SetWriterSink or SetBufferSink.
var ErrSinkNotConfigured = errors.New("luxem: write sink not configured")

// ErrEmptyStack is returned (wrapped in a WriteError) when a writer
// _end call is made with no matching container open. The Reader
// reports input that closes past the implicit root as a ParseError
// that does not wrap this sentinel.
var ErrEmptyStack = errors.New("luxem: empty stack")

// ParseError reports a grammar error encountered by Reader.Feed,
// together with the total byte offset (Reader.Position) at which
// parsing had arrived when the error latched. Err, if set, is a
// sentinel (e.g. ErrCallbackAbort) that callers can recover with
// errors.Is/errors.As.
type ParseError struct {
	Offset int64
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s [offset %d]", e.Msg, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WriteError reports a grammar or sink error encountered by a Writer
// method, wrapping a sentinel so callers can use errors.Is against
// ErrSinkNotConfigured, ErrEmptyStack or ErrInvalidWriterState.
type WriteError struct {
	Err error
	Msg string
}

func (e *WriteError) Error() string {
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// ErrInvalidWriterState is the sentinel wrapped by WriteError when an
// event call is illegal for the writer's current stack top.
var ErrInvalidWriterState = errors.New("luxem: invalid writer state")

func invalidStateError(allowed string) error {
	return &WriteError{
		Err: ErrInvalidWriterState,
		Msg: fmt.Sprintf("invalid state; state must be %s", allowed),
	}
}
