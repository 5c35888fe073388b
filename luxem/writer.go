package luxem

import (
	"fmt"
	"io"
)

// writerState is a bitmask so CheckState-style guards can test
// membership in a set of allowed states with a single comparison,
// mirroring the source's enum luxem_state_t.
type writerState uint8

const (
	stateObject writerState = 1 << iota
	stateArray
	stateValuePhrase
	stateValue
)

// Writer is a stack-based, grammar-enforcing event sink for luxem
// documents: each event method (ObjectBegin, Key, Primitive, ...) is
// legal only for certain states of the writer's stack top, and
// performs whatever indentation, delimiter and stack bookkeeping the
// grammar requires before routing the serialized bytes to the
// configured sink.
//
// A Writer is single-threaded and, like Reader, should be discarded
// once a method returns an error.
type Writer struct {
	stack       []writerState
	indentation int
	err         error

	pretty         bool
	prettyIndenter byte
	indentMultiple int

	sink func([]byte) error
	buf  *chunkBuffer
}

// NewWriter returns a Writer whose stack represents the implicit root
// array: top-level values are written comma-separated with no
// enclosing brackets and no indentation.
func NewWriter() *Writer {
	return &Writer{
		stack:          []writerState{stateArray},
		prettyIndenter: '\t',
		indentMultiple: 1,
	}
}

// SetPretty enables indented, newline-separated output using indenter
// repeated multiple times per nesting level.
func (w *Writer) SetPretty(indenter byte, multiple int) {
	w.pretty = true
	w.prettyIndenter = indenter
	w.indentMultiple = multiple
}

// SetCallbackSink routes every write through fn.
func (w *Writer) SetCallbackSink(fn func([]byte) error) {
	w.sink = fn
	w.buf = nil
}

// SetWriterSink routes every write to dst.
func (w *Writer) SetWriterSink(dst io.Writer) {
	w.sink = func(p []byte) error {
		_, err := dst.Write(p)
		return err
	}
	w.buf = nil
}

// SetBufferSink routes every write into an internal chunked buffer
// whose contents can later be retrieved with Render.
func (w *Writer) SetBufferSink() {
	w.buf = &chunkBuffer{}
	w.sink = func(p []byte) error {
		w.buf.write(p)
		return nil
	}
}

// Render returns the bytes accumulated by the buffer sink. It fails
// if SetBufferSink was never called.
func (w *Writer) Render() ([]byte, error) {
	if w.buf == nil {
		return nil, ErrSinkNotConfigured
	}
	return w.buf.Render(), nil
}

func (w *Writer) write(p []byte) error {
	if w.sink == nil {
		return &WriteError{Err: ErrSinkNotConfigured, Msg: "no write sink configured"}
	}
	if err := w.sink(p); err != nil {
		return &WriteError{Err: err, Msg: fmt.Sprintf("write sink failed: %s", err)}
	}
	return nil
}

func (w *Writer) writeString(s string) error {
	return w.write([]byte(s))
}

func (w *Writer) writeIndent() error {
	if !w.pretty {
		return nil
	}
	count := w.indentMultiple * w.indentation
	if count == 0 {
		return nil
	}
	indent := make([]byte, count)
	for i := range indent {
		indent[i] = w.prettyIndenter
	}
	return w.write(indent)
}

func (w *Writer) top() writerState {
	return w.stack[len(w.stack)-1]
}

func (w *Writer) is(mask writerState) bool {
	return w.top()&mask != 0
}

func (w *Writer) push(s writerState) {
	w.stack = append(w.stack, s)
	if s == stateObject || s == stateArray {
		w.indentation++
	}
}

// pop removes the stack top, refusing to pop the last remaining
// element (the implicit root) so w.stack never becomes empty. Popping
// past root means the caller closed more objects/arrays than it
// opened.
func (w *Writer) pop() error {
	if len(w.stack) <= 1 {
		return &WriteError{Err: ErrEmptyStack, Msg: "empty stack; did you close too many objects or arrays?"}
	}
	top := w.stack[len(w.stack)-1]
	if top == stateObject || top == stateArray {
		w.indentation--
	}
	w.stack = w.stack[:len(w.stack)-1]
	return nil
}

func (w *Writer) checkState(mask writerState, allowed string) error {
	if !w.is(mask) {
		return invalidStateError(allowed)
	}
	return nil
}

// Err returns the error that latched the Writer, or nil if none has.
func (w *Writer) Err() error {
	return w.err
}

// call runs fn only if the Writer has not already latched an error,
// and latches whatever error fn returns, mirroring the source's
// CHECK() guard prefixed on every writer operation: once any call
// fails, every subsequent call short-circuits to the same error.
func (w *Writer) call(fn func() error) error {
	if w.err != nil {
		return w.err
	}
	if err := fn(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// ObjectBegin opens an object. Legal wherever a value is expected: as
// an object's value (after Key), as a typed value (after Type), or
// directly as an array element.
func (w *Writer) ObjectBegin() error {
	return w.call(w.objectBegin)
}

func (w *Writer) objectBegin() error {
	if err := w.checkState(stateValuePhrase|stateValue|stateArray, "valuePhrase, value, or array"); err != nil {
		return err
	}
	if w.is(stateValuePhrase | stateValue) {
		if err := w.pop(); err != nil {
			return err
		}
	} else if err := w.writeIndent(); err != nil {
		return err
	}
	if err := w.writeString("{"); err != nil {
		return err
	}
	if w.pretty {
		if err := w.writeString("\n"); err != nil {
			return err
		}
	}
	w.push(stateObject)
	return nil
}

// ObjectEnd closes the innermost open object.
func (w *Writer) ObjectEnd() error {
	return w.call(w.objectEnd)
}

func (w *Writer) objectEnd() error {
	if err := w.checkState(stateObject, "object"); err != nil {
		return err
	}
	if err := w.pop(); err != nil {
		return err
	}
	if err := w.writeIndent(); err != nil {
		return err
	}
	if err := w.writeString("},"); err != nil {
		return err
	}
	if w.pretty {
		return w.writeString("\n")
	}
	return nil
}

// ArrayBegin opens an array. Legal in the same contexts as ObjectBegin.
func (w *Writer) ArrayBegin() error {
	return w.call(w.arrayBegin)
}

func (w *Writer) arrayBegin() error {
	if err := w.checkState(stateValuePhrase|stateValue|stateArray, "valuePhrase, value, or array"); err != nil {
		return err
	}
	if w.is(stateValuePhrase | stateValue) {
		if err := w.pop(); err != nil {
			return err
		}
	} else if err := w.writeIndent(); err != nil {
		return err
	}
	if err := w.writeString("["); err != nil {
		return err
	}
	if w.pretty {
		if err := w.writeString("\n"); err != nil {
			return err
		}
	}
	w.push(stateArray)
	return nil
}

// ArrayEnd closes the innermost open array.
func (w *Writer) ArrayEnd() error {
	return w.call(w.arrayEnd)
}

func (w *Writer) arrayEnd() error {
	if err := w.checkState(stateArray, "array"); err != nil {
		return err
	}
	if err := w.pop(); err != nil {
		return err
	}
	if err := w.writeIndent(); err != nil {
		return err
	}
	if err := w.writeString("],"); err != nil {
		return err
	}
	if w.pretty {
		return w.writeString("\n")
	}
	return nil
}

// Key writes an object key and opens the value phrase that must
// follow it (a Type and/or value-emitting call).
func (w *Writer) Key(key []byte) error {
	return w.call(func() error { return w.key(key) })
}

func (w *Writer) key(key []byte) error {
	if err := w.checkState(stateObject, "object"); err != nil {
		return err
	}
	if err := w.writeIndent(); err != nil {
		return err
	}
	if err := w.writeQuotedIfNeeded(key, '"'); err != nil {
		return err
	}
	if err := w.writeString(":"); err != nil {
		return err
	}
	if w.pretty {
		if err := w.writeString(" "); err != nil {
			return err
		}
	}
	w.push(stateValuePhrase)
	return nil
}

// Type writes a value's type annotation. Legal right after Key, or
// directly as an array element's type prefix.
func (w *Writer) Type(t []byte) error {
	return w.call(func() error { return w.typ(t) })
}

func (w *Writer) typ(t []byte) error {
	if err := w.checkState(stateValuePhrase|stateArray, "valuePhrase or array"); err != nil {
		return err
	}
	if w.is(stateValuePhrase) {
		if err := w.pop(); err != nil {
			return err
		}
	} else if err := w.writeIndent(); err != nil {
		return err
	}
	if err := w.writeString("("); err != nil {
		return err
	}
	if err := w.write(Escape(t, ')')); err != nil {
		return err
	}
	if err := w.writeString(")"); err != nil {
		return err
	}
	if w.pretty {
		if err := w.writeString(" "); err != nil {
			return err
		}
	}
	w.push(stateValue)
	return nil
}

// Primitive writes a leaf value. Legal in the same contexts as
// ObjectBegin/ArrayBegin.
func (w *Writer) Primitive(p []byte) error {
	return w.call(func() error { return w.primitive(p) })
}

func (w *Writer) primitive(p []byte) error {
	if err := w.checkState(stateValuePhrase|stateValue|stateArray, "valuePhrase, value, or array"); err != nil {
		return err
	}
	if w.is(stateValuePhrase | stateValue) {
		if err := w.pop(); err != nil {
			return err
		}
	} else if err := w.writeIndent(); err != nil {
		return err
	}
	if err := w.writeQuotedIfNeeded(p, '"'); err != nil {
		return err
	}
	if err := w.writeString(","); err != nil {
		return err
	}
	if w.pretty {
		return w.writeString("\n")
	}
	return nil
}

// writeQuotedIfNeeded writes s bare if it is already a legal word, or
// quoted and escaped relative to delim otherwise.
func (w *Writer) writeQuotedIfNeeded(s []byte, delim byte) error {
	if IsWord(s) {
		return w.write(s)
	}
	if err := w.write([]byte{delim}); err != nil {
		return err
	}
	if err := w.write(Escape(s, delim)); err != nil {
		return err
	}
	return w.write([]byte{delim})
}
