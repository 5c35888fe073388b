package luxem

// Handler carries the event callbacks a Reader invokes as it recognizes
// structural tokens. Each field is optional; a nil field behaves as if
// it always returned true. Returning false from any callback aborts
// the current Feed call with an error that wraps ErrCallbackAbort, so
// hosts can tell "the parser rejected the input" apart from "my own
// code rejected it" with errors.Is.
//
// Byte slices passed to Key, Type and Primitive point into the buffer
// given to the current Feed call, unless the source text contained an
// escape sequence, in which case the Reader hands over an unescaped copy.
// Either way the slice is only valid for the duration of the callback;
// retain a copy if you need the bytes afterwards.
type Handler struct {
	ObjectBegin func() bool
	ObjectEnd   func() bool
	ArrayBegin  func() bool
	ArrayEnd    func() bool
	Key         func(b []byte) bool
	Type        func(b []byte) bool
	Primitive   func(b []byte) bool
}

// result is the outcome of running one continuation against the
// current feed window.
type result int

const (
	resultContinue result = iota
	resultHungry
	resultError
)

// contKind enumerates the fixed set of parse continuations that make
// up the reader's push-down stack. Using a tagged value here instead
// of a stack of function pointers (the source's approach) keeps the
// set of states closed and exhaustively switchable.
type contKind uint8

const (
	contWhitespace contKind = iota
	contType
	contPrimitive
	contKeySeparator
	contValuePhrase
	contValue
	contObjectNext
	contArrayNext
)

// cont is one element of the reader's state stack.
type cont struct {
	kind  contKind
	isKey bool // only meaningful for contPrimitive
}

// Reader is an incremental push-down parser for luxem documents. Bytes
// are supplied via Feed in arbitrary-size chunks; the Reader consumes
// a prefix of each chunk and the caller resubmits whatever wasn't
// consumed, concatenated with any further bytes, on the next call.
//
// A Reader is single-threaded: Feed must not be called concurrently,
// and a Reader must not be reused across unrelated documents once it
// has latched an error.
type Reader struct {
	Handler Handler

	stack    []cont
	position int64
	err      error

	// scratch is unused: unescaped copies of quoted runs are allocated
	// afresh by Unescape for each run.
	scratch []byte
}

// NewReader returns a Reader ready to receive document bytes via
// Feed. The initial state stack represents the implicit root array:
// the grammar treats an entire document as a comma-separated sequence
// of value phrases with no enclosing brackets.
func NewReader() *Reader {
	r := &Reader{}
	r.stack = pushArrayFrame(nil)
	return r
}

// Position reports the total number of bytes consumed across all
// Feed calls since construction.
func (r *Reader) Position() int64 {
	return r.position
}

// Err returns the error that latched the Reader, or nil if none has.
func (r *Reader) Err() error {
	return r.err
}

// Feed processes a prefix of data and returns how many leading bytes
// were consumed. Any unconsumed suffix must be included, unmodified
// and in order, at the start of the next call's data (possibly
// followed by newly-arrived bytes). Once Feed returns a non-nil
// error, the Reader is latched and every subsequent call returns the
// same error without consuming anything.
func (r *Reader) Feed(data []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	eaten := 0
	committed := 0
	for {
		if len(r.stack) == 0 {
			r.err = &ParseError{Offset: r.position, Msg: "above root depth, exited too many levels during parsing"}
			return committed, r.err
		}
		top := r.stack[len(r.stack)-1]
		res, pushes, err := r.step(top, data, &eaten)
		switch res {
		case resultHungry:
			return committed, nil
		case resultError:
			r.position += int64(eaten - committed)
			r.err = err
			return committed, err
		default: // resultContinue
			r.stack = r.stack[:len(r.stack)-1]
			r.stack = append(r.stack, pushes...)
			if len(r.stack) == 0 {
				r.err = &ParseError{Offset: r.position, Msg: "above root depth, exited too many levels during parsing"}
				return committed, r.err
			}
			r.position += int64(eaten - committed)
			committed = eaten
		}
	}
}

// step runs the continuation on top of the stack against the current
// feed window, returning the replacement continuations to push (in
// reverse execution order: they are appended to the stack as given, so
// the last element of pushes becomes the new top of stack and runs
// first).
func (r *Reader) step(c cont, data []byte, eaten *int) (result, []cont, error) {
	switch c.kind {
	case contWhitespace:
		if eatWhitespace(data, eaten) {
			return resultHungry, nil, nil
		}
		return resultContinue, nil, nil

	case contType:
		return r.stepReadDelimited(data, eaten, ')', func(s []byte) bool {
			if r.Handler.Type == nil {
				return true
			}
			return r.Handler.Type(s)
		})

	case contPrimitive:
		return r.stepPrimitive(data, eaten, c.isKey)

	case contKeySeparator:
		if !canEatOne(data, *eaten) {
			return resultHungry, nil, nil
		}
		if tasteOne(data, *eaten) != ':' {
			return resultError, nil, newGrammarError(r, "missing : between key and value")
		}
		eatOne(data, eaten)
		return resultContinue, nil, nil

	case contValuePhrase:
		return r.stepValuePhrase(data, eaten)

	case contValue:
		return r.stepValue(data, eaten)

	case contObjectNext:
		return r.stepContainerNext(data, eaten, '}', r.Handler.ObjectEnd, pushObjectFrame)

	case contArrayNext:
		return r.stepContainerNext(data, eaten, ']', r.Handler.ArrayEnd, pushArrayFrame)
	}
	panic("luxem: unreachable continuation kind")
}

func newGrammarError(r *Reader, msg string) error {
	return &ParseError{Offset: r.position, Msg: msg}
}

// stepReadDelimited reads a backslash-escaped run up to (but not
// including) an unescaped delimiter, unescapes it if necessary, and
// hands it to deliver. Used for type annotations.
func (r *Reader) stepReadDelimited(data []byte, eaten *int, delim byte, deliver func([]byte) bool) (result, []cont, error) {
	raw, _, hungry := readWords(data, eaten, delim)
	if hungry {
		return resultHungry, nil, nil
	}
	unescaped, err := Unescape(raw)
	if err != nil {
		return resultError, nil, &ParseError{Offset: r.position, Msg: err.Error()}
	}
	if !deliver(unescaped) {
		return resultError, nil, &ParseError{Offset: r.position, Msg: "callback aborted parsing", Err: ErrCallbackAbort}
	}
	return resultContinue, nil, nil
}

func (r *Reader) stepPrimitive(data []byte, eaten *int, isKey bool) (result, []cont, error) {
	if !canEatOne(data, *eaten) {
		return resultHungry, nil, nil
	}
	var raw []byte
	var ok, hungry bool
	if tasteOne(data, *eaten) == '"' {
		start := *eaten
		eatOne(data, eaten)
		raw, ok, hungry = readWords(data, eaten, '"')
		if hungry {
			*eaten = start
			return resultHungry, nil, nil
		}
	} else {
		raw, ok, hungry = readWord(data, eaten)
		if hungry {
			return resultHungry, nil, nil
		}
	}
	if !ok {
		return resultHungry, nil, nil
	}
	unescaped, err := Unescape(raw)
	if err != nil {
		return resultError, nil, &ParseError{Offset: r.position, Msg: err.Error()}
	}
	var callback func([]byte) bool
	if isKey {
		callback = r.Handler.Key
	} else {
		callback = r.Handler.Primitive
	}
	if callback != nil && !callback(unescaped) {
		return resultError, nil, &ParseError{Offset: r.position, Msg: "callback aborted parsing", Err: ErrCallbackAbort}
	}
	return resultContinue, nil, nil
}

func (r *Reader) stepValuePhrase(data []byte, eaten *int) (result, []cont, error) {
	if !canEatOne(data, *eaten) {
		return resultHungry, nil, nil
	}
	pushes := []cont{{kind: contValue}}
	if tasteOne(data, *eaten) == '(' {
		eatOne(data, eaten)
		pushes = append(pushes, cont{kind: contWhitespace}, cont{kind: contType})
	}
	return resultContinue, pushes, nil
}

func (r *Reader) stepValue(data []byte, eaten *int) (result, []cont, error) {
	if !canEatOne(data, *eaten) {
		return resultHungry, nil, nil
	}
	switch tasteOne(data, *eaten) {
	case '{':
		start := *eaten
		eatOne(data, eaten)
		if eatWhitespace(data, eaten) {
			*eaten = start
			return resultHungry, nil, nil
		}
		if !canEatOne(data, *eaten) {
			*eaten = start
			return resultHungry, nil, nil
		}
		var pushes []cont
		if tasteOne(data, *eaten) == '}' {
			pushes = []cont{{kind: contObjectNext}}
		} else {
			pushes = pushObjectFrame(nil)
		}
		if r.Handler.ObjectBegin != nil && !r.Handler.ObjectBegin() {
			return resultError, nil, &ParseError{Offset: r.position, Msg: "callback aborted parsing", Err: ErrCallbackAbort}
		}
		return resultContinue, pushes, nil
	case '[':
		start := *eaten
		eatOne(data, eaten)
		if eatWhitespace(data, eaten) {
			*eaten = start
			return resultHungry, nil, nil
		}
		if !canEatOne(data, *eaten) {
			*eaten = start
			return resultHungry, nil, nil
		}
		var pushes []cont
		if tasteOne(data, *eaten) == ']' {
			pushes = []cont{{kind: contArrayNext}}
		} else {
			pushes = pushArrayFrame(nil)
		}
		if r.Handler.ArrayBegin != nil && !r.Handler.ArrayBegin() {
			return resultError, nil, &ParseError{Offset: r.position, Msg: "callback aborted parsing", Err: ErrCallbackAbort}
		}
		return resultContinue, pushes, nil
	default:
		return resultContinue, []cont{{kind: contPrimitive}}, nil
	}
}

// stepContainerNext implements both state_object_next and
// state_array_next, which are mirror images of each other modulo the
// closing byte, the end-event callback and which frame builder to use
// when another element follows.
func (r *Reader) stepContainerNext(data []byte, eaten *int, closeByte byte, onEnd func() bool, pushFrame func([]cont) []cont) (result, []cont, error) {
	if !canEatOne(data, *eaten) {
		return resultHungry, nil, nil
	}
	next := tasteOne(data, *eaten)
	if next != ',' && next != closeByte {
		return resultError, nil, &ParseError{Offset: r.position, Msg: "missing , between elements"}
	}
	if next == ',' {
		start := *eaten
		eatOne(data, eaten)
		if eatWhitespace(data, eaten) {
			*eaten = start
			return resultHungry, nil, nil
		}
		if !canEatOne(data, *eaten) {
			*eaten = start
			return resultHungry, nil, nil
		}
		next = tasteOne(data, *eaten)
	}
	if next == closeByte {
		eatOne(data, eaten)
		if onEnd != nil && !onEnd() {
			return resultError, nil, &ParseError{Offset: r.position, Msg: "callback aborted parsing", Err: ErrCallbackAbort}
		}
		return resultContinue, nil, nil
	}
	return resultContinue, pushFrame(nil), nil
}

// pushObjectFrame appends, in reverse execution order (the key is
// appended last and so runs first), the continuations that parse one
// key/value-phrase entry of an object.
func pushObjectFrame(pushes []cont) []cont {
	return append(pushes,
		cont{kind: contObjectNext},
		cont{kind: contWhitespace},
		cont{kind: contValuePhrase},
		cont{kind: contWhitespace},
		cont{kind: contKeySeparator},
		cont{kind: contWhitespace},
		cont{kind: contPrimitive, isKey: true},
	)
}

// pushArrayFrame appends, in reverse execution order, the continuations that
// parse one value-phrase element of an array (or, at the root, one
// top-level entry of the implicit document list).
func pushArrayFrame(pushes []cont) []cont {
	return append(pushes,
		cont{kind: contArrayNext},
		cont{kind: contWhitespace},
		cont{kind: contValuePhrase},
		cont{kind: contWhitespace},
	)
}

// --- low level byte-cursor helpers, mirroring the source's
// can_eat_one/taste_one/eat_one/read_word/read_words. ---

func canEatOne(data []byte, eaten int) bool {
	return eaten < len(data)
}

func tasteOne(data []byte, eaten int) byte {
	return data[eaten]
}

func eatOne(data []byte, eaten *int) byte {
	b := data[*eaten]
	*eaten++
	return b
}

// eatWhitespace consumes a maximal run of whitespace bytes starting
// at *eaten. It reports hungry (true) if it ran out of buffer while
// it could still be mid-run -- the caller should retry this
// continuation once more data is available, since more whitespace (or
// the byte that terminates the run) might be one chunk away. This is
// slightly more conservative than eating greedily and declaring
// success regardless, which would let a whitespace run split across a
// Feed boundary leak unconsumed whitespace into the next
// continuation.
func eatWhitespace(data []byte, eaten *int) (hungry bool) {
	for {
		if *eaten >= len(data) {
			return true
		}
		if !whitespaceBytes.get(data[*eaten]) {
			return false
		}
		*eaten++
	}
}

// readWord reads a maximal run of word bytes. It never produces an
// escaped byte (words cannot contain backslashes at all, per the
// classifier), so there's no escape handling here.
func readWord(data []byte, eaten *int) (value []byte, ok, hungry bool) {
	start := *eaten
	for {
		if *eaten >= len(data) {
			return nil, false, true
		}
		if !isWordByte(data[*eaten]) {
			return data[start:*eaten], true, false
		}
		*eaten++
	}
}

// readWords reads bytes up to and including an unescaped occurrence
// of delimiter, returning the bytes before it (still possibly
// containing escape sequences the caller must unescape). A backslash
// escapes the following byte, whatever it is, including another
// backslash or the delimiter itself.
func readWords(data []byte, eaten *int, delimiter byte) (value []byte, ok, hungry bool) {
	start := *eaten
	escaped := false
	for {
		if *eaten >= len(data) {
			return nil, false, true
		}
		b := data[*eaten]
		*eaten++
		if escaped {
			escaped = false
			continue
		}
		if b == '\\' {
			escaped = true
			continue
		}
		if b == delimiter {
			return data[start : *eaten-1], true, false
		}
	}
}
