// Package utf8stream implements a restartable byte-at-a-time UTF-8 decoder
// with an explicit reject state, matching spec §4.1: feeding one byte
// returns the new state and, on Accept, makes a decoded codepoint available.
// The machine is pure over its own state; recovery from Reject is always a
// resync to Start on the next byte fed.
package utf8stream

// State is one of the six states of the decoder's automaton.
type State int

const (
	Start State = iota
	Accept
	Reject
	Expect1
	Expect2
	Expect3
)

func (s State) String() string {
	switch s {
	case Start:
		return "START"
	case Accept:
		return "ACCEPT"
	case Reject:
		return "REJECT"
	case Expect1:
		return "EXPECT1"
	case Expect2:
		return "EXPECT2"
	case Expect3:
		return "EXPECT3"
	default:
		return "UNKNOWN"
	}
}

// Decoder is a single-codepoint-at-a-time UTF-8 state machine. The zero
// value is ready to use, starting in Start.
type Decoder struct {
	state  State
	cp     rune
	expect int
}

// Feed consumes one input byte and returns the new state. When the returned
// state is Accept, Codepoint returns the decoded value. When it is Reject,
// the caller should substitute U+FFFD; the state stays Reject, and the next
// byte is handled exactly as it would be from Start.
func (d *Decoder) Feed(b byte) State {
	switch d.state {
	case Start, Accept, Reject:
		return d.feedLeadByte(b)
	case Expect1, Expect2, Expect3:
		return d.feedContinuation(b)
	default:
		d.state = Start
		return d.feedLeadByte(b)
	}
}

func (d *Decoder) feedLeadByte(b byte) State {
	switch {
	case b == 0xC0 || b == 0xC1:
		// Overlong 2-byte introducers are never valid.
		d.state = Reject
		return d.state
	case b&0x80 == 0:
		// Plain ASCII.
		d.cp = rune(b)
		d.state = Accept
		return d.state
	case b&0xC0 == 0x80:
		// Stray continuation byte outside a sequence: resync.
		d.state = Start
		return d.state
	case b&0xE0 == 0xC0:
		d.cp = rune(b & 0x1F)
		d.expect = 1
		d.state = Expect1
		return d.state
	case b&0xF0 == 0xE0:
		d.cp = rune(b & 0x0F)
		d.expect = 2
		d.state = Expect2
		return d.state
	case b&0xF8 == 0xF0:
		d.cp = rune(b & 0x07)
		d.expect = 3
		d.state = Expect3
		return d.state
	default:
		d.state = Reject
		return d.state
	}
}

func (d *Decoder) feedContinuation(b byte) State {
	if b&0xC0 != 0x80 {
		d.state = Reject
		return d.state
	}

	d.cp = (d.cp << 6) | rune(b&0x3F)
	d.expect--

	if d.expect == 0 {
		d.state = Accept
		return d.state
	}

	switch d.expect {
	case 2:
		d.state = Expect2
	case 1:
		d.state = Expect1
	default:
		d.state = Reject
	}
	return d.state
}

// Codepoint returns the codepoint decoded by the most recent Feed call that
// returned Accept. Its value is unspecified otherwise.
func (d *Decoder) Codepoint() rune {
	return d.cp
}

// State returns the decoder's current state without consuming input.
func (d *Decoder) State() State {
	return d.state
}

// Reset returns the decoder to Start, discarding any in-progress sequence.
func (d *Decoder) Reset() {
	d.state = Start
	d.cp = 0
	d.expect = 0
}

// DecodeRune feeds b into d one byte at a time until it reaches Accept or
// Reject, reporting how many bytes of b were consumed. It is a convenience
// wrapper for callers that have a whole byte slice rather than a live
// stream; mid-stream callers should drive Feed directly. On Reject the
// returned rune is utf8.RuneError's codepoint (U+FFFD).
func DecodeRune(d *Decoder, b []byte) (r rune, size int, ok bool) {
	for i, c := range b {
		switch d.Feed(c) {
		case Accept:
			return d.Codepoint(), i + 1, true
		case Reject:
			return 0xFFFD, i + 1, false
		}
	}
	return 0, len(b), false
}
