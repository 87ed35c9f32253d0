package main

import (
	"unicode/utf8"

	"github.com/letoram/tsmgo/input"
)

// hostDecoder turns the raw bytes our own controlling terminal sends (always
// normal-mode ANSI sequences, since a real terminal emulator doesn't know our
// child's cursor-key mode) into symbolic input.KeyEvents, so Context.SendKey
// can re-encode them through its own input.Translator. That translator
// follows the child's mouse protocol only; the child's cursor-key and
// keypad modes are not passed on to it. It is the mirror image of input.Translator: where Translator
// only ever writes, hostDecoder only ever parses.
type hostDecoder struct {
	buf []byte
}

// csiFinal maps a normal-mode CSI final byte to its symbolic key.
var csiFinal = map[byte]input.Key{
	'A': input.KeyUp,
	'B': input.KeyDown,
	'C': input.KeyRight,
	'D': input.KeyLeft,
	'H': input.KeyHome,
	'F': input.KeyEnd,
}

// csiTilde maps a CSI "n~" numeric parameter to its symbolic key.
var csiTilde = map[byte]input.Key{
	1: input.KeyHome,
	2: input.KeyInsert,
	3: input.KeyDelete,
	4: input.KeyEnd,
	5: input.KeyPageUp,
	6: input.KeyPageDown,
	11: input.KeyF1,
	12: input.KeyF2,
	13: input.KeyF3,
	14: input.KeyF4,
	15: input.KeyF5,
	17: input.KeyF6,
	18: input.KeyF7,
	19: input.KeyF8,
	20: input.KeyF9,
	21: input.KeyF10,
	23: input.KeyF11,
	24: input.KeyF12,
}

// ss3Final maps an SS3 (ESC O <final>) sequence to its symbolic key, the form
// xterm uses for F1-F4 and application-cursor-mode arrows.
var ss3Final = map[byte]input.Key{
	'P': input.KeyF1,
	'Q': input.KeyF2,
	'R': input.KeyF3,
	'S': input.KeyF4,
	'A': input.KeyUp,
	'B': input.KeyDown,
	'C': input.KeyRight,
	'D': input.KeyLeft,
}

// Feed appends data to the decoder's pending buffer and returns every
// complete KeyEvent it can extract, leaving a partial trailing escape
// sequence buffered for the next call.
func (d *hostDecoder) Feed(data []byte) []input.KeyEvent {
	d.buf = append(d.buf, data...)

	var events []input.KeyEvent
	for len(d.buf) > 0 {
		ev, n := d.decodeOne(d.buf)
		if n == 0 {
			break
		}
		if ev.Key != input.KeyNone {
			events = append(events, ev)
		}
		d.buf = d.buf[n:]
	}
	return events
}

// decodeOne decodes a single key event from the front of buf, returning the
// zero Key and n=0 if buf holds an incomplete sequence that needs more bytes.
func (d *hostDecoder) decodeOne(buf []byte) (input.KeyEvent, int) {
	b := buf[0]

	switch {
	case b == 0x1b:
		return d.decodeEscape(buf)
	case b == 0x7f || b == 0x08:
		return input.KeyEvent{Key: input.KeyBackspace}, 1
	case b == 0x09:
		return input.KeyEvent{Key: input.KeyTab}, 1
	case b == 0x0d:
		return input.KeyEvent{Key: input.KeyEnter}, 1
	case b >= 1 && b <= 26 && b != 0x09 && b != 0x0d:
		return input.KeyEvent{Key: input.KeyRune, Mods: input.ModCtrl, Rune: rune('a' + b - 1)}, 1
	case b < 0x80:
		return input.KeyEvent{Key: input.KeyRune, Rune: rune(b)}, 1
	default:
		r, n := utf8.DecodeRune(buf)
		if r == utf8.RuneError && n <= 1 {
			if !utf8.FullRune(buf) {
				return input.KeyEvent{}, 0
			}
			return input.KeyEvent{Key: input.KeyRune, Rune: rune(buf[0])}, 1
		}
		return input.KeyEvent{Key: input.KeyRune, Rune: r}, n
	}
}

func (d *hostDecoder) decodeEscape(buf []byte) (input.KeyEvent, int) {
	if len(buf) < 2 {
		return input.KeyEvent{}, 0
	}
	switch buf[1] {
	case '[':
		return d.decodeCSI(buf)
	case 'O':
		if len(buf) < 3 {
			return input.KeyEvent{}, 0
		}
		if key, ok := ss3Final[buf[2]]; ok {
			return input.KeyEvent{Key: key}, 3
		}
		return input.KeyEvent{}, 3
	default:
		// Alt+key: ESC followed by a plain byte.
		ev, n := d.decodeOne(buf[1:])
		if n == 0 {
			return input.KeyEvent{}, 0
		}
		ev.Mods |= input.ModAlt
		return ev, n + 1
	}
}

func (d *hostDecoder) decodeCSI(buf []byte) (input.KeyEvent, int) {
	i := 2
	for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
		i++
	}
	if i >= len(buf) {
		return input.KeyEvent{}, 0
	}

	if buf[i] == '~' {
		var n byte
		for _, c := range buf[2:i] {
			n = n*10 + (c - '0')
		}
		key := csiTilde[n]
		return input.KeyEvent{Key: key}, i + 1
	}

	if key, ok := csiFinal[buf[i]]; ok {
		return input.KeyEvent{Key: key}, i + 1
	}
	return input.KeyEvent{}, i + 1
}
