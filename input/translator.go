package input

import (
	"bytes"
	"unicode"
)

// Translator holds the small amount of mode state spec §4.5 needs to pick
// the right byte sequence for a key or mouse event: application cursor-key
// mode (DECCKM), application keypad mode (DECPAM/DECPNM), the active mouse
// reporting protocol, and bracketed paste.
//
// The translator never reads the incoming stream. Of these modes, only the
// mouse protocol is tracked by vte.Parser from the child's DECSET/DECRST,
// and tui.Context copies it onto its Translator after each Process round.
// AppCursorKeys, AppKeypad and BracketedPaste are not tracked by the parser
// and change only when the Translator's owner sets them.
type Translator struct {
	AppCursorKeys   bool
	AppKeypad       bool
	BracketedPaste  bool
	mouse           MouseProto
}

// MouseProto is a bitset of active mouse reporting protocols, mirroring
// vte.MouseProto without creating an import cycle between the two
// packages (both describe the same DECSET 1000/1002/1003/1006/1015 state).
type MouseProto uint8

const (
	MouseButton MouseProto = 1 << iota
	MouseDrag
	MouseMotion
	MouseSGR
	MouseX10
	MouseRXVT
)

// SetMouseProto replaces the active mouse reporting protocol bitset.
func (t *Translator) SetMouseProto(p MouseProto) {
	t.mouse = p
}

// MouseProto returns the active mouse reporting protocol bitset.
func (t *Translator) MouseProto() MouseProto {
	return t.mouse
}

// cursorKeySeq maps the four arrow/home/end keys to their CSI (normal mode)
// or SS3 (application mode) final byte.
var cursorKeySeq = map[Key]byte{
	KeyUp: 'A', KeyDown: 'B', KeyRight: 'C', KeyLeft: 'D',
	KeyHome: 'H', KeyEnd: 'F',
}

// keypadSeq maps the numeric-keypad variants to their SS3 final byte in
// application-keypad mode; in normal mode keypadKey sends the CSI cursor
// form of the same final byte (or CR for KeypadEnter).
var keypadSeq = map[Key]byte{
	KeypadUp: 'A', KeypadDown: 'B', KeypadLeft: 'D', KeypadRight: 'C',
	KeypadHome: 'H', KeypadEnd: 'F', KeypadEnter: 'M',
}

// fixedSeq maps keys with a single fixed byte sequence regardless of mode.
var fixedSeq = map[Key]string{
	KeyPageUp:    "\x1b[5~",
	KeyPageDown:  "\x1b[6~",
	KeyInsert:    "\x1b[2~",
	KeyDelete:    "\x1b[3~",
	KeyF1:        "\x1bOP",
	KeyF2:        "\x1bOQ",
	KeyF3:        "\x1bOR",
	KeyF4:        "\x1bOS",
	KeyF5:        "\x1b[15~",
	KeyF6:        "\x1b[17~",
	KeyF7:        "\x1b[18~",
	KeyF8:        "\x1b[19~",
	KeyF9:        "\x1b[20~",
	KeyF10:       "\x1b[21~",
	KeyF11:       "\x1b[23~",
	KeyF12:       "\x1b[24~",
	KeyBackspace: "\x7f",
	KeyTab:       "\t",
	KeyEnter:     "\r",
	KeyEscape:    "\x1b",
}

// Key resolves a keyboard event to the bytes written back to the child.
// Resolution order, per spec §4.5: a control-modified ASCII letter becomes
// its C0 byte; a named special key becomes its fixed sequence (cursor and
// keypad keys honouring AppCursorKeys/AppKeypad); otherwise the event's
// rune is UTF-8 encoded. Alt prepends ESC to whatever the rules above
// produce (the classic xterm "meta sends escape" convention).
func (t *Translator) Key(ev KeyEvent) []byte {
	var out []byte

	switch {
	case ev.Mods.Has(ModCtrl) && ev.Key == KeyRune && isCtrlLetter(ev.Rune):
		out = []byte{ctrlByte(ev.Rune)}
	case isCursorKey(ev.Key):
		out = t.cursorKey(ev.Key)
	case isKeypadKey(ev.Key):
		out = t.keypadKey(ev.Key)
	case fixedSeq[ev.Key] != "":
		out = []byte(fixedSeq[ev.Key])
	case ev.Key == KeyRune:
		out = []byte(string(ev.Rune))
	default:
		return nil
	}

	if ev.Mods.Has(ModAlt) {
		out = append([]byte{0x1b}, out...)
	}
	return out
}

func isCursorKey(k Key) bool {
	switch k {
	case KeyUp, KeyDown, KeyLeft, KeyRight, KeyHome, KeyEnd:
		return true
	}
	return false
}

func isKeypadKey(k Key) bool {
	switch k {
	case KeypadUp, KeypadDown, KeypadLeft, KeypadRight, KeypadHome, KeypadEnd, KeypadEnter:
		return true
	}
	return false
}

// cursorKey emits ESC [ <final> normally, or ESC O <final> (SS3) when
// application cursor-key mode (DECCKM) is active.
func (t *Translator) cursorKey(k Key) []byte {
	final := cursorKeySeq[k]
	if t.AppCursorKeys {
		return []byte{0x1b, 'O', final}
	}
	return []byte{0x1b, '[', final}
}

// keypadKey emits the SS3 application-keypad form when AppKeypad is set;
// otherwise it degrades to the same cursor-motion sequence (most keypad
// arrow keys double as the regular arrow keys in normal mode).
func (t *Translator) keypadKey(k Key) []byte {
	final := keypadSeq[k]
	if t.AppKeypad {
		return []byte{0x1b, 'O', final}
	}
	if k == KeypadEnter {
		return []byte{'\r'}
	}
	return []byte{0x1b, '[', final}
}

// isCtrlLetter reports whether r is a letter for which Ctrl+r has a
// conventional C0 mapping (Ctrl-A..Ctrl-Z). Punctuation keys are not
// mapped.
func isCtrlLetter(r rune) bool {
	u := unicode.ToUpper(r)
	return u >= 'A' && u <= 'Z'
}

// ctrlByte returns the C0 control byte for Ctrl+letter (Ctrl-A = 0x01 ..
// Ctrl-Z = 0x1a).
func ctrlByte(r rune) byte {
	u := unicode.ToUpper(r)
	return byte(u - 'A' + 1)
}

// Paste wraps data in bracketed-paste markers when BracketedPaste is
// active, so the child can distinguish typed input from pasted text; with
// bracketed paste off it returns data unchanged.
func (t *Translator) Paste(data []byte) []byte {
	if !t.BracketedPaste {
		return data
	}
	var buf bytes.Buffer
	buf.WriteString("\x1b[200~")
	buf.Write(data)
	buf.WriteString("\x1b[201~")
	return buf.Bytes()
}
