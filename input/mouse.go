package input

import "strconv"

// Button identifies which button (or wheel direction) a MouseEvent
// reports.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
	ButtonWheelUp
	ButtonWheelDown
)

// MouseAction is what happened to the event's Button.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMove // drag (button held) or bare motion, per the active protocol
)

// MouseEvent is one mouse report in cell-space coordinates (0-based; the
// wire formats below convert to 1-based as each requires).
type MouseEvent struct {
	X, Y   int
	Button Button
	Action MouseAction
	Mods   Mod
}

// buttonCode maps a button/action pair to the xterm protocol's button code
// before modifier bits are added: 0/1/2 for left/middle/right, 3 for a
// released button (X10/RXVT's generic "up" code; SGR instead keeps the
// pressed button's code and signals release via the trailing letter), and
// 64/65 for the wheel.
func buttonCode(ev MouseEvent, sgr bool) int {
	switch ev.Button {
	case ButtonWheelUp:
		return 64
	case ButtonWheelDown:
		return 65
	}
	if ev.Action == MouseRelease && !sgr {
		return 3
	}
	code := int(ev.Button)
	if ev.Action == MouseMove {
		code |= 32
	}
	return code
}

// modBits folds shift/alt/ctrl into the bitmask spec §4.5 adds to the
// button code: 1/2/4 respectively.
func modBits(m Mod) int {
	n := 0
	if m.Has(ModShift) {
		n |= 1
	}
	if m.Has(ModAlt) {
		n |= 2
	}
	if m.Has(ModCtrl) {
		n |= 4
	}
	return n
}

// Mouse encodes ev per the translator's active protocol: SGR takes priority
// over RXVT, which takes priority over X10, matching the usual DECSET
// layering (1006/1015 refine rather than replace 1000/1002/1003). Returns
// nil if no mouse reporting mode is active or the event's kind (drag,
// plain motion) isn't one the active mode reports.
func (t *Translator) Mouse(ev MouseEvent) []byte {
	if !t.wantsReport(ev) {
		return nil
	}

	switch {
	case t.mouse&MouseSGR != 0:
		return sgrReport(ev)
	case t.mouse&MouseRXVT != 0:
		return rxvtReport(ev)
	default:
		return x10Report(ev)
	}
}

// wantsReport applies the button/drag/motion gating spec §4.6 describes:
// MouseButton alone reports presses and releases; MouseDrag additionally
// reports motion while a button is held; MouseMotion reports all motion.
func (t *Translator) wantsReport(ev MouseEvent) bool {
	if t.mouse&(MouseButton|MouseDrag|MouseMotion) == 0 {
		return false
	}
	if ev.Action != MouseMove {
		return true
	}
	return t.mouse&(MouseDrag|MouseMotion) != 0
}

func sgrReport(ev MouseEvent) []byte {
	code := buttonCode(ev, true) | modBits(ev.Mods)
	letter := byte('M')
	if ev.Action == MouseRelease {
		letter = 'm'
	}
	return []byte(csiSGR(code, ev.X+1, ev.Y+1, letter))
}

func rxvtReport(ev MouseEvent) []byte {
	code := buttonCode(ev, false) | modBits(ev.Mods)
	return []byte(csiRXVT(code, ev.X+1, ev.Y+1))
}

// x10Report emits the legacy 7-bit form: ESC [ M b x y, each coordinate and
// the button code biased by +32 so the byte stays printable.
func x10Report(ev MouseEvent) []byte {
	code := buttonCode(ev, false) | modBits(ev.Mods)
	x, y := ev.X+1, ev.Y+1
	// xterm clamps X10 coordinates at 255-32 since the encoding has no
	// escape for larger cell positions.
	if x > 223 {
		x = 223
	}
	if y > 223 {
		y = 223
	}
	return []byte{0x1b, '[', 'M', byte(code + 32), byte(x + 32), byte(y + 32)}
}

func csiSGR(code, x, y int, letter byte) string {
	return "\x1b[<" + strconv.Itoa(code) + ";" + strconv.Itoa(x) + ";" + strconv.Itoa(y) + string(letter)
}

// csiRXVT formats the 1015 wire form: ESC [ b;x;y M, with no SGR '<'
// prefix and no release-letter distinction (RXVT always terminates with
// 'M', signalling release via buttonCode's generic "up" code 3).
func csiRXVT(code, x, y int) string {
	return "\x1b[" + strconv.Itoa(code) + ";" + strconv.Itoa(x) + ";" + strconv.Itoa(y) + "M"
}
