package tui

import (
	"strconv"
	"strings"
)

// CursorKind selects the cursor glyph spec §6's packed CLI argument names.
type CursorKind string

const (
	CursorBlock     CursorKind = "block"
	CursorHalfblock CursorKind = "halfblock"
	CursorFrame     CursorKind = "frame"
	CursorVline     CursorKind = "vline"
	CursorUline     CursorKind = "uline"
)

// FontHint selects the hinting mode spec §6 names.
type FontHint string

const (
	FontHintLight    FontHint = "light"
	FontHintMono     FontHint = "mono"
	FontHintNormal   FontHint = "normal"
	FontHintSubpixel FontHint = "subpixel"
)

// Config is the parsed form of spec §6's packed "key=value:key=value:..."
// CLI argument string. Every field is optional; a zero value means the key
// was absent. Unknown keys are collected in Extra rather than rejected,
// matching spec's "unknown keys are ignored" (a caller that cares can still
// inspect them).
type Config struct {
	Rows, Cols int

	PPCM float64

	BGR, BGG, BGB, BGAlpha int
	FGR, FGG, FGB          int
	CCR, CCG, CCB          int // cursor color
	CLR, CLG, CLB          int // cursor-line color

	Cursor CursorKind

	Login string // login [user]; empty means no login-shell request

	Palette string

	Font     string
	FontFB   string
	FontSize int
	FontHint FontHint

	Extra map[string]string
}

// setInt fills the Config field for a packed-argument key whose value is a
// plain integer, reporting false for any other key or a non-integer value.
func (c *Config) setInt(key, val string) bool {
	n, err := strconv.Atoi(val)
	if err != nil {
		return false
	}
	switch key {
	case "rows":
		c.Rows = n
	case "cols":
		c.Cols = n
	case "bgr":
		c.BGR = n
	case "bgg":
		c.BGG = n
	case "bgb":
		c.BGB = n
	case "bgalpha":
		c.BGAlpha = n
	case "fgr":
		c.FGR = n
	case "fgg":
		c.FGG = n
	case "fgb":
		c.FGB = n
	case "ccr":
		c.CCR = n
	case "ccg":
		c.CCG = n
	case "ccb":
		c.CCB = n
	case "clr":
		c.CLR = n
	case "clg":
		c.CLG = n
	case "clb":
		c.CLB = n
	case "font_sz":
		c.FontSize = n
	default:
		return false
	}
	return true
}

// ParseConfig parses spec §6's packed argument string. A malformed
// "key=value" pair without an '=' is skipped; a well-formed pair with an
// unrecognized key is stored in Extra. ppcm parses as a float, every other
// numeric key as an integer via setInt.
func ParseConfig(packed string) Config {
	cfg := Config{Extra: make(map[string]string)}
	if packed == "" {
		return cfg
	}

	for _, pair := range strings.Split(packed, ":") {
		key, val, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		switch {
		case key == "ppcm":
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				cfg.PPCM = f
			}
		case key == "cursor":
			cfg.Cursor = CursorKind(val)
		case key == "login":
			cfg.Login = val
		case key == "palette":
			cfg.Palette = val
		case key == "font":
			cfg.Font = val
		case key == "font_fb":
			cfg.FontFB = val
		case key == "font_hint":
			cfg.FontHint = FontHint(val)
		case cfg.setInt(key, val):
			// handled
		default:
			cfg.Extra[key] = val
		}
	}
	return cfg
}
