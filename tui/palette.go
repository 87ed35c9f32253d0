package tui

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Palette is an 18-entry color table: 16 ANSI slots plus default foreground
// and background, per spec §6's four built-in palettes.
type Palette struct {
	Name string     `yaml:"name"`
	ANSI [16]RGB    `yaml:"ansi"`
	FG   RGB        `yaml:"fg"`
	BG   RGB        `yaml:"bg"`
}

// RGB is a plain 8-bit-per-channel color, serialised as a 3-element array
// in the palette YAML file.
type RGB struct {
	R, G, B uint8
}

// MarshalYAML / UnmarshalYAML encode RGB as [r, g, b] rather than a mapping,
// matching the compact form a hand-written palette file would use.
func (c RGB) MarshalYAML() (interface{}, error) {
	return [3]uint8{c.R, c.G, c.B}, nil
}

func (c *RGB) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var arr [3]uint8
	if err := unmarshal(&arr); err != nil {
		return err
	}
	c.R, c.G, c.B = arr[0], arr[1], arr[2]
	return nil
}

var paletteDefault = Palette{
	Name: "default",
	ANSI: [16]RGB{
		{0, 0, 0}, {205, 49, 49}, {13, 188, 121}, {229, 229, 16},
		{36, 114, 200}, {188, 63, 188}, {17, 168, 205}, {229, 229, 229},
		{102, 102, 102}, {241, 76, 76}, {35, 209, 139}, {245, 245, 67},
		{59, 142, 234}, {214, 112, 214}, {41, 184, 219}, {255, 255, 255},
	},
	FG: RGB{229, 229, 229},
	BG: RGB{0, 0, 0},
}

var paletteSolarized = Palette{
	Name: "solarized",
	ANSI: [16]RGB{
		{7, 54, 66}, {220, 50, 47}, {133, 153, 0}, {181, 137, 0},
		{38, 139, 210}, {211, 54, 130}, {42, 161, 152}, {238, 232, 213},
		{0, 43, 54}, {203, 75, 22}, {88, 110, 117}, {101, 123, 131},
		{131, 148, 150}, {108, 113, 196}, {147, 161, 161}, {253, 246, 227},
	},
	FG: RGB{131, 148, 150},
	BG: RGB{0, 43, 54},
}

var paletteSolarizedBlack = Palette{
	Name: "solarized-black",
	ANSI: paletteSolarized.ANSI,
	FG:   RGB{131, 148, 150},
	BG:   RGB{0, 0, 0},
}

var paletteSolarizedWhite = Palette{
	Name: "solarized-white",
	ANSI: paletteSolarized.ANSI,
	FG:   RGB{7, 54, 66},
	BG:   RGB{253, 246, 227},
}

// builtinPalettes indexes the four palettes spec §6 names by the value the
// packed CLI argument's palette= key accepts.
var builtinPalettes = map[string]Palette{
	"default":          paletteDefault,
	"solarized":        paletteSolarized,
	"solarized-black":  paletteSolarizedBlack,
	"solarized-white":  paletteSolarizedWhite,
}

// BuiltinPalette looks up one of the four names spec §6 enumerates.
// ErrInvalidArgument is returned for any other name.
func BuiltinPalette(name string) (Palette, error) {
	p, ok := builtinPalettes[name]
	if !ok {
		return Palette{}, fmt.Errorf("%w: unknown palette %q", ErrInvalidArgument, name)
	}
	return p, nil
}

// LoadPaletteFile reads a YAML-encoded Palette from path, for the
// cmd/tsmterm --palette-file flag.
func LoadPaletteFile(path string) (Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Palette{}, fmt.Errorf("tui: read palette file: %w", err)
	}
	var p Palette
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Palette{}, fmt.Errorf("tui: parse palette file: %w", err)
	}
	return p, nil
}

// SetPalette installs p as the Context's active palette, marking the whole
// screen dirty so the next Refresh does a full repaint (spec §6: "swapping
// a palette forces a full redraw").
func (c *Context) SetPalette(p Palette) {
	c.palette = p
	c.scr.ResetAgeing()
}

// Palette returns the Context's active palette.
func (c *Context) Palette() Palette {
	return c.palette
}
