package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/letoram/tsmgo/screen"
	"github.com/letoram/tsmgo/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinPaletteNames(t *testing.T) {
	for _, name := range []string{"default", "solarized", "solarized-black", "solarized-white"} {
		p, err := BuiltinPalette(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.Name)
	}
}

func TestBuiltinPaletteUnknownName(t *testing.T) {
	_, err := BuiltinPalette("nonexistent")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSolarizedVariantsShareANSITable(t *testing.T) {
	black, err := BuiltinPalette("solarized-black")
	require.NoError(t, err)
	white, err := BuiltinPalette("solarized-white")
	require.NoError(t, err)

	assert.Equal(t, black.ANSI, white.ANSI)
	assert.NotEqual(t, black.BG, white.BG)
}

func TestLoadPaletteFileRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palette.yaml")

	data := []byte(`
name: custom
ansi:
  - [1, 2, 3]
  - [4, 5, 6]
  - [7, 8, 9]
  - [10, 11, 12]
  - [13, 14, 15]
  - [16, 17, 18]
  - [19, 20, 21]
  - [22, 23, 24]
  - [25, 26, 27]
  - [28, 29, 30]
  - [31, 32, 33]
  - [34, 35, 36]
  - [37, 38, 39]
  - [40, 41, 42]
  - [43, 44, 45]
  - [46, 47, 48]
fg: [200, 200, 200]
bg: [0, 0, 0]
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	p, err := LoadPaletteFile(path)
	require.NoError(t, err)

	assert.Equal(t, "custom", p.Name)
	assert.Equal(t, RGB{1, 2, 3}, p.ANSI[0])
	assert.Equal(t, RGB{46, 47, 48}, p.ANSI[15])
	assert.Equal(t, RGB{200, 200, 200}, p.FG)
}

func TestLoadPaletteFileMissing(t *testing.T) {
	_, err := LoadPaletteFile("/nonexistent/path/palette.yaml")
	assert.Error(t, err)
}

func TestSetPaletteForcesFullRedraw(t *testing.T) {
	c := New(10, 5, 100)
	sym := c.SymbolTable().Make('x')
	c.Screen().Write(sym, 1, c.Screen().DefaultAttr())

	p, err := BuiltinPalette("solarized")
	require.NoError(t, err)
	c.SetPalette(p)

	var ages []uint32
	c.Refresh(func(x, y int, sym symbol.Symbol, width int, attr screen.Attr, age uint32) {
		ages = append(ages, age)
	})
	require.NotEmpty(t, ages)
	for _, age := range ages {
		assert.Equal(t, uint32(0), age)
	}
	assert.Equal(t, "solarized", c.Palette().Name)
}
