package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigIntegerFields(t *testing.T) {
	cfg := ParseConfig("rows=40:cols=100:bgr=10:bgg=20:bgb=30:bgalpha=255:fgr=1:fgg=2:fgb=3:ccr=4:ccg=5:ccb=6:clr=7:clg=8:clb=9:font_sz=14")

	assert.Equal(t, 40, cfg.Rows)
	assert.Equal(t, 100, cfg.Cols)
	assert.Equal(t, 10, cfg.BGR)
	assert.Equal(t, 20, cfg.BGG)
	assert.Equal(t, 30, cfg.BGB)
	assert.Equal(t, 255, cfg.BGAlpha)
	assert.Equal(t, 1, cfg.FGR)
	assert.Equal(t, 4, cfg.CCR)
	assert.Equal(t, 7, cfg.CLR)
	assert.Equal(t, 14, cfg.FontSize)
}

func TestParseConfigStringAndFloatFields(t *testing.T) {
	cfg := ParseConfig("ppcm=38.4:cursor=frame:login=alice:palette=solarized:font=Iosevka:font_fb=DejaVu Sans Mono:font_hint=mono")

	assert.InDelta(t, 38.4, cfg.PPCM, 0.0001)
	assert.Equal(t, CursorFrame, cfg.Cursor)
	assert.Equal(t, "alice", cfg.Login)
	assert.Equal(t, "solarized", cfg.Palette)
	assert.Equal(t, "Iosevka", cfg.Font)
	assert.Equal(t, FontHintMono, cfg.FontHint)
}

func TestParseConfigUnknownKeysGoToExtra(t *testing.T) {
	cfg := ParseConfig("rows=10:mystery=42:also-unknown=yes")

	require.NotNil(t, cfg.Extra)
	assert.Equal(t, "42", cfg.Extra["mystery"])
	assert.Equal(t, "yes", cfg.Extra["also-unknown"])
	assert.Equal(t, 10, cfg.Rows)
}

func TestParseConfigMalformedPairSkipped(t *testing.T) {
	cfg := ParseConfig("rows=10:nopair:cols=20")

	assert.Equal(t, 10, cfg.Rows)
	assert.Equal(t, 20, cfg.Cols)
	assert.NotContains(t, cfg.Extra, "nopair")
}

func TestParseConfigEmptyString(t *testing.T) {
	cfg := ParseConfig("")
	assert.Equal(t, 0, cfg.Rows)
	assert.Equal(t, 0, cfg.Cols)
	assert.Empty(t, cfg.Extra)
}

func TestParseConfigNonIntegerValueFallsToExtra(t *testing.T) {
	cfg := ParseConfig("rows=notanumber")
	assert.Equal(t, 0, cfg.Rows)
	assert.Equal(t, "notanumber", cfg.Extra["rows"])
}
