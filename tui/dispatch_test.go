package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchExecStateForwards(t *testing.T) {
	var exited bool
	var status int
	c := New(10, 2, 100, WithHandlers(Handlers{
		ExecState: func(e bool, s int) { exited, status = e, s },
	}))
	c.DispatchExecState(true, 7)
	assert.True(t, exited)
	assert.Equal(t, 7, status)
}

func TestDispatchExecStateWithoutHandlerIsNoop(t *testing.T) {
	c := New(10, 2, 100)
	assert.NotPanics(t, func() { c.DispatchExecState(true, 1) })
}

func TestDispatchVisibilityForwards(t *testing.T) {
	var visible, focused bool
	c := New(10, 2, 100, WithHandlers(Handlers{
		Visibility: func(v, f bool) { visible, focused = v, f },
	}))
	c.DispatchVisibility(true, false)
	assert.True(t, visible)
	assert.False(t, focused)
}

func TestDispatchGeoHintForwards(t *testing.T) {
	var got GeoHint
	c := New(10, 2, 100, WithHandlers(Handlers{
		GeoHint: func(h GeoHint) { got = h },
	}))
	c.DispatchGeoHint(GeoHint{Country: "SE", Language: "sv"})
	assert.Equal(t, "SE", got.Country)
	assert.Equal(t, "sv", got.Language)
}

func TestDispatchBChunkWithoutHandlerRefuses(t *testing.T) {
	c := New(10, 2, 100)
	ok := c.DispatchBChunk(BChunk{Fd: 3})
	assert.False(t, ok)
}

func TestDispatchBChunkForwardsDecision(t *testing.T) {
	c := New(10, 2, 100, WithHandlers(Handlers{
		BChunk: func(ch BChunk) bool { return ch.Input },
	}))
	assert.True(t, c.DispatchBChunk(BChunk{Input: true}))
	assert.False(t, c.DispatchBChunk(BChunk{Input: false}))
}

func TestDispatchStateWithoutHandlerRefuses(t *testing.T) {
	c := New(10, 2, 100)
	assert.False(t, c.DispatchState(true, 4))
}

func TestDispatchStateForwards(t *testing.T) {
	var gotIn bool
	var gotFd int
	c := New(10, 2, 100, WithHandlers(Handlers{
		State: func(in bool, fd int) bool {
			gotIn, gotFd = in, fd
			return true
		},
	}))
	ok := c.DispatchState(false, 9)
	assert.True(t, ok)
	assert.False(t, gotIn)
	assert.Equal(t, 9, gotFd)
}

func TestDispatchCLIAppliesSizeAndPalette(t *testing.T) {
	var gotCfg Config
	c := New(80, 24, 100, WithHandlers(Handlers{
		CLI: func(cfg Config) { gotCfg = cfg },
	}))

	cfg := c.DispatchCLI("rows=10:cols=20:palette=solarized")

	cols, rows := c.Screen().Size()
	assert.Equal(t, 20, cols)
	assert.Equal(t, 10, rows)
	assert.Equal(t, "solarized", c.Palette().Name)
	assert.Equal(t, "solarized", gotCfg.Palette)
	assert.Equal(t, cfg.Rows, gotCfg.Rows)
}

func TestDispatchCLIIgnoresUnknownPalette(t *testing.T) {
	c := New(80, 24, 100)
	c.DispatchCLI("palette=not-a-real-one")
	assert.Equal(t, Palette{}, c.Palette())
}

func TestDispatchUTF8WithoutHandlerRefuses(t *testing.T) {
	c := New(10, 2, 100)
	assert.False(t, c.DispatchUTF8('x'))
}

func TestDispatchUTF8Forwards(t *testing.T) {
	var got rune
	c := New(10, 2, 100, WithHandlers(Handlers{
		UTF8: func(r rune) bool { got = r; return true },
	}))
	assert.True(t, c.DispatchUTF8('é'))
	assert.Equal(t, 'é', got)
}

func TestAnnounceLabelForwards(t *testing.T) {
	var gotName string
	var gotActive bool
	c := New(10, 2, 100, WithHandlers(Handlers{
		Label: func(name string, active bool) { gotName, gotActive = name, active },
	}))
	c.AnnounceLabel("ctrl-a", true)
	assert.Equal(t, "ctrl-a", gotName)
	assert.True(t, gotActive)
}

func TestAnnounceLabelWithoutHandlerIsNoop(t *testing.T) {
	c := New(10, 2, 100)
	assert.NotPanics(t, func() { c.AnnounceLabel("x", false) })
}
