package tui

import (
	"testing"

	"github.com/google/uuid"
	"github.com/letoram/tsmgo/input"
	"github.com/letoram/tsmgo/screen"
	"github.com/letoram/tsmgo/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsSize(t *testing.T) {
	c := New(0, 0, 100)
	cols, rows := c.Screen().Size()
	assert.Equal(t, 80, cols)
	assert.Equal(t, 24, rows)
}

func TestNewHonorsExplicitSize(t *testing.T) {
	c := New(40, 12, 100)
	cols, rows := c.Screen().Size()
	assert.Equal(t, 40, cols)
	assert.Equal(t, 12, rows)
}

func TestResizeRejectsNonPositive(t *testing.T) {
	c := New(80, 24, 100)
	err := c.Resize(0, 10)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestResizeFiresHandler(t *testing.T) {
	var gotCols, gotRows int
	c := New(80, 24, 100, WithHandlers(Handlers{
		Resize: func(cols, rows int) { gotCols, gotRows = cols, rows },
	}))

	require.NoError(t, c.Resize(100, 30))
	assert.Equal(t, 100, gotCols)
	assert.Equal(t, 30, gotRows)

	cols, rows := c.Screen().Size()
	assert.Equal(t, 100, cols)
	assert.Equal(t, 30, rows)
}

func TestSendKeyHandlerConsumesEvent(t *testing.T) {
	consumed := false
	c := New(80, 24, 100, WithHandlers(Handlers{
		Key: func(ev input.KeyEvent) bool {
			consumed = true
			return true
		},
	}))

	err := c.SendKey(input.KeyEvent{Key: input.KeyRune, Rune: 'a'})
	require.NoError(t, err)
	assert.True(t, consumed)
}

func TestSendKeyWithoutBridgeIsNoop(t *testing.T) {
	c := New(80, 24, 100)
	err := c.SendKey(input.KeyEvent{Key: input.KeyRune, Rune: 'a'})
	assert.NoError(t, err)
}

func TestSendMouseHandlerConsumesEvent(t *testing.T) {
	consumed := false
	c := New(80, 24, 100, WithHandlers(Handlers{
		Mouse: func(ev input.MouseEvent) bool {
			consumed = true
			return true
		},
	}))

	err := c.SendMouse(input.MouseEvent{X: 1, Y: 1, Button: input.ButtonLeft, Action: input.MousePress})
	require.NoError(t, err)
	assert.True(t, consumed)
}

func TestProcessWithoutBridgeErrors(t *testing.T) {
	c := New(80, 24, 100)
	_, err := c.Process()
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestInsertLinesAboveMarginIsNoop(t *testing.T) {
	c := New(10, 5, 100)
	c.Screen().SetMargins(2, 4)
	assert.NotPanics(t, func() { c.InsertLines(1) })
}

func TestDeleteLinesWithinMargins(t *testing.T) {
	c := New(10, 5, 100)
	c.Screen().SetMargins(0, 4)
	assert.NotPanics(t, func() { c.DeleteLines(1) })
}

func TestRefreshAppliesSubstituteAndRecolor(t *testing.T) {
	c := New(4, 2, 100)
	sym := c.SymbolTable().Make('a')
	c.Screen().Write(sym, 1, c.Screen().DefaultAttr())

	replacement := c.SymbolTable().Make('Z')
	c.handlers = Handlers{
		Substitute: func(x, y int) (symbol.Symbol, bool) {
			if x == 0 && y == 0 {
				return replacement, true
			}
			return symbol.Symbol(0), false
		},
		Recolor: func(x, y int, attr screen.Attr) (screen.Attr, bool) {
			if x == 0 && y == 0 {
				attr.Custom = 7
				return attr, true
			}
			return attr, false
		},
	}

	var sawReplacement bool
	var sawCustom uint8
	c.Refresh(func(x, y int, sym symbol.Symbol, width int, attr screen.Attr, age uint32) {
		if x == 0 && y == 0 {
			sawReplacement = sym == replacement
			sawCustom = attr.Custom
		}
	})

	assert.True(t, sawReplacement)
	assert.Equal(t, uint8(7), sawCustom)
}

func TestScrollbackHintReportsTotal(t *testing.T) {
	c := New(10, 2, 100)
	offset, total := c.ScrollbackHint()
	assert.Equal(t, 0, offset)
	assert.Equal(t, c.Screen().ScrollbackCount(), total)
}

func TestDestroyIsIdempotent(t *testing.T) {
	c := New(10, 2, 100)
	require.NoError(t, c.Destroy())
	require.NoError(t, c.Destroy())
}

func TestDestroyClearsHandlers(t *testing.T) {
	called := false
	c := New(10, 2, 100, WithHandlers(Handlers{
		Reset: func() { called = true },
	}))
	require.NoError(t, c.Destroy())
	if c.handlers.Reset != nil {
		c.handlers.Reset()
	}
	assert.False(t, called)
}

func TestRequestSubwindowRefusedWithoutHandler(t *testing.T) {
	c := New(10, 2, 100)
	_, ok := c.RequestSubwindow(SubwindowPopup)
	assert.False(t, ok)
}

func TestRequestSubwindowAccepted(t *testing.T) {
	var gotKind SubwindowKind
	var gotID uuid.UUID
	c := New(10, 2, 100, WithHandlers(Handlers{
		Subwindow: func(kind SubwindowKind, id uuid.UUID) bool {
			gotKind, gotID = kind, id
			return true
		},
	}))

	handle, ok := c.RequestSubwindow(SubwindowDebug)
	require.True(t, ok)
	assert.Equal(t, SubwindowDebug, gotKind)
	assert.Equal(t, gotID, handle.ID)
	assert.NotEqual(t, uuid.Nil, handle.ID)
}

func TestRequestSubwindowRefusal(t *testing.T) {
	c := New(10, 2, 100, WithHandlers(Handlers{
		Subwindow: func(kind SubwindowKind, id uuid.UUID) bool { return false },
	}))
	_, ok := c.RequestSubwindow(SubwindowPopup)
	assert.False(t, ok)
}

func TestRequestWidgetUsesWidgetHandlerNotSubwindow(t *testing.T) {
	widgetCalled := false
	c := New(10, 2, 100, WithHandlers(Handlers{
		Subwindow: func(kind SubwindowKind, id uuid.UUID) bool {
			t.Fatal("Subwindow handler should not be consulted for RequestWidget")
			return false
		},
		Widget: func(kind WidgetKind, id uuid.UUID) bool {
			widgetCalled = true
			return true
		},
	}))

	handle, ok := c.RequestWidget(WidgetReadline)
	require.True(t, ok)
	assert.True(t, widgetCalled)
	assert.Equal(t, WidgetReadline, handle.Kind)
}

func TestRequestWidgetRefusedWithoutHandler(t *testing.T) {
	c := New(10, 2, 100)
	_, ok := c.RequestWidget(WidgetList)
	assert.False(t, ok)
}

func TestSubwindowKindStrings(t *testing.T) {
	assert.Equal(t, "tui", SubwindowTUI.String())
	assert.Equal(t, "popup", SubwindowPopup.String())
	assert.Equal(t, "handover", SubwindowHandover.String())
	assert.Equal(t, "debug", SubwindowDebug.String())
	assert.Equal(t, "accessibility", SubwindowAccessibility.String())
}

func TestWidgetKindStrings(t *testing.T) {
	assert.Equal(t, "list", WidgetList.String())
	assert.Equal(t, "buffer", WidgetBuffer.String())
	assert.Equal(t, "line", WidgetLine.String())
	assert.Equal(t, "readline", WidgetReadline.String())
}
