// Package term runs the tcell screen loop: it decodes input into the
// interact machinery and blits the view components each frame.
package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"simview/config"
)

// Styles are the resolved tcell styles for the configured theme.
type Styles struct {
	Base     tcell.Style
	Popup    tcell.Style
	Hint     tcell.Style
	Accent   tcell.Style
	Disabled tcell.Style
	Armed    tcell.Style
}

// NewStyles resolves the theme's hex colors into tcell styles. Invalid
// colors were rejected at config load, so parsing here cannot fail.
func NewStyles(theme config.Theme) Styles {
	base := tcell.StyleDefault
	return Styles{
		Base:     base,
		Popup:    base.Foreground(hexColor(theme.Popup)),
		Hint:     base.Foreground(hexColor(theme.Hint)),
		Accent:   base.Foreground(hexColor(theme.Accent)).Bold(true),
		Disabled: base.Foreground(tcell.ColorGray).Dim(true),
		Armed:    base.Foreground(tcell.ColorRed).Bold(true),
	}
}

func hexColor(hex string) tcell.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.ColorDefault
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// newScreen initialises a tcell screen.
func newScreen() (tcell.Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	return s, nil
}

// drawText writes a string at (x, y), advancing by display width so wide
// runes stay aligned.
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		s.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
}

// drawBox draws a bordered rectangle.
func drawBox(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	for cx := x + 1; cx < x+w-1; cx++ {
		s.SetContent(cx, y, tcell.RuneHLine, nil, style)
		s.SetContent(cx, y+h-1, tcell.RuneHLine, nil, style)
	}
	for cy := y + 1; cy < y+h-1; cy++ {
		s.SetContent(x, cy, tcell.RuneVLine, nil, style)
		s.SetContent(x+w-1, cy, tcell.RuneVLine, nil, style)
		for cx := x + 1; cx < x+w-1; cx++ {
			s.SetContent(cx, cy, ' ', nil, style)
		}
	}
	s.SetContent(x, y, tcell.RuneULCorner, nil, style)
	s.SetContent(x+w-1, y, tcell.RuneURCorner, nil, style)
	s.SetContent(x, y+h-1, tcell.RuneLLCorner, nil, style)
	s.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, nil, style)
}
