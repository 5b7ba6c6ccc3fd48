// Package terminal shows a rendered map in the terminal.
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"evnav/canvas"
	"evnav/grid"
)

// Preview draws a map canvas on a screen and scrolls it with the keyboard.
//
//	arrows        scroll by one row or cell
//	PgUp / PgDn   scroll by a page
//	Home          back to the top-left corner
//	q, Esc        quit
type Preview struct {
	screen tcell.Screen
	canvas *canvas.MapCanvas
	title  string
	status string

	offRow, offCol int
}

// NewPreview creates a preview on an initialised screen.
func NewPreview(screen tcell.Screen, c *canvas.MapCanvas, title string) *Preview {
	return &Preview{screen: screen, canvas: c, title: title}
}

// SetStatus sets the text of the bottom line.
func (p *Preview) SetStatus(s string) {
	p.status = s
}

// Offset returns the first map row and column on screen.
func (p *Preview) Offset() (row, col int) {
	return p.offRow, p.offCol
}

// Run draws the preview and handles events until the user quits or the
// screen is finalised.
func (p *Preview) Run() error {
	p.Draw()
	for {
		switch ev := p.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			p.screen.Sync()
			p.Draw()
		case *tcell.EventKey:
			if p.HandleKey(ev) {
				return nil
			}
			p.Draw()
		}
	}
}

// HandleKey applies one key press. It reports whether the preview should
// close.
func (p *Preview) HandleKey(ev *tcell.EventKey) bool {
	rows, _ := p.viewSize()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		p.scroll(-1, 0)
	case tcell.KeyDown:
		p.scroll(1, 0)
	case tcell.KeyLeft:
		p.scroll(0, -1)
	case tcell.KeyRight:
		p.scroll(0, 1)
	case tcell.KeyPgUp:
		p.scroll(-rows, 0)
	case tcell.KeyPgDn:
		p.scroll(rows, 0)
	case tcell.KeyHome:
		p.offRow, p.offCol = 0, 0
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'h':
			p.scroll(0, -1)
		case 'j':
			p.scroll(1, 0)
		case 'k':
			p.scroll(-1, 0)
		case 'l':
			p.scroll(0, 1)
		}
	}
	return false
}

// Draw paints the title, the visible part of the map and the status line.
func (p *Preview) Draw() {
	s := p.screen
	s.Clear()
	width, height := s.Size()

	drawText(s, 0, 0, width, p.title, tcell.StyleDefault.Bold(true))

	rows, cols := p.viewSize()
	mapRows, mapCols := p.canvas.Size()
	cw := p.canvas.CellWidth()
	for r := 0; r < rows && p.offRow+r < mapRows; r++ {
		for c := 0; c < cols && p.offCol+c < mapCols; c++ {
			at := grid.Coord{Row: p.offRow + r, Col: p.offCol + c}
			g, err := p.canvas.Get(at)
			if err != nil {
				continue
			}
			drawText(s, c*cw, r+1, width, p.canvas.Cell(at), GlyphStyle(g))
		}
	}

	status := p.status
	if mapRows > rows || mapCols > cols {
		status = fmt.Sprintf("%s  [%d,%d]", status, p.offRow, p.offCol)
	}
	drawText(s, 0, height-1, width, status+"  q: quit", tcell.StyleDefault.Reverse(true))
	s.Show()
}

// GlyphStyle returns the screen style of a glyph.
func GlyphStyle(g canvas.Glyph) tcell.Style {
	st := tcell.StyleDefault
	switch g.Kind {
	case canvas.KindObstacle:
		return st.Foreground(tcell.ColorGray).Dim(true)
	case canvas.KindSlot:
		if g.Color != "" {
			return st.Foreground(tcell.GetColor(g.Color))
		}
		return st.Foreground(tcell.ColorTeal)
	case canvas.KindLabel:
		st = st.Bold(true).Foreground(tcell.ColorBlack)
		if g.Color != "" {
			return st.Background(tcell.GetColor(g.Color))
		}
		return st.Background(tcell.ColorYellow)
	case canvas.KindPath:
		return st.Foreground(tcell.ColorGreen).Bold(true)
	case canvas.KindStop:
		return st.Foreground(tcell.ColorWhite).Background(tcell.ColorRed).Bold(true)
	}
	if g.Color != "" {
		st = st.Background(tcell.GetColor(g.Color)).Foreground(tcell.ColorBlack)
	}
	return st
}

// viewSize returns how many map rows and cells fit between the title and
// status lines.
func (p *Preview) viewSize() (rows, cols int) {
	width, height := p.screen.Size()
	rows = height - 2
	cols = width / p.canvas.CellWidth()
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return rows, cols
}

func (p *Preview) scroll(dRow, dCol int) {
	rows, cols := p.viewSize()
	mapRows, mapCols := p.canvas.Size()
	p.offRow = clamp(p.offRow+dRow, 0, max(mapRows-rows, 0))
	p.offCol = clamp(p.offCol+dCol, 0, max(mapCols-cols, 0))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// drawText writes s from column x, advancing by each rune's display width.
func drawText(s tcell.Screen, x, y, limit int, text string, style tcell.Style) {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if x+w > limit {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x += w
	}
}

// Show opens the terminal, runs a preview of c and restores the terminal.
func Show(c *canvas.MapCanvas, title, status string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to setup terminal: %w", err)
	}
	defer screen.Fini()

	p := NewPreview(screen, c, title)
	p.SetStatus(status)
	return p.Run()
}
