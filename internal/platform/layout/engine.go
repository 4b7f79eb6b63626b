// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package layout composes documents top to bottom over a [pdf.Canvas].

Architecture:

  - Engine: owns the single vertical cursor and the current page index.
  - Primitives: text, wrapped text, key/value rows, section bands, checkboxes,
    boxes, header and footers. Every primitive that advances the cursor checks
    the remaining space first and moves to a new page when it would cross the
    bottom margin.
  - Command buffer: boxes record their content as commands, measure it, draw
    the decoration and then replay the content on top.

An Engine is bound to one document and is not safe for concurrent use.
Independent documents may be composed in parallel.
*/
package layout

import (
	"github.com/taibuivan/hrdesk/internal/platform/pdf"
)

// # Geometry

// Margins in points.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargins leaves 50pt on every side.
var DefaultMargins = Margins{Top: 50, Right: 50, Bottom: 50, Left: 50}

// Theme holds the palette used by the primitives.
type Theme struct {
	Text          pdf.Color
	Muted         pdf.Color
	Success       pdf.Color
	Band          pdf.Color
	Border        pdf.Color
	BoxBackground pdf.Color
	Divider       pdf.Color
}

// DefaultTheme is a neutral grey palette with a green accent for ticks.
var DefaultTheme = Theme{
	Text:          pdf.RGB(33, 37, 41),
	Muted:         pdf.RGB(134, 142, 150),
	Success:       pdf.RGB(25, 135, 84),
	Band:          pdf.RGB(233, 236, 239),
	Border:        pdf.RGB(206, 212, 218),
	BoxBackground: pdf.RGB(248, 249, 250),
	Divider:       pdf.RGB(173, 181, 189),
}

// # Engine

// Engine is the layout context for one document.
type Engine struct {
	canvas  pdf.Canvas
	paper   pdf.PaperSize
	margins Margins
	theme   Theme

	y      float64
	page   int
	inset  float64
	dirty  bool
	drawn  int // canvas page the backend currently targets
	buffer []*[]command
}

// Option configures an [Engine].
type Option func(*Engine)

// WithMargins overrides [DefaultMargins].
func WithMargins(m Margins) Option {
	return func(e *Engine) { e.margins = m }
}

// WithTheme overrides [DefaultTheme].
func WithTheme(t Theme) Option {
	return func(e *Engine) { e.theme = t }
}

/*
New starts a document on canvas and opens its first page.

Parameters:
  - canvas: pdf.Canvas (must have no pages yet)
  - opts: ...Option

Returns:
  - *Engine: cursor at the top margin of page 1
*/
func New(canvas pdf.Canvas, opts ...Option) *Engine {
	e := &Engine{
		canvas:  canvas,
		paper:   canvas.PaperSize(),
		margins: DefaultMargins,
		theme:   DefaultTheme,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.newPage()
	return e
}

// Y returns the cursor position on the current page.
func (e *Engine) Y() float64 { return e.y }

// Page returns the 1-based index of the current page.
func (e *Engine) Page() int { return e.page }

// Margins returns the page margins in use.
func (e *Engine) Margins() Margins { return e.margins }

// Theme returns the palette in use.
func (e *Engine) Theme() Theme { return e.theme }

// ContentWidth is the horizontal space between the side margins.
func (e *Engine) ContentWidth() float64 {
	return e.paper.Width - e.margins.Left - e.margins.Right
}

// AvailableWidth is the content width minus any enclosing box padding.
func (e *Engine) AvailableWidth() float64 {
	return e.ContentWidth() - 2*e.inset
}

// left is the x of the current content column.
func (e *Engine) left() float64 {
	return e.margins.Left + e.inset
}

// bottom is the lowest y content may reach.
func (e *Engine) bottom() float64 {
	return e.paper.Height - e.margins.Bottom
}

// atTop reports whether the cursor sits on an untouched page.
func (e *Engine) atTop() bool {
	return !e.dirty && e.y <= e.margins.Top
}

// # Pagination

/*
EnsureSpace guarantees height points below the cursor on the current page.

Description: When the block would cross the bottom margin a new page is
appended and the cursor reset to the top margin. An untouched page is never
abandoned, so a block taller than a whole page is drawn from the top and
allowed to overflow.

Returns:
  - bool: true when a page was added
*/
func (e *Engine) EnsureSpace(height float64) bool {
	if e.y+height <= e.bottom() || e.atTop() {
		return false
	}
	e.newPage()
	return true
}

// PageBreak starts a new page unless the current one is still untouched.
func (e *Engine) PageBreak() {
	if e.atTop() {
		return
	}
	e.newPage()
}

// Advance moves the cursor down without drawing.
func (e *Engine) Advance(dy float64) {
	e.y += dy
}

func (e *Engine) newPage() {
	if count := e.canvas.PageCount(); e.drawn != count && count > 0 {
		e.canvas.SetPage(count)
	}
	e.canvas.AddPage()
	e.page = e.canvas.PageCount()
	e.drawn = e.page
	e.y = e.margins.Top
	e.dirty = false
}

// # Command Buffer

type commandKind int

const (
	cmdText commandKind = iota
	cmdRect
	cmdLine
	cmdImage
)

// command is one deferred drawing call bound to a page.
type command struct {
	kind   commandKind
	page   int
	x, y   float64
	w, h   float64
	text   string
	style  pdf.FontStyle
	size   float64
	color  pdf.Color
	fill   *pdf.Color
	stroke *pdf.Color
	image  *pdf.Image
}

// emit sends a command to the innermost open box or straight to the canvas.
func (e *Engine) emit(c command) {
	e.dirty = true
	if n := len(e.buffer); n > 0 {
		*e.buffer[n-1] = append(*e.buffer[n-1], c)
		return
	}
	e.paint(c)
}

func (e *Engine) paint(c command) {
	if c.page != e.drawn {
		e.canvas.SetPage(c.page)
		e.drawn = c.page
	}
	switch c.kind {
	case cmdText:
		e.canvas.SetFont(c.style, c.size)
		e.canvas.Text(c.x, c.y, c.text, c.color)
	case cmdRect:
		e.canvas.Rect(c.x, c.y, c.w, c.h, c.fill, c.stroke)
	case cmdLine:
		e.canvas.Line(c.x, c.y, c.x+c.w, c.y+c.h, c.size, c.color)
	case cmdImage:
		e.canvas.DrawImage(c.image, c.x, c.y, c.w, c.h)
	}
}

// restore points the backend back at the page the cursor is on.
func (e *Engine) restore() {
	if e.drawn != e.page {
		e.canvas.SetPage(e.page)
		e.drawn = e.page
	}
}

func (e *Engine) text(x, baseline float64, s string, style pdf.FontStyle, size float64, color pdf.Color) {
	e.emit(command{kind: cmdText, page: e.page, x: x, y: baseline, text: s, style: style, size: size, color: color})
}

func (e *Engine) rect(page int, x, y, w, h float64, fill, stroke *pdf.Color) {
	e.emit(command{kind: cmdRect, page: page, x: x, y: y, w: w, h: h, fill: fill, stroke: stroke})
}

func (e *Engine) line(x1, y1, x2, y2, width float64, color pdf.Color) {
	e.emit(command{kind: cmdLine, page: e.page, x: x1, y: y1, w: x2 - x1, h: y2 - y1, size: width, color: color})
}

// measure returns the rendered width of s in the given font.
func (e *Engine) measure(s string, style pdf.FontStyle, size float64) float64 {
	e.canvas.SetFont(style, size)
	return e.canvas.StringWidth(s)
}
