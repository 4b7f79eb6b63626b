// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"strings"

	"github.com/taibuivan/hrdesk/internal/platform/pdf"
)

const (
	// DefaultFontSize applies when a TextStyle leaves Size at zero.
	DefaultFontSize = 10.0

	// KeyValueLineHeight is the advance of one label/value line.
	KeyValueLineHeight = 14.0

	// lineGap is added to the font size to get the advance of a text line.
	lineGap = 4.0
)

// TextStyle controls a single run of text.
type TextStyle struct {
	Bold     bool
	Size     float64
	Color    *pdf.Color
	Centered bool
}

func (s TextStyle) size() float64 {
	if s.Size <= 0 {
		return DefaultFontSize
	}
	return s.Size
}

func (s TextStyle) font() pdf.FontStyle {
	if s.Bold {
		return pdf.Bold
	}
	return pdf.Regular
}

func (e *Engine) color(c *pdf.Color) pdf.Color {
	if c == nil {
		return e.theme.Text
	}
	return *c
}

// KeyValue is one "Label: value" pair.
type KeyValue struct {
	Label      string
	Value      string
	ValueColor *pdf.Color
}

// # Text

/*
DrawText draws one line at the cursor and advances by size + 4.

Description: Centred text is offset by its measured width within the current
column. The line moves to a new page first if it would cross the bottom margin.
*/
func (e *Engine) DrawText(text string, style TextStyle) {
	size := style.size()
	advance := size + lineGap
	e.EnsureSpace(advance)

	x := e.left()
	if style.Centered {
		x += (e.AvailableWidth() - e.measure(text, style.font(), size)) / 2
	}
	e.text(x, e.y+size, text, style.font(), size, e.color(style.Color))
	e.y += advance
}

/*
DrawWrappedText wraps text greedily to maxWidth and draws it line by line.

Description: A non-positive maxWidth means the available column width. Each
line is checked against the bottom margin separately, so a paragraph may
continue on the next page.
*/
func (e *Engine) DrawWrappedText(text string, maxWidth float64, style TextStyle) {
	if maxWidth <= 0 || maxWidth > e.AvailableWidth() {
		maxWidth = e.AvailableWidth()
	}
	size := style.size()
	lines := Wrap(text, maxWidth, func(s string) float64 {
		return e.measure(s, style.font(), size)
	})
	for _, line := range lines {
		e.DrawText(line, style)
	}
}

/*
Wrap breaks text into lines no wider than maxWidth.

Description: Words are split on whitespace and packed greedily. A word wider
than maxWidth is placed on its own line and left to overflow. A newline forces
a break and an empty line between two newlines is kept.

Parameters:
  - text: string
  - maxWidth: float64
  - measure: func(string) float64

Returns:
  - []string: nil for blank input
*/
func Wrap(text string, maxWidth float64, measure func(string) float64) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if measure(candidate) <= maxWidth {
				current = candidate
				continue
			}
			lines = append(lines, current)
			current = word
		}
		lines = append(lines, current)
	}
	return lines
}

// # Key / Value

// DrawKeyValue draws a bold label and a regular value on one line.
func (e *Engine) DrawKeyValue(kv KeyValue) {
	e.EnsureSpace(KeyValueLineHeight)
	e.drawPair(e.left(), kv)
	e.y += KeyValueLineHeight
}

/*
DrawKeyValueHorizontal splits the column evenly between items.

Description: Item i starts at left + i*(width/n). The cursor advances once.
*/
func (e *Engine) DrawKeyValueHorizontal(items []KeyValue) {
	if len(items) == 0 {
		return
	}
	e.EnsureSpace(KeyValueLineHeight)

	column := e.AvailableWidth() / float64(len(items))
	for i, kv := range items {
		e.drawPair(e.left()+float64(i)*column, kv)
	}
	e.y += KeyValueLineHeight
}

func (e *Engine) drawPair(x float64, kv KeyValue) {
	baseline := e.y + DefaultFontSize
	label := kv.Label + ": "
	e.text(x, baseline, label, pdf.Bold, DefaultFontSize, e.theme.Text)

	offset := e.measure(label, pdf.Bold, DefaultFontSize)
	e.text(x+offset, baseline, kv.Value, pdf.Regular, DefaultFontSize, e.color(kv.ValueColor))
}

// # Sections

const (
	sectionBand    = 20.0
	sectionAdvance = 28.0
	sectionTitle   = 11.0

	// sectionKeep keeps a heading together with its first lines.
	sectionKeep = sectionAdvance + 2*KeyValueLineHeight
)

// DrawSection draws a tinted band across the column with a bold title on it.
func (e *Engine) DrawSection(title string) {
	e.EnsureSpace(sectionKeep)

	band := e.theme.Band
	e.rect(e.page, e.left(), e.y, e.AvailableWidth(), sectionBand, &band, nil)
	e.text(e.left()+6, e.y+14, title, pdf.Bold, sectionTitle, e.theme.Text)
	e.y += sectionAdvance
}
