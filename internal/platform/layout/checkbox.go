// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"math"

	"github.com/taibuivan/hrdesk/internal/platform/pdf"
)

const (
	// GlyphChecked and GlyphUnchecked are drawn with the embedded font.
	GlyphChecked   = "☑"
	GlyphUnchecked = "☐"

	// InlinePitch is the horizontal step between inline checkboxes.
	InlinePitch = 60.0

	inlineAdvance = 16.0
	glyphSize     = 12.0
	labelOffset   = 16.0

	gridRow     = 20.0
	gridPadding = 24.0
)

// Column selects a half of the two-column checkbox grid.
type Column int

const (
	LeftColumn Column = iota
	RightColumn
)

// Check is a labelled checkbox state.
type Check struct {
	Label   string
	Checked bool
}

// GridHeight is the height of a two-column grid holding n checkboxes.
func GridHeight(n int) float64 {
	rows := math.Ceil(float64(n) / 2)
	return rows*gridRow + gridPadding
}

// DrawCheckbox draws a glyph and label in one grid column. The cursor does
// not move; the caller advances once per row.
func (e *Engine) DrawCheckbox(label string, checked bool, column Column) {
	x := e.left()
	if column == RightColumn {
		x += e.AvailableWidth() / 2
	}
	e.drawCheck(x, Check{Label: label, Checked: checked})
}

func (e *Engine) drawCheck(x float64, check Check) {
	glyph, color := GlyphUnchecked, e.theme.Muted
	if check.Checked {
		glyph, color = GlyphChecked, e.theme.Success
	}
	baseline := e.y + glyphSize
	e.text(x, baseline, glyph, pdf.Regular, glyphSize, color)
	e.text(x+labelOffset, baseline, check.Label, pdf.Regular, DefaultFontSize, e.theme.Text)
}

// DrawInlineCheckboxes draws options left to right at a fixed pitch on one line.
func (e *Engine) DrawInlineCheckboxes(options []Check) {
	if len(options) == 0 {
		return
	}
	e.EnsureSpace(inlineAdvance)
	for i, option := range options {
		e.drawCheck(e.left()+float64(i)*InlinePitch, option)
	}
	e.y += inlineAdvance
}

/*
DrawCheckboxGrid draws checks two per row inside a tinted bordered panel.

Description: The panel height comes from [GridHeight] and is drawn before the
boxes, so the grid never splits across pages.
*/
func (e *Engine) DrawCheckboxGrid(checks []Check) {
	if len(checks) == 0 {
		return
	}
	height := GridHeight(len(checks))
	e.EnsureSpace(height)

	fill, stroke := e.theme.BoxBackground, e.theme.Border
	e.rect(e.page, e.left(), e.y, e.AvailableWidth(), height, &fill, &stroke)

	e.y += gridPadding / 2
	for i := 0; i < len(checks); i += 2 {
		e.DrawCheckbox(checks[i].Label, checks[i].Checked, LeftColumn)
		if i+1 < len(checks) {
			e.DrawCheckbox(checks[i+1].Label, checks[i+1].Checked, RightColumn)
		}
		e.y += gridRow
	}
	e.y += gridPadding / 2
}
