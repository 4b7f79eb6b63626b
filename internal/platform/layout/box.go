// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import "github.com/taibuivan/hrdesk/internal/platform/pdf"

// BoxPadding is the inset between a box edge and its content.
const BoxPadding = 8.0

// BoxStyle decorates a box. A nil colour is not painted.
type BoxStyle struct {
	Border     *pdf.Color
	Background *pdf.Color
}

/*
DrawBox draws content and encloses it in a decorated rectangle.

Description: The content is recorded rather than painted. Once it has run the
covered extent is known, so the background and border are emitted first and
the content replayed on top. Content that crosses a page break produces one
rectangle per page. Boxes nest.

Parameters:
  - style: BoxStyle
  - content: func() (draws through the same Engine)
*/
func (e *Engine) DrawBox(style BoxStyle, content func()) {
	e.EnsureSpace(2*BoxPadding + KeyValueLineHeight)

	startPage, startY := e.page, e.y
	ops := make([]command, 0, 32)
	e.buffer = append(e.buffer, &ops)
	e.inset += BoxPadding
	e.y += BoxPadding

	content()

	e.y += BoxPadding
	e.inset -= BoxPadding
	e.buffer = e.buffer[:len(e.buffer)-1]

	x, width := e.left(), e.AvailableWidth()
	for page := startPage; page <= e.page; page++ {
		top, bottom := e.margins.Top, e.bottom()
		if page == startPage {
			top = startY
		}
		if page == e.page {
			bottom = e.y
		}
		e.rect(page, x, top, width, bottom-top, style.Background, style.Border)
	}
	for _, op := range ops {
		e.emit(op)
	}
	e.restore()
}
