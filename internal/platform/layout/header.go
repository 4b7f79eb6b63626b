// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"fmt"

	"github.com/taibuivan/hrdesk/internal/platform/pdf"
)

const (
	bannerHeight     = 70.0
	bannerLogoHeight = 118.0

	// LogoWidth is the display width of the header logo.
	LogoWidth     = 60.0
	logoMaxHeight = 40.0
	logoTop       = 10.0

	nameSize    = 16.0
	nameMinSize = 10.0
	titleSize   = 12.0
	footerSize  = 9.0
)

// Header is the content of the first-page banner.
type Header struct {
	CompanyName string
	Title       string
	Logo        *pdf.Image
}

// LogoSize scales img to [LogoWidth] keeping its aspect ratio, shrinking
// further when the result would be taller than the logo slot.
func LogoSize(img *pdf.Image) (width, height float64) {
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return 0, 0
	}
	width = LogoWidth
	height = width * img.Height / img.Width
	if height > logoMaxHeight {
		height = logoMaxHeight
		width = height * img.Width / img.Height
	}
	return width, height
}

/*
DrawHeader draws the banner at the top of the first page.

Description: The banner is taller when a logo is present. The company name is
reduced in size until it fits the column. The cursor is left below the divider.
*/
func (e *Engine) DrawHeader(h Header) {
	top := e.y
	height, offset := bannerHeight, 0.0
	if h.Logo != nil {
		height, offset = bannerLogoHeight, logoMaxHeight+logoTop-2

		width, imgHeight := LogoSize(h.Logo)
		x := e.left() + (e.AvailableWidth()-width)/2
		e.emit(command{kind: cmdImage, page: e.page, x: x, y: top + logoTop, w: width, h: imgHeight, image: h.Logo})
	}

	size := nameSize
	for size > nameMinSize && e.measure(h.CompanyName, pdf.Bold, size) > e.AvailableWidth()-20 {
		size--
	}
	e.centered(h.CompanyName, top+offset+28, pdf.Bold, size, e.theme.Text)
	e.centered(h.Title, top+offset+48, pdf.Regular, titleSize, e.theme.Muted)

	e.line(e.left(), top+height, e.left()+e.AvailableWidth(), top+height, 1, e.theme.Divider)
	e.y = top + height + 16
}

func (e *Engine) centered(s string, baseline float64, style pdf.FontStyle, size float64, color pdf.Color) {
	x := e.left() + (e.AvailableWidth()-e.measure(s, style, size))/2
	e.text(x, baseline, s, style, size, color)
}

// # Footers

// FooterText is the label stamped on each page.
func FooterText(page, total int) string {
	return fmt.Sprintf("Page %d of %d", page, total)
}

// DrawFooter stamps one page without moving the cursor.
func (e *Engine) DrawFooter(page, total int) {
	label := FooterText(page, total)
	x := e.margins.Left + (e.ContentWidth()-e.measure(label, pdf.Regular, footerSize))/2
	e.paint(command{kind: cmdText, page: page, x: x, y: e.paper.Height - 30, text: label, style: pdf.Regular, size: footerSize, color: e.theme.Muted})
}

// DrawFooters stamps every page once composition is finished.
func (e *Engine) DrawFooters() {
	total := e.canvas.PageCount()
	for page := 1; page <= total; page++ {
		e.DrawFooter(page, total)
	}
	e.restore()
}
