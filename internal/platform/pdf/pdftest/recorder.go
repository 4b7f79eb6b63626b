// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pdftest provides a recording [pdf.Canvas] for layout assertions.

Text width is approximated as half the font size per rune, which is enough to
exercise wrapping and centring deterministically without real fonts.
*/
package pdftest

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/hrdesk/internal/platform/pdf"
)

// OpKind names a drawing primitive.
type OpKind string

const (
	OpText  OpKind = "text"
	OpRect  OpKind = "rect"
	OpLine  OpKind = "line"
	OpImage OpKind = "image"
)

// Op is one recorded drawing call. Page is 1-based.
type Op struct {
	Kind   OpKind
	Page   int
	X, Y   float64
	W, H   float64
	Text   string
	Style  pdf.FontStyle
	Size   float64
	Color  pdf.Color
	Fill   *pdf.Color
	Stroke *pdf.Color
}

// Recorder implements [pdf.Canvas] in memory.
type Recorder struct {
	Ops []Op

	paper  pdf.PaperSize
	pages  int
	page   int
	style  pdf.FontStyle
	size   float64
	images map[string]*pdf.Image
}

// NewRecorder returns an empty recorder for the given paper.
func NewRecorder(paper pdf.PaperSize) *Recorder {
	return &Recorder{paper: paper, size: 10, images: make(map[string]*pdf.Image)}
}

// Factory returns a [pdf.CanvasFactory] that hands out new recorders and
// remembers the last one built.
func Factory(last **Recorder) pdf.CanvasFactory {
	return func(paper pdf.PaperSize, _ pdf.FontSet, _ pdf.Metadata) (pdf.Canvas, error) {
		rec := NewRecorder(paper)
		if last != nil {
			*last = rec
		}
		return rec, nil
	}
}

func (r *Recorder) PaperSize() pdf.PaperSize { return r.paper }

func (r *Recorder) AddPage() {
	r.pages++
	r.page = r.pages
}

func (r *Recorder) SetPage(page int) {
	if page >= 1 && page <= r.pages {
		r.page = page
	}
}

func (r *Recorder) PageCount() int { return r.pages }

func (r *Recorder) SetFont(style pdf.FontStyle, size float64) {
	r.style = style
	r.size = size
}

func (r *Recorder) StringWidth(text string) float64 {
	return float64(utf8.RuneCountInString(text)) * r.size * 0.5
}

func (r *Recorder) Text(x, y float64, text string, color pdf.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Page: r.page, X: x, Y: y, Text: text, Style: r.style, Size: r.size, Color: color})
}

func (r *Recorder) Rect(x, y, width, height float64, fill, stroke *pdf.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, Page: r.page, X: x, Y: y, W: width, H: height, Fill: fill, Stroke: stroke})
}

func (r *Recorder) Line(x1, y1, x2, y2, width float64, color pdf.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Page: r.page, X: x1, Y: y1, W: x2 - x1, H: y2 - y1, Size: width, Color: color})
}

// EmbedImage accepts PNG and JPEG data and rejects anything else.
func (r *Recorder) EmbedImage(name string, data []byte, _ pdf.ImageFormat) (*pdf.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("pdftest: embed image %q: %w", name, err)
	}
	img := &pdf.Image{Name: name, Width: float64(cfg.Width), Height: float64(cfg.Height)}
	r.images[name] = img
	return img, nil
}

func (r *Recorder) DrawImage(img *pdf.Image, x, y, width, height float64) {
	if img == nil {
		return
	}
	r.Ops = append(r.Ops, Op{Kind: OpImage, Page: r.page, X: x, Y: y, W: width, H: height, Text: img.Name})
}

// WriteTo dumps every op as one line, so equal drawings produce equal bytes.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "paper %s %.2fx%.2f pages %d\n", r.paper.Name, r.paper.Width, r.paper.Height, r.pages)
	for _, op := range r.Ops {
		fmt.Fprintf(&sb, "%d %s %.2f %.2f %.2f %.2f %d %.1f %v %q\n",
			op.Page, op.Kind, op.X, op.Y, op.W, op.H, op.Style, op.Size, op.Color, op.Text)
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// # Query Helpers

// Texts returns the text of every text op in drawing order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Find returns the first text op whose text contains substr.
func (r *Recorder) Find(substr string) (Op, bool) {
	for _, op := range r.Ops {
		if op.Kind == OpText && strings.Contains(op.Text, substr) {
			return op, true
		}
	}
	return Op{}, false
}

// FindAll returns every text op whose text contains substr.
func (r *Recorder) FindAll(substr string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == OpText && strings.Contains(op.Text, substr) {
			out = append(out, op)
		}
	}
	return out
}

// Count returns the number of ops of the given kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// OnPage returns the ops drawn on page.
func (r *Recorder) OnPage(page int) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Page == page {
			out = append(out, op)
		}
	}
	return out
}
