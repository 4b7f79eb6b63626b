// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pdf defines the drawing surface used by the document layout engine and
its production backend.

Architecture:

  - Canvas: a minimal, page-addressable drawing surface (text, rectangles,
    lines, images) measured in PDF points with a top-left origin.
  - FpdfCanvas: the go-pdf/fpdf implementation with embedded UTF-8 fonts.
  - Document: the in-memory result handed back to callers for serialisation.
  - Inspect/Merge: read-side helpers backed by pdfcpu.

Layout code never imports fpdf directly; tests substitute [pdftest.Recorder].
*/
package pdf

import "io"

// # Paper Sizes

// PaperSize describes a page in points (1" = 72pt).
type PaperSize struct {
	Name   string
	Width  float64
	Height float64
}

var (
	// A4 is 210mm x 297mm.
	A4 = PaperSize{Name: "A4", Width: 595.28, Height: 841.89}

	// Letter is 8.5" x 11".
	Letter = PaperSize{Name: "Letter", Width: 612, Height: 792}
)

// PaperSizeByName resolves a configured page size name (case-sensitive).
func PaperSizeByName(name string) (PaperSize, bool) {
	switch name {
	case A4.Name:
		return A4, true
	case Letter.Name:
		return Letter, true
	default:
		return PaperSize{}, false
	}
}

// # Drawing Attributes

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// RGB is shorthand for building a [Color].
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// FontStyle selects one of the two embedded font weights.
type FontStyle int

const (
	Regular FontStyle = iota
	Bold
)

// ImageFormat is the encoding hint passed when embedding raster data.
type ImageFormat string

const (
	ImagePNG  ImageFormat = "PNG"
	ImageJPEG ImageFormat = "JPG"
)

// Image is a raster registered with a canvas. Width and Height are the
// intrinsic dimensions and only their ratio is meaningful to layout code.
type Image struct {
	Name   string
	Width  float64
	Height float64
}

// FontSet holds the raw TrueType bytes for the two embedded weights.
type FontSet struct {
	Regular []byte
	Bold    []byte
}

// # Canvas Contract

// Canvas is a multi-page drawing surface.
//
// Coordinates are points from the top-left corner of the current page. Text
// is positioned by its baseline. Drawing always targets the current page,
// which [Canvas.AddPage] and [Canvas.SetPage] change.
type Canvas interface {
	PaperSize() PaperSize

	AddPage()
	SetPage(page int)
	PageCount() int

	SetFont(style FontStyle, size float64)
	StringWidth(text string) float64

	Text(x, y float64, text string, color Color)
	Rect(x, y, width, height float64, fill, stroke *Color)
	Line(x1, y1, x2, y2, width float64, color Color)

	EmbedImage(name string, data []byte, format ImageFormat) (*Image, error)
	DrawImage(image *Image, x, y, width, height float64)

	WriteTo(w io.Writer) (int64, error)
}

// CanvasFactory builds a fresh canvas for one document.
type CanvasFactory func(paper PaperSize, fonts FontSet, meta Metadata) (Canvas, error)
