// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// fontFamily is the name both embedded weights are registered under.
const fontFamily = "body"

// FpdfCanvas is the production [Canvas] backed by go-pdf/fpdf.
type FpdfCanvas struct {
	doc   *fpdf.Fpdf
	paper PaperSize
}

/*
NewFpdfCanvas prepares an empty document with both font weights embedded.

Description: Automatic page breaking is disabled because pagination is owned by
the layout engine. Catalog sorting and a fixed creation date keep the output
byte-stable for identical input.

Parameters:
  - paper: PaperSize
  - fonts: FontSet (raw TTF bytes, both required)
  - meta: Metadata

Returns:
  - *FpdfCanvas, error
*/
func NewFpdfCanvas(paper PaperSize, fonts FontSet, meta Metadata) (*FpdfCanvas, error) {
	if len(fonts.Regular) == 0 || len(fonts.Bold) == 0 {
		return nil, errors.New("pdf: both font weights are required")
	}

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: paper.Width, Ht: paper.Height},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	doc.SetCatalogSort(true)
	doc.SetCreationDate(meta.CreatedAt)
	doc.SetModificationDate(meta.CreatedAt)
	doc.SetTitle(meta.Title, true)
	doc.SetSubject(meta.Subject, true)
	doc.SetCreator(meta.Creator, true)

	doc.AddUTF8FontFromBytes(fontFamily, "", fonts.Regular)
	doc.AddUTF8FontFromBytes(fontFamily, "B", fonts.Bold)
	if doc.Err() {
		return nil, fmt.Errorf("pdf: embed fonts: %w", doc.Error())
	}
	doc.SetFont(fontFamily, "", 10)

	return &FpdfCanvas{doc: doc, paper: paper}, nil
}

// NewFpdfFactory adapts [NewFpdfCanvas] to [CanvasFactory].
func NewFpdfFactory() CanvasFactory {
	return func(paper PaperSize, fonts FontSet, meta Metadata) (Canvas, error) {
		return NewFpdfCanvas(paper, fonts, meta)
	}
}

func (c *FpdfCanvas) PaperSize() PaperSize { return c.paper }

func (c *FpdfCanvas) AddPage() { c.doc.AddPage() }

func (c *FpdfCanvas) SetPage(page int) { c.doc.SetPage(page) }

func (c *FpdfCanvas) PageCount() int { return c.doc.PageCount() }

func (c *FpdfCanvas) SetFont(style FontStyle, size float64) {
	styleStr := ""
	if style == Bold {
		styleStr = "B"
	}
	c.doc.SetFont(fontFamily, styleStr, size)
}

func (c *FpdfCanvas) StringWidth(text string) float64 {
	return c.doc.GetStringWidth(text)
}

func (c *FpdfCanvas) Text(x, y float64, text string, color Color) {
	c.doc.SetTextColor(int(color.R), int(color.G), int(color.B))
	c.doc.Text(x, y, text)
}

func (c *FpdfCanvas) Rect(x, y, width, height float64, fill, stroke *Color) {
	style := ""
	if fill != nil {
		c.doc.SetFillColor(int(fill.R), int(fill.G), int(fill.B))
		style += "F"
	}
	if stroke != nil {
		c.doc.SetDrawColor(int(stroke.R), int(stroke.G), int(stroke.B))
		c.doc.SetLineWidth(0.75)
		style += "D"
	}
	if style == "" {
		return
	}
	c.doc.Rect(x, y, width, height, style)
}

func (c *FpdfCanvas) Line(x1, y1, x2, y2, width float64, color Color) {
	c.doc.SetDrawColor(int(color.R), int(color.G), int(color.B))
	c.doc.SetLineWidth(width)
	c.doc.Line(x1, y1, x2, y2)
}

/*
EmbedImage registers raster data for later placement.

Description: A decoding failure is reported to the caller and cleared from the
fpdf error state so the rest of the document can still be produced.
*/
func (c *FpdfCanvas) EmbedImage(name string, data []byte, format ImageFormat) (*Image, error) {
	info := c.doc.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: string(format)}, bytes.NewReader(data))
	if c.doc.Err() {
		err := c.doc.Error()
		c.doc.ClearError()
		return nil, fmt.Errorf("pdf: embed image %q: %w", name, err)
	}
	if info == nil {
		return nil, fmt.Errorf("pdf: embed image %q: no image info", name)
	}
	return &Image{Name: name, Width: info.Width(), Height: info.Height()}, nil
}

func (c *FpdfCanvas) DrawImage(image *Image, x, y, width, height float64) {
	if image == nil {
		return
	}
	c.doc.ImageOptions(image.Name, x, y, width, height, false, fpdf.ImageOptions{}, 0, "")
}

// WriteTo serialises every page of the document. The canvas must not be drawn
// on afterwards.
func (c *FpdfCanvas) WriteTo(w io.Writer) (int64, error) {
	// fpdf only emits pages up to the current one.
	c.doc.SetPage(c.doc.PageCount())
	cw := &countWriter{w: w}
	if err := c.doc.Output(cw); err != nil {
		return cw.n, fmt.Errorf("pdf: output: %w", err)
	}
	return cw.n, nil
}
