// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pdf_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/taibuivan/hrdesk/internal/platform/pdf"
)

func goFonts() pdf.FontSet {
	return pdf.FontSet{Regular: goregular.TTF, Bold: gobold.TTF}
}

func testMeta() pdf.Metadata {
	return pdf.Metadata{
		Title:     "Test",
		Creator:   "hrdesk",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func render(t *testing.T, draw func(c *pdf.FpdfCanvas)) []byte {
	t.Helper()
	canvas, err := pdf.NewFpdfCanvas(pdf.A4, goFonts(), testMeta())
	require.NoError(t, err)
	draw(canvas)

	var buf bytes.Buffer
	n, err := canvas.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	return buf.Bytes()
}

/*
TestFpdfCanvas_RoundTrip verifies that a drawn document parses back with the
expected number of pages.
*/
func TestFpdfCanvas_RoundTrip(t *testing.T) {
	data := render(t, func(c *pdf.FpdfCanvas) {
		c.AddPage()
		c.SetFont(pdf.Bold, 16)
		c.Text(50, 60, "Reference", pdf.RGB(0, 0, 0))
		grey := pdf.RGB(240, 240, 240)
		c.Rect(50, 80, 200, 20, &grey, nil)
		c.Line(50, 110, 250, 110, 0.5, pdf.RGB(200, 200, 200))
		c.AddPage()
		c.SetPage(1)
		c.Text(50, 800, "Page 1 of 2", pdf.RGB(100, 100, 100))
	})

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	require.NoError(t, pdf.Validate(data))

	count, err := pdf.PageCount(data)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

/*
TestFpdfCanvas_WriteTo_AllPages verifies that pages after the current one are
still written when the caller moved back to an earlier page.
*/
func TestFpdfCanvas_WriteTo_AllPages(t *testing.T) {
	data := render(t, func(c *pdf.FpdfCanvas) {
		for i := 0; i < 3; i++ {
			c.AddPage()
			c.Text(50, 60, "Body", pdf.RGB(0, 0, 0))
		}
		c.SetPage(1)
	})

	count, err := pdf.PageCount(data)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

/*
TestFpdfCanvas_StringWidth verifies that measurement scales with font size.
*/
func TestFpdfCanvas_StringWidth(t *testing.T) {
	canvas, err := pdf.NewFpdfCanvas(pdf.Letter, goFonts(), testMeta())
	require.NoError(t, err)

	canvas.SetFont(pdf.Regular, 10)
	small := canvas.StringWidth("Reference check")
	canvas.SetFont(pdf.Regular, 20)
	large := canvas.StringWidth("Reference check")

	assert.Greater(t, small, 0.0)
	assert.InDelta(t, small*2, large, 0.01)
	assert.Equal(t, pdf.Letter, canvas.PaperSize())
}

/*
TestFpdfCanvas_EmbedImage covers both a valid PNG and undecodable input.
*/
func TestFpdfCanvas_EmbedImage(t *testing.T) {
	canvas, err := pdf.NewFpdfCanvas(pdf.A4, goFonts(), testMeta())
	require.NoError(t, err)
	canvas.AddPage()

	img, err := canvas.EmbedImage("logo", tinyPNG(t), pdf.ImagePNG)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, img.Width/img.Height, 0.001)
	canvas.DrawImage(img, 50, 50, 60, 30)

	_, err = canvas.EmbedImage("broken", []byte("not an image"), pdf.ImagePNG)
	assert.Error(t, err)

	// the canvas stays usable after a failed embed
	var buf bytes.Buffer
	_, err = canvas.WriteTo(&buf)
	require.NoError(t, err)
}

/*
TestNewFpdfCanvas_MissingFont verifies that both weights are required.
*/
func TestNewFpdfCanvas_MissingFont(t *testing.T) {
	_, err := pdf.NewFpdfCanvas(pdf.A4, pdf.FontSet{Regular: goregular.TTF}, testMeta())
	assert.Error(t, err)
}

/*
TestMerge verifies page counts add up across merged documents.
*/
func TestMerge(t *testing.T) {
	one := render(t, func(c *pdf.FpdfCanvas) { c.AddPage() })
	two := render(t, func(c *pdf.FpdfCanvas) { c.AddPage(); c.AddPage() })

	var out bytes.Buffer
	require.NoError(t, pdf.Merge(&out, one, two))

	count, err := pdf.PageCount(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	assert.Error(t, pdf.Merge(&out))
}

/*
TestPaperSizeByName resolves known names and rejects the rest.
*/
func TestPaperSizeByName(t *testing.T) {
	got, ok := pdf.PaperSizeByName("Letter")
	assert.True(t, ok)
	assert.Equal(t, pdf.Letter, got)

	_, ok = pdf.PaperSizeByName("A3")
	assert.False(t, ok)
}
