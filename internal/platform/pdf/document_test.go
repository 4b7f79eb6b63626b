// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pdf_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hrdesk/internal/platform/pdf"
	"github.com/taibuivan/hrdesk/internal/platform/pdf/pdftest"
)

/*
TestDocument_BytesCached verifies that serialisation is performed once and
WriteTo emits the same bytes.
*/
func TestDocument_BytesCached(t *testing.T) {
	rec := pdftest.NewRecorder(pdf.A4)
	rec.AddPage()
	rec.Text(10, 20, "hello", pdf.RGB(0, 0, 0))

	doc := pdf.NewDocument(rec)
	assert.Equal(t, 1, doc.PageCount())

	first, err := doc.Bytes()
	require.NoError(t, err)

	rec.Text(10, 40, "late", pdf.RGB(0, 0, 0))
	second, err := doc.Bytes()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var buf bytes.Buffer
	n, err := doc.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(first)), n)
	assert.Equal(t, first, buf.Bytes())
}
