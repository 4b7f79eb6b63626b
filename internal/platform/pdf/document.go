// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pdf

import (
	"bytes"
	"io"
	"time"
)

// Metadata is written into the document information dictionary.
//
// CreatedAt is fixed by the caller so identical inputs serialise identically.
type Metadata struct {
	Title     string
	Subject   string
	Creator   string
	CreatedAt time.Time
}

// Document is a fully composed, not yet serialised PDF.
//
// It is not safe for concurrent use. Serialisation happens once; later calls
// return the cached bytes.
type Document struct {
	canvas Canvas
	pages  int
	data   []byte
	err    error
	done   bool
}

// NewDocument wraps a composed canvas.
func NewDocument(canvas Canvas) *Document {
	return &Document{canvas: canvas, pages: canvas.PageCount()}
}

// PageCount reports the number of pages composed.
func (document *Document) PageCount() int {
	return document.pages
}

// Canvas exposes the underlying surface, mainly for inspection in tests.
func (document *Document) Canvas() Canvas {
	return document.canvas
}

// Bytes serialises the document.
func (document *Document) Bytes() ([]byte, error) {
	if !document.done {
		var buffer bytes.Buffer
		_, document.err = document.canvas.WriteTo(&buffer)
		document.data = buffer.Bytes()
		document.done = true
	}
	return document.data, document.err
}

// WriteTo implements [io.WriterTo].
func (document *Document) WriteTo(w io.Writer) (int64, error) {
	data, err := document.Bytes()
	if err != nil {
		return 0, err
	}
	written, err := w.Write(data)
	return int64(written), err
}
