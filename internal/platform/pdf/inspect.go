// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// relaxedConfig mirrors the tolerance applied to documents from other producers.
func relaxedConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageCount parses a serialised PDF and returns its page count.
func PageCount(data []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(data), relaxedConfig())
	if err != nil {
		return 0, fmt.Errorf("pdf: page count: %w", err)
	}
	return count, nil
}

// Validate checks a serialised PDF for structural correctness.
func Validate(data []byte) error {
	if err := api.Validate(bytes.NewReader(data), relaxedConfig()); err != nil {
		return fmt.Errorf("pdf: validate: %w", err)
	}
	return nil
}

/*
Merge concatenates serialised PDFs in order into w.

Description: A single input is copied through unchanged.

Returns:
  - error: when no input is given or any input cannot be parsed
*/
func Merge(w io.Writer, documents ...[]byte) error {
	switch len(documents) {
	case 0:
		return errors.New("pdf: merge: no documents")
	case 1:
		_, err := w.Write(documents[0])
		return err
	}

	readers := make([]io.ReadSeeker, 0, len(documents))
	for _, data := range documents {
		readers = append(readers, bytes.NewReader(data))
	}
	if err := api.MergeRaw(readers, w, false, relaxedConfig()); err != nil {
		return fmt.Errorf("pdf: merge: %w", err)
	}
	return nil
}
