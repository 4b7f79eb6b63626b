// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pdf

import "io"

// countWriter tracks bytes passed through to w.
type countWriter struct {
	w io.Writer
	n int64
}

// Write implements io.Writer.
func (cw *countWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n) // Write can be called many times by the encoder
	return n, err
}
