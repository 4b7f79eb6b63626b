// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"net/http"

	"github.com/taibuivan/hrdesk/internal/platform/apperr"
)

var errGenerationFailed = apperr.New(http.StatusInternalServerError, "PDF_GENERATION_FAILED", "Failed to generate PDF")

// # Domain Errors

var (
	// ErrReferenceNotFound is returned when no request matches the identifier.
	ErrReferenceNotFound = apperr.NotFound("Reference")

	// ErrAlreadyCompleted is returned when answers were already submitted.
	ErrAlreadyCompleted = apperr.Conflict("Reference has already been completed")

	// ErrNotCompleted is returned when a completed document is requested for a pending reference.
	ErrNotCompleted = apperr.Unprocessable("Reference has not been completed yet")

	// ErrInvalidToken is returned for malformed or unknown referee tokens.
	ErrInvalidToken = apperr.Unauthorized("Invalid or expired reference link")

	// ErrNoCompletedReferences is returned when a pack is requested for an application without completed references.
	ErrNoCompletedReferences = apperr.Unprocessable("Application has no completed references")
)

// generationFailed wraps a renderer failure as a client-safe 500.
func generationFailed(cause error) *apperr.AppError {
	return errGenerationFailed.WithCause(cause)
}
