// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hrdesk/internal/platform/apperr"
	"github.com/taibuivan/hrdesk/internal/platform/respond"
)

func TestOK_WrapsData(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, map[string]string{"name": "Acme"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"name":"Acme"}}`, recorder.Body.String())
}

/*
TestError_Mapping checks that application errors keep their status and that
unknown errors are hidden behind a generic 500.
*/
func TestError_Mapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", apperr.NotFound("Reference"), http.StatusNotFound, "NOT_FOUND"},
		{"validation", apperr.ValidationError("bad", apperr.FieldError{Field: "name", Message: "required"}), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"plain", errors.New("pq: secret detail"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			respond.Error(recorder, request, tt.err)

			assert.Equal(t, tt.status, recorder.Code)

			var envelope respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, tt.code, envelope.Code)
			assert.NotContains(t, envelope.Error, "secret detail")
		})
	}
}

func TestPDF_Headers(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.PDF(recorder, "jane-doe-reference-1.pdf", []byte("%PDF-1.4"))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/pdf", recorder.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="jane-doe-reference-1.pdf"`, recorder.Header().Get("Content-Disposition"))
	assert.Equal(t, "8", recorder.Header().Get("Content-Length"))
	assert.Equal(t, "%PDF-1.4", recorder.Body.String())
}
