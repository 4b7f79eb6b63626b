// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hrdesk/internal/platform/respond"
	requestutil "github.com/taibuivan/hrdesk/internal/platform/request"
)

// # Handler Implementation

// Handler implements the HTTP layer for reference operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reference [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the staff router mounted at /references.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createReference)
	router.Post("/blank-pdf", handler.blankPDF)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getReference)
		subRouter.Post("/sent", handler.markSent)
		subRouter.Get("/pdf", handler.referencePDF)
	})

	return router
}

// ApplicationRoutes returns the staff router mounted at /applications/{applicationID}/references.
func (handler *Handler) ApplicationRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listReferences)
	router.Get("/pdf", handler.packPDF)

	return router
}

// RefereeRoutes returns the public router mounted at /referee.
func (handler *Handler) RefereeRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/submissions/{token}", handler.submitAnswers)

	return router
}

// # Lifecycle Endpoints

/*
POST /api/v1/references.

Description: Registers a reference request and returns the referee token.
The token is shown once and never stored in clear.

Response:
  - 201: Issued
  - 400: Validation errors
  - 409: Duplicate reference number for the application
*/
func (handler *Handler) createReference(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input NewReferenceRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	issued, err := handler.service.Create(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, issued)
}

/*
GET /api/v1/references/{id}.

Response:
  - 200: CompletedReference
  - 404: Reference not found
*/
func (handler *Handler) getReference(writer http.ResponseWriter, request *http.Request) {
	ref, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ref)
}

/*
POST /api/v1/references/{id}/sent.

Response:
  - 200: CompletedReference with sent_at
  - 404: Reference not found
  - 409: Reference already completed
*/
func (handler *Handler) markSent(writer http.ResponseWriter, request *http.Request) {
	ref, err := handler.service.MarkSent(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ref)
}

// GET /api/v1/applications/{applicationID}/references.
func (handler *Handler) listReferences(writer http.ResponseWriter, request *http.Request) {
	refs, err := handler.service.ListByApplication(request.Context(), requestutil.Param(request, "applicationID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, refs)
}

/*
POST /api/v1/referee/submissions/{token}.

Description: Public endpoint used by the referee form.

Response:
  - 200: CompletedReference
  - 400: Validation errors
  - 401: Unknown token
  - 409: Already completed
*/
func (handler *Handler) submitAnswers(writer http.ResponseWriter, request *http.Request) {
	var answers ReferenceAnswer
	if err := requestutil.DecodeJSON(request, &answers); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ref, err := handler.service.Submit(request.Context(), requestutil.Param(request, "token"), answers)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ref)
}

// # Document Endpoints

/*
GET /api/v1/references/{id}/pdf.

Response:
  - 200: application/pdf
  - 404: Reference not found
  - 422: Reference not completed
  - 500: Failed to generate PDF
*/
func (handler *Handler) referencePDF(writer http.ResponseWriter, request *http.Request) {
	rendered, err := handler.service.RenderCompleted(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.PDF(writer, rendered.Filename, rendered.Data)
}

/*
POST /api/v1/references/blank-pdf.

Description: Renders a blank template for a referee who answers on paper.

Request (Body):
  - ManualReferenceInput JSON object
*/
func (handler *Handler) blankPDF(writer http.ResponseWriter, request *http.Request) {
	var input ManualReferenceInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	rendered, err := handler.service.RenderBlank(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.PDF(writer, rendered.Filename, rendered.Data)
}

// GET /api/v1/applications/{applicationID}/references/pdf.
func (handler *Handler) packPDF(writer http.ResponseWriter, request *http.Request) {
	rendered, err := handler.service.RenderPack(request.Context(), requestutil.Param(request, "applicationID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.PDF(writer, rendered.Filename, rendered.Data)
}
