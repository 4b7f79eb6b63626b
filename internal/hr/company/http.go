// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package company

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hrdesk/internal/platform/middleware"
	"github.com/taibuivan/hrdesk/internal/platform/respond"
	requestutil "github.com/taibuivan/hrdesk/internal/platform/request"
	"github.com/taibuivan/hrdesk/internal/platform/sec"
)

// Handler implements the HTTP layer for company settings.
type Handler struct {
	service *Service
}

// NewHandler constructs a new company [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router mounted at /company. Reading requires staff,
// writing requires admin.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(middleware.RequireRole(sec.RoleStaff)).Get("/settings", handler.getSettings)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Put("/settings", handler.updateSettings)

	return router
}

/*
GET /api/v1/company/settings.

Response:
  - 200: Settings
*/
func (handler *Handler) getSettings(writer http.ResponseWriter, request *http.Request) {
	settings, err := handler.service.Get(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, settings)
}

/*
PUT /api/v1/company/settings.

Request (Body):
  - name: string (required, max 200)
  - logo_url: string (http(s) URL, empty clears)

Response:
  - 200: Settings
  - 400: Validation errors
  - 403: Not an admin
*/
func (handler *Handler) updateSettings(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	settings, err := handler.service.Update(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, settings)
}
