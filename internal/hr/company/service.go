// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package company

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/hrdesk/internal/platform/validate"
)

const maxNameLength = 200

// UpdateInput is the editable part of [Settings].
type UpdateInput struct {
	Name    string  `json:"name"`
	LogoURL *string `json:"logo_url"`
}

// # Service Layer

// Service reads and updates the company settings.
type Service struct {
	repo   Repository
	clock  func() time.Time
	logger *slog.Logger
}

// NewService constructs a new company [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, clock: time.Now, logger: logger}
}

/*
Get returns the saved settings, or defaults when nothing was saved.

Returns:
  - Settings: Name is never empty
  - error: Retrieval failures
*/
func (service *Service) Get(context context.Context) (Settings, error) {
	saved, err := service.repo.Load(context)
	if err != nil {
		return Settings{}, err
	}
	if saved == nil {
		return Settings{Name: DefaultName}, nil
	}

	settings := *saved
	settings.Name = settings.DisplayName()
	return settings, nil
}

/*
Update replaces the settings.

Description: An empty logo URL clears the logo.

Parameters:
  - context: context.Context
  - updatedBy: string (admin user ID)
  - input: UpdateInput

Returns:
  - Settings: the saved settings
  - error: Validation or persistence failures
*/
func (service *Service) Update(context context.Context, updatedBy string, input UpdateInput) (Settings, error) {
	name := strings.TrimSpace(input.Name)

	var logo *string
	if input.LogoURL != nil {
		if trimmed := strings.TrimSpace(*input.LogoURL); trimmed != "" {
			logo = &trimmed
		}
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, maxNameLength)
	if logo != nil {
		validator.URL(FieldLogoURL, *logo)
	}
	if err := validator.Err(); err != nil {
		return Settings{}, err
	}

	settings := Settings{
		Name:      name,
		LogoURL:   logo,
		UpdatedAt: service.clock().UTC(),
		UpdatedBy: updatedBy,
	}
	if err := service.repo.Save(context, &settings); err != nil {
		return Settings{}, err
	}

	service.logger.Info("company_settings_updated",
		slog.String("updated_by", updatedBy),
		slog.Bool("has_logo", logo != nil),
	)

	return settings, nil
}
