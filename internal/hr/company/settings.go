// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package company holds the organisation-wide settings printed on generated
documents: the company name and an optional logo.

A single settings row exists per deployment. When nothing has been saved yet
the generic default name is used.
*/
package company

import (
	"strings"
	"time"
)

// DefaultName is printed when no company name has been configured.
const DefaultName = "Company Name"

// Settings is the organisation branding.
type Settings struct {
	Name      string    `json:"name"`
	LogoURL   *string   `json:"logo_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by,omitempty"`
}

// DisplayName returns the configured name or [DefaultName].
func (s Settings) DisplayName() string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	return DefaultName
}

// Logo returns the logo URL or an empty string.
func (s Settings) Logo() string {
	if s.LogoURL == nil {
		return ""
	}
	return strings.TrimSpace(*s.LogoURL)
}

// # Field Identifiers

const (
	FieldName    = "name"
	FieldLogoURL = "logo_url"
)
