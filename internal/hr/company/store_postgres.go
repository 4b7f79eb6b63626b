// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package company

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hrdesk/internal/platform/dberr"
)

// settingsRowID keys the single settings row.
const settingsRowID = 1

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed settings store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Load reads the settings row. A missing row is not an error.
func (repository *PostgresRepository) Load(context context.Context) (*Settings, error) {
	const query = `
		SELECT name, logo_url, updated_at, COALESCE(updated_by, '')
		FROM hr.company_settings
		WHERE id = $1
	`
	settings := &Settings{}
	err := repository.db.QueryRow(context, query, settingsRowID).Scan(
		&settings.Name, &settings.LogoURL, &settings.UpdatedAt, &settings.UpdatedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "load_company_settings")
	}
	return settings, nil
}

// Save upserts the settings row.
func (repository *PostgresRepository) Save(context context.Context, settings *Settings) error {
	const query = `
		INSERT INTO hr.company_settings (id, name, logo_url, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			logo_url = EXCLUDED.logo_url,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by
	`
	_, err := repository.db.Exec(context, query,
		settingsRowID, settings.Name, settings.LogoURL, settings.UpdatedAt, settings.UpdatedBy,
	)
	return dberr.Wrap(err, "save_company_settings")
}
