// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hrdesk/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed reference store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectReference = `
	SELECT
		id, application_id, reference_number, reference_type,
		applicant_name, applicant_dob, applicant_postcode, applicant_position,
		referee_name, referee_company, referee_job_title, referee_email,
		referee_phone, referee_address,
		answers, token_hash, created_by, created_at, sent_at, completed_at
	FROM hr.reference_request
`

// scanReference hydrates one row selected with [selectReference].
func scanReference(row pgx.Row) (*CompletedReference, error) {
	ref := &CompletedReference{}
	var answers []byte
	var createdBy *string

	err := row.Scan(
		&ref.ID, &ref.ApplicationID, &ref.ReferenceNumber, &ref.Type,
		&ref.Applicant.Name, &ref.Applicant.DateOfBirth, &ref.Applicant.Postcode, &ref.Applicant.Position,
		&ref.Referee.Name, &ref.Referee.Company, &ref.Referee.JobTitle, &ref.Referee.Email,
		&ref.Referee.Phone, &ref.Referee.Address,
		&answers, &ref.TokenHash, &createdBy, &ref.CreatedAt, &ref.SentAt, &ref.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	if createdBy != nil {
		ref.CreatedBy = *createdBy
	}
	if len(answers) > 0 {
		ref.Answers = &ReferenceAnswer{}
		if err := json.Unmarshal(answers, ref.Answers); err != nil {
			return nil, fmt.Errorf("decode answers of %s: %w", ref.ID, err)
		}
	}
	return ref, nil
}

// # Reference Retrieval

/*
FindByID retrieves a single reference request by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *CompletedReference: Hydrated entity
  - error: ErrReferenceNotFound or database failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*CompletedReference, error) {
	ref, err := scanReference(repository.db.QueryRow(context, selectReference+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrReferenceNotFound
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_reference")
	}
	return ref, nil
}

// ListByApplication returns the requests of one application.
func (repository *PostgresRepository) ListByApplication(context context.Context, applicationID string) ([]*CompletedReference, error) {
	rows, err := repository.db.Query(context, selectReference+` WHERE application_id = $1 ORDER BY reference_number, created_at`, applicationID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_references")
	}
	defer rows.Close()

	var refs []*CompletedReference
	for rows.Next() {
		ref, err := scanReference(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_reference")
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_references")
	}

	return refs, nil
}

// # Reference Mutation

// Create inserts a new pending request.
func (repository *PostgresRepository) Create(context context.Context, ref *CompletedReference) error {
	const query = `
		INSERT INTO hr.reference_request (
			id, application_id, reference_number, reference_type,
			applicant_name, applicant_dob, applicant_postcode, applicant_position,
			referee_name, referee_company, referee_job_title, referee_email,
			referee_phone, referee_address, token_hash, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NULLIF($16, ''), $17)
	`
	_, err := repository.db.Exec(context, query,
		ref.ID, ref.ApplicationID, ref.ReferenceNumber, ref.Type,
		ref.Applicant.Name, ref.Applicant.DateOfBirth, ref.Applicant.Postcode, ref.Applicant.Position,
		ref.Referee.Name, ref.Referee.Company, ref.Referee.JobTitle, ref.Referee.Email,
		ref.Referee.Phone, ref.Referee.Address, ref.TokenHash, ref.CreatedBy, ref.CreatedAt,
	)
	return dberr.Wrap(err, "create_reference")
}

/*
MarkSent sets sent_at on a pending request.

Description: Already-sent requests keep their original timestamp. The update
is a no-op for completed requests, which is reported as a conflict.
*/
func (repository *PostgresRepository) MarkSent(context context.Context, id string, at time.Time) error {
	const query = `
		UPDATE hr.reference_request
		SET sent_at = COALESCE(sent_at, $2)
		WHERE id = $1 AND completed_at IS NULL
	`
	tag, err := repository.db.Exec(context, query, id, at)
	if err != nil {
		return dberr.Wrap(err, "mark_reference_sent")
	}
	if tag.RowsAffected() == 0 {
		return repository.missingOrCompleted(context, id)
	}
	return nil
}

// Complete stores answers on a pending request exactly once.
func (repository *PostgresRepository) Complete(context context.Context, id string, answers *ReferenceAnswer, at time.Time) error {
	payload, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("reference: encode answers: %w", err)
	}

	const query = `
		UPDATE hr.reference_request
		SET answers = $2, completed_at = $3
		WHERE id = $1 AND completed_at IS NULL
	`
	tag, err := repository.db.Exec(context, query, id, payload, at)
	if err != nil {
		return dberr.Wrap(err, "complete_reference")
	}
	if tag.RowsAffected() == 0 {
		return repository.missingOrCompleted(context, id)
	}
	return nil
}

// missingOrCompleted tells apart the two reasons a guarded update matched no row.
func (repository *PostgresRepository) missingOrCompleted(context context.Context, id string) error {
	var exists bool
	err := repository.db.QueryRow(context, `SELECT EXISTS (SELECT 1 FROM hr.reference_request WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return dberr.Wrap(err, "check_reference")
	}
	if !exists {
		return ErrReferenceNotFound
	}
	return ErrAlreadyCompleted
}
