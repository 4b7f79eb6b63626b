// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/hrdesk/internal/hr/company"
	"github.com/taibuivan/hrdesk/internal/platform/pdf"
	"github.com/taibuivan/hrdesk/internal/platform/sec"
	"github.com/taibuivan/hrdesk/internal/platform/validate"
	"github.com/taibuivan/hrdesk/pkg/slug"
	"github.com/taibuivan/hrdesk/pkg/uuid"
)

const (
	maxNameLength    = 200
	maxShortText     = 500
	maxLongText      = 4000
	tokenSeparator   = "."
	pdfFileExtension = ".pdf"
)

// SettingsProvider returns the branding printed on documents.
type SettingsProvider interface {
	Get(context context.Context) (company.Settings, error)
}

// Archiver keeps a copy of every rendered completed reference.
type Archiver interface {
	Put(context context.Context, name string, data []byte) error
}

// Rendered is a serialised document ready to be streamed.
type Rendered struct {
	Filename string
	Data     []byte
	Pages    int
}

// # Service Layer

// Service orchestrates the reference request lifecycle and document rendering.
type Service struct {
	repo      Repository
	generator *Generator
	settings  SettingsProvider
	archive   Archiver
	clock     func() time.Time
	logger    *slog.Logger
}

// ServiceOption configures a [Service].
type ServiceOption func(*Service)

// WithArchive enables archiving of completed reference documents.
func WithArchive(archive Archiver) ServiceOption {
	return func(service *Service) { service.archive = archive }
}

// WithServiceClock sets the time source for lifecycle timestamps.
func WithServiceClock(clock func() time.Time) ServiceOption {
	return func(service *Service) { service.clock = clock }
}

// NewService constructs a new reference [Service].
func NewService(repo Repository, generator *Generator, settings SettingsProvider, logger *slog.Logger, opts ...ServiceOption) *Service {
	service := &Service{
		repo:      repo,
		generator: generator,
		settings:  settings,
		clock:     time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// # Lifecycle

/*
Create registers a new reference request and issues the referee token.

Parameters:
  - context: context.Context
  - createdBy: string (staff user ID)
  - input: NewReferenceRequest

Returns:
  - *Issued: stored record and the one-time token "<id>.<secret>"
  - error: Validation or persistence failures
*/
func (service *Service) Create(context context.Context, createdBy string, input NewReferenceRequest) (*Issued, error) {
	validator := &validate.Validator{}
	validator.Required(FieldApplicationID, input.ApplicationID).
		Range(FieldReferenceNumber, input.ReferenceNumber, 1, 2).
		OneOf(FieldReferenceType, string(input.Type), string(TypeEmployer), string(TypeCharacter)).
		Required(FieldApplicantName, input.Applicant.Name).
		MaxLen(FieldApplicantName, input.Applicant.Name, maxNameLength).
		Required(FieldRefereeName, input.Referee.Name).
		MaxLen(FieldRefereeName, input.Referee.Name, maxNameLength)
	if input.Referee.Email != "" {
		validator.Email(FieldRefereeEmail, input.Referee.Email)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	secret, err := sec.NewSecret()
	if err != nil {
		return nil, fmt.Errorf("reference: token secret: %w", err)
	}
	hash, err := sec.HashSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("reference: hash token: %w", err)
	}

	ref := &CompletedReference{
		ID:              uuid.New(),
		ApplicationID:   input.ApplicationID,
		ReferenceNumber: input.ReferenceNumber,
		Type:            input.Type,
		Applicant:       input.Applicant,
		Referee:         input.Referee,
		TokenHash:       hash,
		CreatedBy:       createdBy,
		CreatedAt:       service.clock().UTC(),
	}
	if err := service.repo.Create(context, ref); err != nil {
		return nil, err
	}

	service.logger.Info("reference_created",
		slog.String("reference_id", ref.ID),
		slog.String("application_id", ref.ApplicationID),
		slog.Int("reference_number", ref.ReferenceNumber),
	)

	return &Issued{Reference: ref, Token: ref.ID + tokenSeparator + secret}, nil
}

// Get retrieves one reference request.
func (service *Service) Get(context context.Context, id string) (*CompletedReference, error) {
	if !uuid.Valid(id) {
		return nil, ErrReferenceNotFound
	}
	return service.repo.FindByID(context, id)
}

// ListByApplication retrieves the reference requests of an application.
func (service *Service) ListByApplication(context context.Context, applicationID string) ([]*CompletedReference, error) {
	refs, err := service.repo.ListByApplication(context, applicationID)
	if err != nil {
		return nil, err
	}
	if refs == nil {
		refs = []*CompletedReference{}
	}
	return refs, nil
}

/*
MarkSent records that the referee link was dispatched.

Description: Repeated calls keep the first timestamp. Completed requests are
immutable.
*/
func (service *Service) MarkSent(context context.Context, id string) (*CompletedReference, error) {
	if !uuid.Valid(id) {
		return nil, ErrReferenceNotFound
	}
	if err := service.repo.MarkSent(context, id, service.clock().UTC()); err != nil {
		return nil, err
	}
	service.logger.Info("reference_marked_sent", slog.String("reference_id", id))
	return service.repo.FindByID(context, id)
}

/*
Submit stores the referee's answers.

Parameters:
  - context: context.Context
  - token: string (as issued by [Service.Create])
  - answers: ReferenceAnswer

Returns:
  - *CompletedReference: the completed record
  - error: ErrInvalidToken, ErrAlreadyCompleted or validation failures
*/
func (service *Service) Submit(context context.Context, token string, answers ReferenceAnswer) (*CompletedReference, error) {
	id, secret, ok := strings.Cut(token, tokenSeparator)
	if !ok || secret == "" || !uuid.Valid(id) {
		return nil, ErrInvalidToken
	}

	ref, err := service.repo.FindByID(context, id)
	if err != nil {
		if errors.Is(err, ErrReferenceNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !sec.CheckSecretHash(secret, ref.TokenHash) {
		return nil, ErrInvalidToken
	}
	if ref.IsCompleted() {
		return nil, ErrAlreadyCompleted
	}

	if err := validateAnswers(&answers); err != nil {
		return nil, err
	}

	now := service.clock().UTC()
	if err := service.repo.Complete(context, ref.ID, &answers, now); err != nil {
		return nil, err
	}

	ref.Answers = &answers
	ref.CompletedAt = &now

	service.logger.Info("reference_completed",
		slog.String("reference_id", ref.ID),
		slog.String("application_id", ref.ApplicationID),
	)

	return ref, nil
}

// validateAnswers checks enum values and text lengths. Every answer is optional.
func validateAnswers(answers *ReferenceAnswer) error {
	yesNo := []string{string(Yes), string(No)}

	validator := &validate.Validator{}
	validator.
		OptionalOneOf(FieldStatus, string(answers.EmploymentStatus),
			string(StatusCurrent), string(StatusPrevious), string(StatusNeither), string(StatusYes), string(StatusNo)).
		OptionalOneOf(FieldAttendance, string(answers.Attendance),
			string(AttendanceGood), string(AttendanceAverage), string(AttendancePoor)).
		OptionalOneOf(FieldConvictions, string(answers.ConvictionsKnown), yesNo...).
		OptionalOneOf(FieldProceedings, string(answers.CriminalProceedingsKnown), yesNo...).
		OptionalOneOf(FieldKnowsOutside, string(answers.KnowsOutsideWork), yesNo...).
		MaxLen("leaving_reason", answers.LeavingReason, maxShortText).
		MaxLen("qualities_not_ticked_reason", answers.QualitiesNotTickedReason, maxShortText).
		MaxLen("criminal_details", answers.CriminalDetails, maxLongText).
		MaxLen(FieldComments, answers.AdditionalComments, maxLongText)

	return validator.Err()
}

// # Rendering

/*
RenderCompleted produces the PDF of a completed reference.

Returns:
  - *Rendered: serialised document
  - error: ErrNotCompleted for pending requests, generation failures as 500
*/
func (service *Service) RenderCompleted(context context.Context, id string) (*Rendered, error) {
	ref, err := service.Get(context, id)
	if err != nil {
		return nil, err
	}
	if !ref.IsCompleted() {
		return nil, ErrNotCompleted
	}

	rendered, err := service.renderCompleted(context, ref)
	if err != nil {
		return nil, err
	}

	if service.archive != nil {
		name := fmt.Sprintf("references/%s/%s%s", ref.ApplicationID, ref.ID, pdfFileExtension)
		if err := service.archive.Put(context, name, rendered.Data); err != nil {
			service.logger.Warn("reference_archive_failed",
				slog.String("reference_id", ref.ID),
				slog.Any("error", err),
			)
		}
	}

	return rendered, nil
}

// RenderBlank produces a blank template for offline completion.
func (service *Service) RenderBlank(context context.Context, input ManualReferenceInput) (*Rendered, error) {
	validator := &validate.Validator{}
	validator.Required(FieldApplicantName, input.Applicant.Name).
		MaxLen(FieldApplicantName, input.Applicant.Name, maxNameLength).
		OptionalOneOf(FieldReferenceType, string(input.Type), string(TypeEmployer), string(TypeCharacter)).
		OptionalOneOf(FieldStatus, string(input.EmploymentStatus),
			string(StatusCurrent), string(StatusPrevious), string(StatusNeither), string(StatusYes), string(StatusNo))
	if input.ReferenceNumber != 0 {
		validator.Range(FieldReferenceNumber, input.ReferenceNumber, 1, 2)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	settings, err := service.settings.Get(context)
	if err != nil {
		return nil, err
	}

	document, err := service.generator.GenerateManualReferencePDF(context, input, settings)
	if err != nil {
		return nil, generationFailed(err)
	}

	number := input.ReferenceNumber
	if number == 0 {
		number = 1
	}
	return service.serialise(document, fmt.Sprintf("%s reference %d template", input.Applicant.Name, number))
}

/*
RenderPack merges every completed reference of an application into one PDF,
ordered by reference number.

Returns:
  - error: ErrNoCompletedReferences when nothing has been completed yet
*/
func (service *Service) RenderPack(context context.Context, applicationID string) (*Rendered, error) {
	refs, err := service.repo.ListByApplication(context, applicationID)
	if err != nil {
		return nil, err
	}

	var parts [][]byte
	var applicant string
	for _, ref := range refs {
		if !ref.IsCompleted() {
			continue
		}
		rendered, err := service.renderCompleted(context, ref)
		if err != nil {
			return nil, err
		}
		parts = append(parts, rendered.Data)
		applicant = ref.Applicant.Name
	}
	if len(parts) == 0 {
		return nil, ErrNoCompletedReferences
	}

	var merged bytes.Buffer
	if err := pdf.Merge(&merged, parts...); err != nil {
		return nil, generationFailed(err)
	}
	pages, err := pdf.PageCount(merged.Bytes())
	if err != nil {
		return nil, generationFailed(err)
	}

	service.logger.Info("reference_pack_generated",
		slog.String("application_id", applicationID),
		slog.Int("documents", len(parts)),
		slog.Int("pages", pages),
	)

	return &Rendered{
		Filename: filename(applicant + " references"),
		Data:     merged.Bytes(),
		Pages:    pages,
	}, nil
}

func (service *Service) renderCompleted(context context.Context, ref *CompletedReference) (*Rendered, error) {
	settings, err := service.settings.Get(context)
	if err != nil {
		return nil, err
	}

	document, err := service.generator.GenerateReferencePDF(context, ref, ref.Applicant, settings)
	if err != nil {
		return nil, generationFailed(err)
	}

	return service.serialise(document, fmt.Sprintf("%s reference %d", ref.Applicant.Name, ref.ReferenceNumber))
}

func (service *Service) serialise(document *pdf.Document, title string) (*Rendered, error) {
	data, err := document.Bytes()
	if err != nil {
		return nil, generationFailed(err)
	}

	rendered := &Rendered{
		Filename: filename(title),
		Data:     data,
		Pages:    document.PageCount(),
	}

	service.logger.Info("reference_pdf_generated",
		slog.String("filename", rendered.Filename),
		slog.Int("pages", rendered.Pages),
		slog.Int("bytes", len(data)),
	)

	return rendered, nil
}

// filename builds an ASCII download name.
func filename(title string) string {
	name := slug.From(title)
	if name == "" {
		name = "reference"
	}
	return name + pdfFileExtension
}
