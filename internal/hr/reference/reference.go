// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference manages employment and character references for job
applications and renders them as printable documents.

# Core Responsibility

  - Lifecycle: A [CompletedReference] is created when a request is issued,
    marked sent on dispatch and completed when the referee submits. Answers
    are immutable once completed.
  - Documents: [Generator] renders a completed reference, or a blank template
    for offline completion, through the layout engine.

Referees answer through a one-time token; they never hold an account.

# Routing Strategy

  - Staff: /references and /applications/{applicationID}/references.
  - Public: /referee/submissions/{token}, authorised by the one-time token.

Role checks are applied by the caller when mounting the routers.
*/
package reference

import (
	"time"
)

// # Reference Enums

// ReferenceType selects the body of the reference form.
type ReferenceType string

const (
	TypeEmployer  ReferenceType = "employer"
	TypeCharacter ReferenceType = "character"
)

// Valid reports whether t is a known type.
func (t ReferenceType) Valid() bool {
	return t == TypeEmployer || t == TypeCharacter
}

// Title is the heading printed in the document banner.
func (t ReferenceType) Title() string {
	if t == TypeCharacter {
		return "Character Reference"
	}
	return "Employer Reference"
}

// EmploymentStatus is the referee's relationship to the applicant's employment.
//
// The legacy values "yes" and "no" mean current and previous.
type EmploymentStatus string

const (
	StatusCurrent  EmploymentStatus = "current"
	StatusPrevious EmploymentStatus = "previous"
	StatusNeither  EmploymentStatus = "neither"
	StatusYes      EmploymentStatus = "yes"
	StatusNo       EmploymentStatus = "no"
)

// Normalize folds the legacy values onto current/previous. Unknown values
// become empty.
func (s EmploymentStatus) Normalize() EmploymentStatus {
	switch s {
	case StatusCurrent, StatusYes:
		return StatusCurrent
	case StatusPrevious, StatusNo:
		return StatusPrevious
	case StatusNeither:
		return StatusNeither
	default:
		return ""
	}
}

// Attendance is the referee's rating of the applicant's attendance.
type Attendance string

const (
	AttendanceGood    Attendance = "good"
	AttendanceAverage Attendance = "average"
	AttendancePoor    Attendance = "poor"
)

// YesNo is an optional yes/no answer. Empty means unanswered.
type YesNo string

const (
	Yes YesNo = "yes"
	No  YesNo = "no"
)

func (a YesNo) IsYes() bool { return a == Yes }
func (a YesNo) IsNo() bool  { return a == No }

// # Answers

// ReferenceAnswer is what the referee submitted. Every field is optional.
type ReferenceAnswer struct {
	RefereeName     string `json:"referee_name,omitempty"`
	RefereeJobTitle string `json:"referee_job_title,omitempty"`

	// Employer references
	EmploymentStatus EmploymentStatus `json:"employment_status,omitempty"`
	Relationship     string           `json:"relationship,omitempty"`
	JobTitle         string           `json:"job_title,omitempty"`
	StartDate        string           `json:"start_date,omitempty"`
	EndDate          string           `json:"end_date,omitempty"`
	Attendance       Attendance       `json:"attendance,omitempty"`
	LeavingReason    string           `json:"leaving_reason,omitempty"`

	// Character references
	KnowsOutsideWork YesNo `json:"knows_outside_work,omitempty"`

	// Character qualities
	Honest                   bool   `json:"honest"`
	Trustworthy              bool   `json:"trustworthy"`
	Reliable                 bool   `json:"reliable"`
	Punctual                 bool   `json:"punctual"`
	Polite                   bool   `json:"polite"`
	Compassionate            bool   `json:"compassionate"`
	HardWorking              bool   `json:"hard_working"`
	TeamPlayer               bool   `json:"team_player"`
	QualitiesNotTickedReason string `json:"qualities_not_ticked_reason,omitempty"`

	// Criminal background
	ConvictionsKnown         YesNo  `json:"convictions_known,omitempty"`
	CriminalProceedingsKnown YesNo  `json:"criminal_proceedings_known,omitempty"`
	CriminalDetails          string `json:"criminal_details,omitempty"`

	AdditionalComments string `json:"additional_comments,omitempty"`
	SignatureDate      string `json:"signature_date,omitempty"`
}

// Qualities returns the eight quality flags in print order.
func (a *ReferenceAnswer) Qualities() [8]bool {
	return [8]bool{
		a.Honest, a.Trustworthy, a.Reliable, a.Punctual,
		a.Polite, a.Compassionate, a.HardWorking, a.TeamPlayer,
	}
}

// # Core Entities

// Applicant is the snapshot of the candidate a reference is about.
type Applicant struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Postcode    string `json:"postcode,omitempty"`
	Position    string `json:"position,omitempty"`
}

// Referee is the contact a reference request is addressed to.
type Referee struct {
	Name     string `json:"name"`
	Company  string `json:"company,omitempty"`
	JobTitle string `json:"job_title,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// CompletedReference is a persisted reference request and, once submitted,
// its answers.
type CompletedReference struct {
	ID              string           `json:"id"` // UUIDv7
	ApplicationID   string           `json:"application_id"`
	ReferenceNumber int              `json:"reference_number"`
	Type            ReferenceType    `json:"reference_type"`
	Applicant       Applicant        `json:"applicant"`
	Referee         Referee          `json:"referee"`
	Answers         *ReferenceAnswer `json:"answers,omitempty"`
	TokenHash       string           `json:"-"`
	CreatedBy       string           `json:"created_by,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	SentAt          *time.Time       `json:"sent_at,omitempty"`
	CompletedAt     *time.Time       `json:"completed_at,omitempty"`
}

// IsCompleted reports whether the referee has submitted.
func (r *CompletedReference) IsCompleted() bool {
	return r.CompletedAt != nil
}

// ManualReferenceInput drives a blank template for offline completion.
type ManualReferenceInput struct {
	Applicant        Applicant        `json:"applicant"`
	Type             ReferenceType    `json:"reference_type"`
	ReferenceNumber  int              `json:"reference_number,omitempty"`
	EmploymentFrom   string           `json:"employment_from,omitempty"`
	EmploymentTo     string           `json:"employment_to,omitempty"`
	EmploymentStatus EmploymentStatus `json:"employment_status,omitempty"`
	Referee          Referee          `json:"referee"`
}

// NewReferenceRequest is the input for issuing a reference request.
type NewReferenceRequest struct {
	ApplicationID   string        `json:"application_id"`
	ReferenceNumber int           `json:"reference_number"`
	Type            ReferenceType `json:"reference_type"`
	Applicant       Applicant     `json:"applicant"`
	Referee         Referee       `json:"referee"`
}

// Issued is a freshly created request and its one-time referee token.
type Issued struct {
	Reference *CompletedReference `json:"reference"`
	Token     string              `json:"token"`
}

// # Field Identifiers

const (
	FieldApplicationID   = "application_id"
	FieldReferenceNumber = "reference_number"
	FieldReferenceType   = "reference_type"
	FieldApplicantName   = "applicant.name"
	FieldRefereeName     = "referee.name"
	FieldRefereeEmail    = "referee.email"
	FieldStatus          = "employment_status"
	FieldAttendance      = "attendance"
	FieldConvictions     = "convictions_known"
	FieldProceedings     = "criminal_proceedings_known"
	FieldKnowsOutside    = "knows_outside_work"
	FieldComments        = "additional_comments"
)
