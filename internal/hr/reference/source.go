// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/taibuivan/hrdesk/internal/platform/layout"
)

// # Section Views

type employmentView struct {
	status        EmploymentStatus
	relationship  string
	jobTitle      string
	from, to      string
	attendance    Attendance
	leavingReason string
}

type characterView struct {
	knowsOutsideWork YesNo
	relationship     string
}

type qualitiesView struct {
	checked    [8]bool
	reason     string
	showReason bool
}

type criminalView struct {
	convictions YesNo
	proceedings YesNo
	details     string
	showDetails bool
}

type signatureView struct {
	signedBy string
	date     string
}

// source supplies the content of each section. The completed and blank
// variants are the only implementations.
type source interface {
	referenceType() ReferenceType
	applicant() []layout.KeyValue
	refereeSummary() []layout.KeyValue
	employment() employmentView
	character() characterView
	qualities() qualitiesView
	criminal() criminalView
	comments() string
	signature() signatureView
	refereeDetail() []layout.KeyValue

	sealed()
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return textNotProvided
	}
	return s
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// contactRows lists the optional referee contact details that are present.
func contactRows(referee Referee) []layout.KeyValue {
	var rows []layout.KeyValue
	for _, kv := range []layout.KeyValue{
		{Label: "Company", Value: referee.Company},
		{Label: "Email", Value: referee.Email},
		{Label: "Phone", Value: referee.Phone},
		{Label: "Address", Value: referee.Address},
	} {
		if strings.TrimSpace(kv.Value) != "" {
			rows = append(rows, kv)
		}
	}
	return rows
}

// # Completed Reference

type completedSource struct {
	ref       *CompletedReference
	answers   *ReferenceAnswer
	person    Applicant
	location  *time.Location
}

func newCompletedSource(ref *CompletedReference, applicant Applicant, loc *time.Location) *completedSource {
	answers := ref.Answers
	if answers == nil {
		answers = &ReferenceAnswer{}
	}
	return &completedSource{ref: ref, answers: answers, person: applicant, location: loc}
}

func (s *completedSource) sealed() {}

func (s *completedSource) referenceType() ReferenceType { return s.ref.Type }

func (s *completedSource) applicant() []layout.KeyValue {
	return []layout.KeyValue{
		{Label: "Name", Value: orNotProvided(s.person.Name)},
		{Label: "DOB", Value: orNotProvided(FormatDate(s.person.DateOfBirth))},
		{Label: "Postcode", Value: orNotProvided(s.person.Postcode)},
	}
}

func (s *completedSource) refereeName() string {
	return orNotProvided(firstNonEmpty(s.answers.RefereeName, s.ref.Referee.Name))
}

func (s *completedSource) refereeJobTitle() string {
	return orNotProvided(firstNonEmpty(s.answers.RefereeJobTitle, s.ref.Referee.JobTitle))
}

func (s *completedSource) refereeSummary() []layout.KeyValue {
	return []layout.KeyValue{
		{Label: "Name", Value: s.refereeName()},
		{Label: "Job Title", Value: s.refereeJobTitle()},
	}
}

func (s *completedSource) employment() employmentView {
	a := s.answers
	return employmentView{
		status:        a.EmploymentStatus.Normalize(),
		relationship:  orNotProvided(a.Relationship),
		jobTitle:      orNotProvided(a.JobTitle),
		from:          orNotProvided(FormatDate(a.StartDate)),
		to:            orNotProvided(FormatDate(a.EndDate)),
		attendance:    a.Attendance,
		leavingReason: orNotProvided(a.LeavingReason),
	}
}

func (s *completedSource) character() characterView {
	return characterView{
		knowsOutsideWork: s.answers.KnowsOutsideWork,
		relationship:     orNotProvided(s.answers.Relationship),
	}
}

func (s *completedSource) qualities() qualitiesView {
	checked := s.answers.Qualities()
	all := true
	for _, c := range checked {
		all = all && c
	}
	reason := strings.TrimSpace(s.answers.QualitiesNotTickedReason)
	return qualitiesView{
		checked:    checked,
		reason:     orNotProvided(reason),
		showReason: !all || reason != "",
	}
}

func (s *completedSource) criminal() criminalView {
	a := s.answers
	details := strings.TrimSpace(a.CriminalDetails)
	return criminalView{
		convictions: a.ConvictionsKnown,
		proceedings: a.CriminalProceedingsKnown,
		details:     orNotProvided(details),
		showDetails: a.ConvictionsKnown.IsYes() || a.CriminalProceedingsKnown.IsYes() || details != "",
	}
}

func (s *completedSource) comments() string {
	return orNotProvided(s.answers.AdditionalComments)
}

func (s *completedSource) signature() signatureView {
	date := FormatDate(s.answers.SignatureDate)
	if date == "" {
		date = formatTimestamp(s.ref.CompletedAt, s.location)
	}
	return signatureView{signedBy: s.refereeName(), date: date}
}

func (s *completedSource) refereeDetail() []layout.KeyValue {
	rows := []layout.KeyValue{
		{Label: "Name", Value: s.refereeName()},
		{Label: "Job Title", Value: s.refereeJobTitle()},
	}
	rows = append(rows, contactRows(s.ref.Referee)...)
	return append(rows,
		layout.KeyValue{Label: "Created", Value: formatTimestamp(&s.ref.CreatedAt, s.location)},
		layout.KeyValue{Label: "Sent", Value: formatTimestamp(s.ref.SentAt, s.location)},
		layout.KeyValue{Label: "Signed", Value: formatTimestamp(s.ref.CompletedAt, s.location)},
	)
}

// # Blank Template

// NotTickedPicker chooses the placeholder printed under the qualities grid of
// a blank template.
type NotTickedPicker func() string

// FixedNotTicked always returns value.
func FixedNotTicked(value string) NotTickedPicker {
	return func() string { return value }
}

// RandomNotTicked alternates between "N/A" and "Not Provided" at random.
func RandomNotTicked() NotTickedPicker {
	return func() string {
		if rand.IntN(2) == 0 {
			return "N/A"
		}
		return "Not Provided"
	}
}

// NotTickedPickerFor maps the configured mode ("fixed" or "random") to a picker.
func NotTickedPickerFor(mode string) NotTickedPicker {
	if mode == "random" {
		return RandomNotTicked()
	}
	return FixedNotTicked("N/A")
}

type blankSource struct {
	input  ManualReferenceInput
	number int
	pick   NotTickedPicker
}

func newBlankSource(input ManualReferenceInput, pick NotTickedPicker) *blankSource {
	number := input.ReferenceNumber
	if number < 1 {
		number = 1
	}
	if input.Type == "" {
		input.Type = TypeEmployer
	}
	return &blankSource{input: input, number: number, pick: pick}
}

func (s *blankSource) sealed() {}

func (s *blankSource) referenceType() ReferenceType { return s.input.Type }

func (s *blankSource) applicant() []layout.KeyValue {
	a := s.input.Applicant
	return []layout.KeyValue{
		{Label: "Name", Value: orPlaceholder(a.Name, placeholderShort)},
		{Label: "DOB", Value: orPlaceholder(FormatDate(a.DateOfBirth), placeholderShort)},
		{Label: "Postcode", Value: orPlaceholder(a.Postcode, placeholderShort)},
	}
}

func (s *blankSource) refereeSummary() []layout.KeyValue {
	if strings.TrimSpace(s.input.Referee.Name) == "" {
		return nil
	}
	return []layout.KeyValue{{Label: "Name", Value: s.input.Referee.Name}}
}

func (s *blankSource) status() EmploymentStatus {
	if status := s.input.EmploymentStatus.Normalize(); status != "" {
		return status
	}
	return StatusPrevious
}

func (s *blankSource) employment() employmentView {
	position := s.input.Applicant.Position
	leaving := placeholderLine
	if s.status() == StatusCurrent {
		leaving = textStillEmployed
	}
	return employmentView{
		status:        s.status(),
		relationship:  orPlaceholder(position, placeholderLine),
		jobTitle:      orPlaceholder(position, placeholderShort),
		from:          orPlaceholder(FormatDate(s.input.EmploymentFrom), placeholderShort),
		to:            orPlaceholder(FormatDate(s.input.EmploymentTo), placeholderShort),
		attendance:    AttendanceGood,
		leavingReason: leaving,
	}
}

func (s *blankSource) character() characterView {
	return characterView{knowsOutsideWork: Yes, relationship: placeholderLine}
}

func (s *blankSource) qualities() qualitiesView {
	return qualitiesView{
		checked:    [8]bool{true, true, true, true, true, true, true, true},
		reason:     s.pick(),
		showReason: true,
	}
}

func (s *blankSource) criminal() criminalView {
	return criminalView{
		convictions: No,
		proceedings: No,
		details:     placeholderLine + "\n" + placeholderLine,
		showDetails: true,
	}
}

func (s *blankSource) comments() string {
	return placeholderLine + "\n" + placeholderLine + "\n" + placeholderLine
}

func (s *blankSource) signature() signatureView {
	return signatureView{signedBy: placeholderShort, date: placeholderShort}
}

func (s *blankSource) token(event string) string {
	return fmt.Sprintf("{R%d_%s}", s.number, event)
}

func (s *blankSource) refereeDetail() []layout.KeyValue {
	r := s.input.Referee
	rows := []layout.KeyValue{
		{Label: "Name", Value: orPlaceholder(r.Name, placeholderShort)},
		{Label: "Job Title", Value: orPlaceholder(r.JobTitle, placeholderShort)},
	}
	rows = append(rows, contactRows(r)...)
	return append(rows,
		layout.KeyValue{Label: "Created", Value: s.token("Created")},
		layout.KeyValue{Label: "Sent", Value: s.token("Sent")},
		layout.KeyValue{Label: "Signed", Value: s.token("Signed")},
	)
}
