// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/hrdesk/internal/hr/company"
	"github.com/taibuivan/hrdesk/internal/platform/assets"
	"github.com/taibuivan/hrdesk/internal/platform/layout"
	"github.com/taibuivan/hrdesk/internal/platform/pdf"
)

const (
	logoImageName   = "company-logo"
	documentCreator = "hrdesk"
)

// AssetLoader supplies fonts and the optional logo.
type AssetLoader interface {
	Load(ctx context.Context, logoURL string) (*assets.Bundle, error)
}

// # Generator

// Generator renders reference documents. It holds no per-document state and
// is safe for concurrent use.
type Generator struct {
	assets   AssetLoader
	factory  pdf.CanvasFactory
	paper    pdf.PaperSize
	pick     NotTickedPicker
	clock    func() time.Time
	location *time.Location
	logger   *slog.Logger

	declarationBreak bool
}

// GeneratorOption configures a [Generator].
type GeneratorOption func(*Generator)

// WithCanvasFactory replaces the fpdf backend.
func WithCanvasFactory(factory pdf.CanvasFactory) GeneratorOption {
	return func(g *Generator) { g.factory = factory }
}

// WithPaperSize sets the page size. A4 is the default.
func WithPaperSize(paper pdf.PaperSize) GeneratorOption {
	return func(g *Generator) { g.paper = paper }
}

// WithNotTickedPicker sets the blank-template placeholder strategy.
func WithNotTickedPicker(pick NotTickedPicker) GeneratorOption {
	return func(g *Generator) { g.pick = pick }
}

// WithClock sets the time source for blank-template metadata.
func WithClock(clock func() time.Time) GeneratorOption {
	return func(g *Generator) { g.clock = clock }
}

// WithLocation sets the zone lifecycle timestamps are printed in.
func WithLocation(loc *time.Location) GeneratorOption {
	return func(g *Generator) { g.location = loc }
}

// WithDeclarationPage controls whether the declaration opens its own page.
// Enabled by default; when disabled it follows the comments and only moves
// to a new page when it does not fit.
func WithDeclarationPage(enabled bool) GeneratorOption {
	return func(g *Generator) { g.declarationBreak = enabled }
}

// WithGeneratorLogger sets the logger.
func WithGeneratorLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) { g.logger = logger }
}

// NewGenerator builds a generator that fetches assets through loader.
func NewGenerator(loader AssetLoader, opts ...GeneratorOption) *Generator {
	g := &Generator{
		assets:   loader,
		factory:  pdf.NewFpdfFactory(),
		paper:    pdf.A4,
		pick:     FixedNotTicked("N/A"),
		clock:    time.Now,
		location: time.UTC,
		logger:   slog.Default(),

		declarationBreak: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

/*
GenerateReferencePDF renders a submitted reference.

Parameters:
  - ctx: context.Context
  - ref: *CompletedReference (answers may be partial)
  - applicant: Applicant
  - settings: company.Settings

Returns:
  - *pdf.Document: composed, not yet serialised
  - error: asset or backend failures only
*/
func (g *Generator) GenerateReferencePDF(ctx context.Context, ref *CompletedReference, applicant Applicant, settings company.Settings) (*pdf.Document, error) {
	if ref == nil {
		return nil, errors.New("reference: nil reference")
	}

	created := ref.CreatedAt
	if ref.CompletedAt != nil {
		created = *ref.CompletedAt
	}
	meta := pdf.Metadata{
		Title:     fmt.Sprintf("%s - %s", ref.Type.Title(), applicant.Name),
		Subject:   fmt.Sprintf("Reference %d", ref.ReferenceNumber),
		Creator:   documentCreator,
		CreatedAt: created,
	}
	return g.render(ctx, newCompletedSource(ref, applicant, g.location), settings, meta)
}

/*
GenerateManualReferencePDF renders a blank template for offline completion.

Description: Lifecycle dates are printed as {R<n>_Created}, {R<n>_Sent} and
{R<n>_Signed} for later substitution, n being the reference number (default 1).
*/
func (g *Generator) GenerateManualReferencePDF(ctx context.Context, input ManualReferenceInput, settings company.Settings) (*pdf.Document, error) {
	src := newBlankSource(input, g.pick)
	meta := pdf.Metadata{
		Title:     fmt.Sprintf("%s Template - %s", src.referenceType().Title(), input.Applicant.Name),
		Subject:   fmt.Sprintf("Reference %d", src.number),
		Creator:   documentCreator,
		CreatedAt: g.clock(),
	}
	return g.render(ctx, src, settings, meta)
}

// # Rendering

func (g *Generator) render(ctx context.Context, src source, settings company.Settings, meta pdf.Metadata) (*pdf.Document, error) {
	bundle, err := g.assets.Load(ctx, settings.Logo())
	if err != nil {
		return nil, fmt.Errorf("reference: load assets: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	canvas, err := g.factory(g.paper, bundle.Fonts, meta)
	if err != nil {
		return nil, fmt.Errorf("reference: create canvas: %w", err)
	}

	engine := layout.New(canvas)
	engine.DrawHeader(layout.Header{
		CompanyName: settings.DisplayName(),
		Title:       src.referenceType().Title(),
		Logo:        g.embedLogo(ctx, canvas, bundle.Logo),
	})

	engine.DrawSection(sectionApplicant)
	engine.DrawKeyValueHorizontal(src.applicant())

	if summary := src.refereeSummary(); len(summary) > 0 {
		engine.DrawSection(sectionReferee)
		engine.DrawKeyValueHorizontal(summary)
	}

	if src.referenceType() == TypeCharacter {
		drawCharacter(engine, src.character())
	} else {
		drawEmployment(engine, src.employment())
	}

	drawQualities(engine, src.qualities())

	// Criminal background questions always open a page.
	engine.PageBreak()
	drawCriminal(engine, src.criminal())

	engine.DrawSection(sectionComments)
	drawParagraph(engine, src.comments())

	// The declaration, signature and referee details share a page.
	if g.declarationBreak {
		engine.PageBreak()
	}
	drawDeclaration(engine, src.signature())

	engine.DrawSection(sectionReferee)
	for _, row := range src.refereeDetail() {
		engine.DrawKeyValue(row)
	}

	engine.DrawFooters()

	g.logger.DebugContext(ctx, "reference_pdf_composed",
		slog.String("reference_type", string(src.referenceType())),
		slog.Int("pages", canvas.PageCount()),
	)

	return pdf.NewDocument(canvas), nil
}

// embedLogo tries PNG then JPEG and gives up quietly.
func (g *Generator) embedLogo(ctx context.Context, canvas pdf.Canvas, data []byte) *pdf.Image {
	if len(data) == 0 {
		return nil
	}

	image, err := canvas.EmbedImage(logoImageName, data, pdf.ImagePNG)
	if err == nil {
		return image
	}
	image, jpegErr := canvas.EmbedImage(logoImageName+"-jpeg", data, pdf.ImageJPEG)
	if jpegErr == nil {
		return image
	}

	g.logger.WarnContext(ctx, "logo_embed_skipped",
		slog.Any("png_error", err),
		slog.Any("jpeg_error", jpegErr),
	)
	return nil
}

// # Sections

const groupGap = 6.0

func paragraphBox(engine *layout.Engine) layout.BoxStyle {
	theme := engine.Theme()
	return layout.BoxStyle{Border: &theme.Border, Background: &theme.BoxBackground}
}

func drawParagraph(engine *layout.Engine, text string) {
	engine.DrawBox(paragraphBox(engine), func() {
		engine.DrawWrappedText(text, 0, layout.TextStyle{})
	})
	engine.Advance(groupGap)
}

func drawEmployment(engine *layout.Engine, view employmentView) {
	engine.DrawSection(sectionEmployment)

	engine.DrawText(questionStatus, layout.TextStyle{Bold: true})
	engine.DrawInlineCheckboxes([]layout.Check{
		{Label: "Current", Checked: view.status == StatusCurrent},
		{Label: "Previous", Checked: view.status == StatusPrevious},
		{Label: "Neither", Checked: view.status == StatusNeither},
	})
	engine.Advance(groupGap)

	engine.DrawText(questionRelation, layout.TextStyle{Bold: true})
	drawParagraph(engine, view.relationship)

	engine.DrawKeyValue(layout.KeyValue{Label: "Job Title", Value: view.jobTitle})
	engine.DrawKeyValueHorizontal([]layout.KeyValue{
		{Label: "From", Value: view.from},
		{Label: "To", Value: view.to},
	})
	engine.Advance(groupGap)

	engine.DrawText(questionAttendance, layout.TextStyle{Bold: true})
	engine.DrawInlineCheckboxes([]layout.Check{
		{Label: "Good", Checked: view.attendance == AttendanceGood},
		{Label: "Average", Checked: view.attendance == AttendanceAverage},
		{Label: "Poor", Checked: view.attendance == AttendancePoor},
	})
	engine.Advance(groupGap)

	engine.DrawText(questionLeaving, layout.TextStyle{Bold: true})
	drawParagraph(engine, view.leavingReason)
}

func drawCharacter(engine *layout.Engine, view characterView) {
	engine.DrawSection(sectionCharacter)

	engine.DrawText(questionOutsideWork, layout.TextStyle{Bold: true})
	drawYesNo(engine, view.knowsOutsideWork)

	engine.DrawText(questionRelation, layout.TextStyle{Bold: true})
	drawParagraph(engine, view.relationship)
}

func drawYesNo(engine *layout.Engine, answer YesNo) {
	engine.DrawInlineCheckboxes([]layout.Check{
		{Label: "Yes", Checked: answer.IsYes()},
		{Label: "No", Checked: answer.IsNo()},
	})
	engine.Advance(groupGap)
}

func drawQualities(engine *layout.Engine, view qualitiesView) {
	engine.DrawSection(sectionQualities)
	engine.DrawText(questionQualities, layout.TextStyle{})

	checks := make([]layout.Check, len(qualityLabels))
	for i, label := range qualityLabels {
		checks[i] = layout.Check{Label: label, Checked: view.checked[i]}
	}
	engine.DrawCheckboxGrid(checks)
	engine.Advance(groupGap)

	if view.showReason {
		engine.DrawText(questionNotTicked, layout.TextStyle{Bold: true})
		drawParagraph(engine, view.reason)
	}
}

func drawCriminal(engine *layout.Engine, view criminalView) {
	engine.DrawSection(sectionCriminal)

	engine.DrawWrappedText(questionConvictions, 0, layout.TextStyle{})
	drawYesNo(engine, view.convictions)

	engine.DrawWrappedText(questionProceedings, 0, layout.TextStyle{})
	drawYesNo(engine, view.proceedings)

	if view.showDetails {
		engine.DrawText(questionDetails, layout.TextStyle{Bold: true})
		drawParagraph(engine, view.details)
	}
}

func drawDeclaration(engine *layout.Engine, view signatureView) {
	engine.DrawSection(sectionDeclaration)
	engine.DrawWrappedText(textDeclaration, 0, layout.TextStyle{})
	engine.Advance(groupGap)
	engine.DrawKeyValueHorizontal([]layout.KeyValue{
		{Label: "Signed by", Value: view.signedBy},
		{Label: "Date", Value: view.date},
	})
	engine.Advance(groupGap)
}
