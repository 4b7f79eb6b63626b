// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/taibuivan/hrdesk/internal/hr/company"
	"github.com/taibuivan/hrdesk/internal/hr/reference"
	"github.com/taibuivan/hrdesk/internal/platform/assets"
	"github.com/taibuivan/hrdesk/internal/platform/layout"
	"github.com/taibuivan/hrdesk/internal/platform/pdf"
	"github.com/taibuivan/hrdesk/internal/platform/pdf/pdftest"
)

// # Fixtures

type stubLoader struct {
	logo []byte
	err  error
}

func (s stubLoader) Load(_ context.Context, _ string) (*assets.Bundle, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &assets.Bundle{
		Fonts: pdf.FontSet{Regular: goregular.TTF, Bold: gobold.TTF},
		Logo:  s.logo,
	}, nil
}

var qualityLabels = []string{
	"Honest", "Trustworthy", "Reliable", "Punctual",
	"Polite", "Compassionate", "Hard working", "Team player",
}

func newTestGenerator(loader reference.AssetLoader, last **pdftest.Recorder, opts ...reference.GeneratorOption) *reference.Generator {
	base := []reference.GeneratorOption{
		reference.WithCanvasFactory(pdftest.Factory(last)),
		reference.WithClock(func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }),
	}
	return reference.NewGenerator(loader, append(base, opts...)...)
}

func janeDoe() reference.Applicant {
	return reference.Applicant{Name: "Jane Doe", DateOfBirth: "1990-01-15", Postcode: "SW1A 1AA", Position: "Care Assistant"}
}

func allQualities() reference.ReferenceAnswer {
	return reference.ReferenceAnswer{
		Honest: true, Trustworthy: true, Reliable: true, Punctual: true,
		Polite: true, Compassionate: true, HardWorking: true, TeamPlayer: true,
	}
}

func completedRef(answers reference.ReferenceAnswer) *reference.CompletedReference {
	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	sent := created.Add(2 * time.Hour)
	completed := created.Add(72 * time.Hour)
	return &reference.CompletedReference{
		ID:              "0192f3a0-0000-7000-8000-000000000001",
		ApplicationID:   "0192f3a0-0000-7000-8000-0000000000aa",
		ReferenceNumber: 1,
		Type:            reference.TypeEmployer,
		Applicant:       janeDoe(),
		Referee:         reference.Referee{Name: "John Smith", JobTitle: "Manager", Company: "Acme Care"},
		Answers:         &answers,
		CreatedAt:       created,
		SentAt:          &sent,
		CompletedAt:     &completed,
	}
}

func settings() company.Settings {
	return company.Settings{Name: "Acme Care Ltd"}
}

// qualityStates reads back the glyph drawn before each quality label.
func qualityStates(t *testing.T, rec *pdftest.Recorder) map[string]bool {
	t.Helper()
	states := map[string]bool{}
	for i, op := range rec.Ops {
		if op.Kind != pdftest.OpText || i == 0 {
			continue
		}
		for _, label := range qualityLabels {
			if op.Text == label {
				states[label] = rec.Ops[i-1].Text == layout.GlyphChecked
			}
		}
	}
	require.Len(t, states, 8)
	return states
}

// checkedBefore reports whether the glyph before the first label op is ticked.
func checkedBefore(t *testing.T, rec *pdftest.Recorder, label string) bool {
	t.Helper()
	for i, op := range rec.Ops {
		if op.Kind == pdftest.OpText && op.Text == label && i > 0 {
			return rec.Ops[i-1].Text == layout.GlyphChecked
		}
	}
	t.Fatalf("label %q not drawn", label)
	return false
}

// # Invariants

/*
TestGenerator_CriminalSectionStartsPage verifies the forced break for every
mode and reference type, including overflowing first pages.
*/
func TestGenerator_CriminalSectionStartsPage(t *testing.T) {
	long := strings.Repeat("A long and detailed account of the working relationship. ", 60)

	cases := []struct {
		name string
		run  func(g *reference.Generator) error
	}{
		{"CompletedEmployer", func(g *reference.Generator) error {
			_, err := g.GenerateReferencePDF(context.Background(), completedRef(allQualities()), janeDoe(), settings())
			return err
		}},
		{"CompletedLongText", func(g *reference.Generator) error {
			answers := allQualities()
			answers.Relationship = long
			answers.LeavingReason = long
			_, err := g.GenerateReferencePDF(context.Background(), completedRef(answers), janeDoe(), settings())
			return err
		}},
		{"CompletedCharacter", func(g *reference.Generator) error {
			ref := completedRef(reference.ReferenceAnswer{KnowsOutsideWork: reference.Yes})
			ref.Type = reference.TypeCharacter
			_, err := g.GenerateReferencePDF(context.Background(), ref, janeDoe(), settings())
			return err
		}},
		{"BlankEmployer", func(g *reference.Generator) error {
			_, err := g.GenerateManualReferencePDF(context.Background(), reference.ManualReferenceInput{Type: reference.TypeEmployer}, settings())
			return err
		}},
		{"BlankCharacter", func(g *reference.Generator) error {
			_, err := g.GenerateManualReferencePDF(context.Background(), reference.ManualReferenceInput{Type: reference.TypeCharacter}, settings())
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var rec *pdftest.Recorder
			require.NoError(t, tc.run(newTestGenerator(stubLoader{}, &rec)))

			title, ok := rec.Find("Criminal Background Check")
			require.True(t, ok)
			assert.Greater(t, title.Page, 1)

			var band *pdftest.Op
			for i := range rec.Ops {
				op := rec.Ops[i]
				if op.Page == title.Page && op.Kind == pdftest.OpRect {
					band = &op
					break
				}
			}
			require.NotNil(t, band)
			assert.Equal(t, layout.DefaultMargins.Top, band.Y)
			assert.Equal(t, layout.DefaultMargins.Top+14, title.Y)
		})
	}
}

/*
TestGenerator_CompletedQualities verifies each grid box mirrors its flag.
*/
func TestGenerator_CompletedQualities(t *testing.T) {
	tests := []struct {
		name    string
		answers reference.ReferenceAnswer
	}{
		{"AllTrue", allQualities()},
		{"NoneSet", reference.ReferenceAnswer{}},
		{"Mixed", reference.ReferenceAnswer{Honest: true, Punctual: true, Compassionate: true, TeamPlayer: true}},
		{"OnlyLast", reference.ReferenceAnswer{TeamPlayer: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec *pdftest.Recorder
			g := newTestGenerator(stubLoader{}, &rec)
			_, err := g.GenerateReferencePDF(context.Background(), completedRef(tt.answers), janeDoe(), settings())
			require.NoError(t, err)

			states := qualityStates(t, rec)
			flags := tt.answers.Qualities()
			unchecked := 0
			for i, label := range qualityLabels {
				assert.Equal(t, flags[i], states[label], label)
				if !states[label] {
					unchecked++
				}
			}

			trueCount := 0
			for _, f := range flags {
				if f {
					trueCount++
				}
			}
			assert.Equal(t, 8-trueCount, unchecked)

			_, shown := rec.Find("If you did not tick all of the qualities")
			assert.Equal(t, trueCount < 8, shown)
		})
	}
}

/*
TestGenerator_BlankQualities verifies a blank template ticks every quality.
*/
func TestGenerator_BlankQualities(t *testing.T) {
	var rec *pdftest.Recorder
	g := newTestGenerator(stubLoader{}, &rec, reference.WithNotTickedPicker(reference.FixedNotTicked("Not Provided")))

	_, err := g.GenerateManualReferencePDF(context.Background(), reference.ManualReferenceInput{}, settings())
	require.NoError(t, err)

	for label, checked := range qualityStates(t, rec) {
		assert.True(t, checked, label)
	}
	_, ok := rec.Find("Not Provided")
	assert.True(t, ok)
}

/*
TestGenerator_PlaceholderTokens verifies mail-merge tokens and their default.
*/
func TestGenerator_PlaceholderTokens(t *testing.T) {
	tests := []struct {
		number int
		want   int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("Number%d", tt.number), func(t *testing.T) {
			var rec *pdftest.Recorder
			g := newTestGenerator(stubLoader{}, &rec)

			_, err := g.GenerateManualReferencePDF(context.Background(), reference.ManualReferenceInput{ReferenceNumber: tt.number}, settings())
			require.NoError(t, err)

			for _, event := range []string{"Created", "Sent", "Signed"} {
				_, ok := rec.Find(fmt.Sprintf("{R%d_%s}", tt.want, event))
				assert.True(t, ok, event)
			}
		})
	}
}

/*
TestGenerator_CriminalDetails verifies when the details paragraph appears.
*/
func TestGenerator_CriminalDetails(t *testing.T) {
	tests := []struct {
		name        string
		convictions reference.YesNo
		proceedings reference.YesNo
		details     string
		shown       bool
	}{
		{"YesWithDetails", reference.Yes, reference.No, "Theft conviction 2019", true},
		{"BothNo", reference.No, reference.No, "", false},
		{"ProceedingsYes", reference.No, reference.Yes, "", true},
		{"DetailsOnly", reference.No, reference.No, "Spent caution", true},
		{"Unanswered", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := allQualities()
			answers.ConvictionsKnown = tt.convictions
			answers.CriminalProceedingsKnown = tt.proceedings
			answers.CriminalDetails = tt.details

			var rec *pdftest.Recorder
			g := newTestGenerator(stubLoader{}, &rec)
			_, err := g.GenerateReferencePDF(context.Background(), completedRef(answers), janeDoe(), settings())
			require.NoError(t, err)

			_, shown := rec.Find("please provide details")
			assert.Equal(t, tt.shown, shown)
			if tt.details != "" {
				_, ok := rec.Find(tt.details)
				assert.True(t, ok)
			}
		})
	}
}

/*
TestGenerator_BlankDefaults verifies the fixed answers of a blank template.
*/
func TestGenerator_BlankDefaults(t *testing.T) {
	t.Run("EmployerPrevious", func(t *testing.T) {
		var rec *pdftest.Recorder
		g := newTestGenerator(stubLoader{}, &rec)
		_, err := g.GenerateManualReferencePDF(context.Background(), reference.ManualReferenceInput{Type: reference.TypeEmployer}, settings())
		require.NoError(t, err)

		assert.True(t, checkedBefore(t, rec, "Previous"))
		assert.False(t, checkedBefore(t, rec, "Current"))
		assert.True(t, checkedBefore(t, rec, "Good"))
		assert.True(t, checkedBefore(t, rec, "No"))

		_, ok := rec.Find("please provide details")
		assert.True(t, ok)
		_, ok = rec.Find("Still employed")
		assert.False(t, ok)
	})

	t.Run("EmployerCurrent", func(t *testing.T) {
		var rec *pdftest.Recorder
		g := newTestGenerator(stubLoader{}, &rec)
		input := reference.ManualReferenceInput{
			Type:             reference.TypeEmployer,
			EmploymentStatus: reference.StatusYes,
			EmploymentFrom:   "2019-06-01",
		}
		_, err := g.GenerateManualReferencePDF(context.Background(), input, settings())
		require.NoError(t, err)

		assert.True(t, checkedBefore(t, rec, "Current"))
		_, ok := rec.Find("Still employed")
		assert.True(t, ok)
		_, ok = rec.Find("01/06/2019")
		assert.True(t, ok)
	})

	t.Run("CharacterKnowsOutsideWork", func(t *testing.T) {
		var rec *pdftest.Recorder
		g := newTestGenerator(stubLoader{}, &rec)
		_, err := g.GenerateManualReferencePDF(context.Background(), reference.ManualReferenceInput{Type: reference.TypeCharacter}, settings())
		require.NoError(t, err)

		assert.True(t, checkedBefore(t, rec, "Yes"))
		_, ok := rec.Find("Character Reference")
		assert.True(t, ok)
	})

	t.Run("RefereeSummaryOmitted", func(t *testing.T) {
		var rec *pdftest.Recorder
		g := newTestGenerator(stubLoader{}, &rec)
		_, err := g.GenerateManualReferencePDF(context.Background(), reference.ManualReferenceInput{}, settings())
		require.NoError(t, err)
		assert.Len(t, rec.FindAll("Referee Information"), 1)

		input := reference.ManualReferenceInput{Referee: reference.Referee{Name: "John Smith", Email: "john@example.com"}}
		_, err = g.GenerateManualReferencePDF(context.Background(), input, settings())
		require.NoError(t, err)
		assert.Len(t, rec.FindAll("Referee Information"), 2)
		_, ok := rec.Find("john@example.com")
		assert.True(t, ok)
	})
}

/*
TestGenerator_EndToEnd renders the completed employer scenario for Jane Doe.
*/
func TestGenerator_EndToEnd(t *testing.T) {
	answers := allQualities()
	answers.EmploymentStatus = reference.StatusCurrent
	answers.ConvictionsKnown = reference.No
	answers.CriminalProceedingsKnown = reference.No

	var rec *pdftest.Recorder
	g := newTestGenerator(stubLoader{}, &rec)
	doc, err := g.GenerateReferencePDF(context.Background(), completedRef(answers), janeDoe(), settings())
	require.NoError(t, err)

	total := doc.PageCount()
	assert.GreaterOrEqual(t, total, 3)
	assert.Equal(t, rec.PageCount(), total)

	for page := 1; page <= total; page++ {
		footer, ok := rec.Find(layout.FooterText(page, total))
		require.True(t, ok, "footer %d", page)
		assert.Equal(t, page, footer.Page)
	}

	for _, want := range []string{"Jane Doe", "15/01/1990", "SW1A 1AA", "Acme Care Ltd", "Employer Reference", "John Smith"} {
		_, ok := rec.Find(want)
		assert.True(t, ok, want)
	}

	qualities, ok := rec.Find("Character Qualities")
	require.True(t, ok)
	assert.Equal(t, 1, qualities.Page)

	criminal, ok := rec.Find("Criminal Background Check")
	require.True(t, ok)
	assert.Equal(t, 2, criminal.Page)

	assert.True(t, checkedBefore(t, rec, "Current"))
	_, ok = rec.Find("please provide details")
	assert.False(t, ok)

	// lifecycle dates come from the record
	for _, want := range []string{"01/02/2026", "04/02/2026"} {
		_, ok := rec.Find(want)
		assert.True(t, ok, want)
	}
}

/*
TestGenerator_Idempotent verifies identical input draws identical output.
*/
func TestGenerator_Idempotent(t *testing.T) {
	var rec *pdftest.Recorder
	g := newTestGenerator(stubLoader{}, &rec)

	render := func() []byte {
		doc, err := g.GenerateReferencePDF(context.Background(), completedRef(allQualities()), janeDoe(), settings())
		require.NoError(t, err)
		data, err := doc.Bytes()
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, render(), render())

	blank := func() []byte {
		doc, err := g.GenerateManualReferencePDF(context.Background(), reference.ManualReferenceInput{ReferenceNumber: 2}, settings())
		require.NoError(t, err)
		data, err := doc.Bytes()
		require.NoError(t, err)
		return data
	}
	assert.Equal(t, blank(), blank())
}

/*
TestGenerator_Idempotent_Bytes verifies that the fpdf backend produces
identical bytes for identical inputs in both modes.
*/
func TestGenerator_Idempotent_Bytes(t *testing.T) {
	g := reference.NewGenerator(stubLoader{},
		reference.WithClock(func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }),
	)

	completed := func() []byte {
		doc, err := g.GenerateReferencePDF(context.Background(), completedRef(allQualities()), janeDoe(), settings())
		require.NoError(t, err)
		data, err := doc.Bytes()
		require.NoError(t, err)
		return data
	}
	blank := func() []byte {
		doc, err := g.GenerateManualReferencePDF(context.Background(), reference.ManualReferenceInput{ReferenceNumber: 2}, settings())
		require.NoError(t, err)
		data, err := doc.Bytes()
		require.NoError(t, err)
		return data
	}

	first := completed()
	require.NoError(t, pdf.Validate(first))
	assert.True(t, bytes.Equal(first, completed()))
	assert.True(t, bytes.Equal(blank(), blank()))
}

// titleOp returns the op drawing exactly title.
func titleOp(t *testing.T, rec *pdftest.Recorder, title string) pdftest.Op {
	t.Helper()
	for _, op := range rec.FindAll(title) {
		if op.Text == title {
			return op
		}
	}
	t.Fatalf("%q not drawn", title)
	return pdftest.Op{}
}

/*
TestGenerator_DeclarationPage verifies the declaration opens a page by default
and flows after the comments when the option is disabled.
*/
func TestGenerator_DeclarationPage(t *testing.T) {
	var rec *pdftest.Recorder

	g := newTestGenerator(stubLoader{}, &rec)
	_, err := g.GenerateReferencePDF(context.Background(), completedRef(allQualities()), janeDoe(), settings())
	require.NoError(t, err)
	criminal := titleOp(t, rec, "Criminal Background Check")
	declaration := titleOp(t, rec, "Declaration")
	assert.Equal(t, criminal.Page+1, declaration.Page)
	withBreak := rec.PageCount()

	g = newTestGenerator(stubLoader{}, &rec, reference.WithDeclarationPage(false))
	_, err = g.GenerateReferencePDF(context.Background(), completedRef(allQualities()), janeDoe(), settings())
	require.NoError(t, err)
	criminal = titleOp(t, rec, "Criminal Background Check")
	declaration = titleOp(t, rec, "Declaration")
	assert.Equal(t, criminal.Page, declaration.Page)
	assert.Less(t, rec.PageCount(), withBreak)
}

/*
TestGenerator_Logo verifies the logo is drawn when valid and dropped otherwise.
*/
func TestGenerator_Logo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 60, 20))))

	t.Run("Valid", func(t *testing.T) {
		var rec *pdftest.Recorder
		g := newTestGenerator(stubLoader{logo: buf.Bytes()}, &rec)
		_, err := g.GenerateReferencePDF(context.Background(), completedRef(allQualities()), janeDoe(), settings())
		require.NoError(t, err)
		assert.Equal(t, 1, rec.Count(pdftest.OpImage))
	})

	t.Run("Corrupt", func(t *testing.T) {
		var rec *pdftest.Recorder
		g := newTestGenerator(stubLoader{logo: []byte("garbage")}, &rec)
		_, err := g.GenerateReferencePDF(context.Background(), completedRef(allQualities()), janeDoe(), settings())
		require.NoError(t, err)
		assert.Equal(t, 0, rec.Count(pdftest.OpImage))
	})
}

/*
TestGenerator_FontFailure verifies asset errors are fatal.
*/
func TestGenerator_FontFailure(t *testing.T) {
	var rec *pdftest.Recorder
	g := newTestGenerator(stubLoader{err: errors.New("font unreachable")}, &rec)

	_, err := g.GenerateReferencePDF(context.Background(), completedRef(allQualities()), janeDoe(), settings())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "font unreachable")
}

/*
TestGenerator_DefaultCompanyName verifies the fallback company name.
*/
func TestGenerator_DefaultCompanyName(t *testing.T) {
	var rec *pdftest.Recorder
	g := newTestGenerator(stubLoader{}, &rec)

	_, err := g.GenerateManualReferencePDF(context.Background(), reference.ManualReferenceInput{}, company.Settings{})
	require.NoError(t, err)

	_, ok := rec.Find(company.DefaultName)
	assert.True(t, ok)
}

/*
TestGenerator_FpdfBackend renders through the real backend and parses the result.
*/
func TestGenerator_FpdfBackend(t *testing.T) {
	g := reference.NewGenerator(stubLoader{}, reference.WithPaperSize(pdf.Letter))

	doc, err := g.GenerateReferencePDF(context.Background(), completedRef(allQualities()), janeDoe(), settings())
	require.NoError(t, err)

	data, err := doc.Bytes()
	require.NoError(t, err)
	require.NoError(t, pdf.Validate(data))

	count, err := pdf.PageCount(data)
	require.NoError(t, err)
	assert.Equal(t, doc.PageCount(), count)
	assert.GreaterOrEqual(t, count, 3)
}

func TestNotTickedPickerFor(t *testing.T) {
	assert.Equal(t, "N/A", reference.NotTickedPickerFor("fixed")())
	assert.Equal(t, "N/A", reference.NotTickedPickerFor("")())

	random := reference.NotTickedPickerFor("random")
	for i := 0; i < 20; i++ {
		assert.Contains(t, []string{"N/A", "Not Provided"}, random())
	}
}
