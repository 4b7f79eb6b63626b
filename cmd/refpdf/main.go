// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command refpdf renders a reference document from a JSON file without a
// database, for template review and offline use.
//
// # Usage
//
//	refpdf -mode blank -in input.json -out template.pdf
//	refpdf -mode completed -in reference.json -company "Acme Care" -logo https://example.com/logo.png
//
// In blank mode the input is a manual reference input; in completed mode it
// is a completed reference with its answers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/taibuivan/hrdesk/internal/hr/company"
	"github.com/taibuivan/hrdesk/internal/hr/reference"
	"github.com/taibuivan/hrdesk/internal/platform/assets"
	"github.com/taibuivan/hrdesk/internal/platform/pdf"
)

const (
	defaultRegularFont = "file:///usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
	defaultBoldFont    = "file:///usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"
)

type options struct {
	mode        string
	in          string
	out         string
	companyName string
	logoURL     string
	paper       string
	regularFont string
	boldFont    string
	notTicked   string
	ownPage     bool
	validate    bool
	timeout     time.Duration
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(context.Background(), opts, log); err != nil {
		log.Error("refpdf_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("refpdf", flag.ContinueOnError)
	fs.StringVar(&opts.mode, "mode", "blank", "blank or completed")
	fs.StringVar(&opts.in, "in", "-", "input JSON file, - for stdin")
	fs.StringVar(&opts.out, "out", "-", "output PDF file, - for stdout")
	fs.StringVar(&opts.companyName, "company", "", "company name printed in the header")
	fs.StringVar(&opts.logoURL, "logo", "", "logo URL (http, https or file)")
	fs.StringVar(&opts.paper, "paper", pdf.A4.Name, "A4 or Letter")
	fs.StringVar(&opts.regularFont, "font-regular", defaultRegularFont, "regular TrueType font URL")
	fs.StringVar(&opts.boldFont, "font-bold", defaultBoldFont, "bold TrueType font URL")
	fs.StringVar(&opts.notTicked, "not-ticked", "fixed", "blank template placeholder mode: fixed or random")
	fs.BoolVar(&opts.ownPage, "declaration-page", true, "start the declaration on its own page")
	fs.BoolVar(&opts.validate, "validate", false, "validate the output and print its page count to stderr")
	fs.DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall deadline")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.mode != "blank" && opts.mode != "completed" {
		return opts, fmt.Errorf("refpdf: -mode must be blank or completed, got %q", opts.mode)
	}
	if _, ok := pdf.PaperSizeByName(opts.paper); !ok {
		return opts, fmt.Errorf("refpdf: -paper must be A4 or Letter, got %q", opts.paper)
	}
	return opts, nil
}

func run(ctx context.Context, opts options, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	input, err := readInput(opts.in)
	if err != nil {
		return err
	}

	loader := assets.NewLoader(assets.Config{
		RegularFontURL: opts.regularFont,
		BoldFontURL:    opts.boldFont,
	}, assets.WithLogger(log))

	paper, _ := pdf.PaperSizeByName(opts.paper)
	generator := reference.NewGenerator(loader,
		reference.WithPaperSize(paper),
		reference.WithNotTickedPicker(reference.NotTickedPickerFor(opts.notTicked)),
		reference.WithDeclarationPage(opts.ownPage),
		reference.WithGeneratorLogger(log),
	)

	settings := company.Settings{Name: opts.companyName}
	if opts.logoURL != "" {
		settings.LogoURL = &opts.logoURL
	}

	var document *pdf.Document
	switch opts.mode {
	case "completed":
		var ref reference.CompletedReference
		if err := json.Unmarshal(input, &ref); err != nil {
			return fmt.Errorf("refpdf: decode completed reference: %w", err)
		}
		document, err = generator.GenerateReferencePDF(ctx, &ref, ref.Applicant, settings)
	default:
		var manual reference.ManualReferenceInput
		if err := json.Unmarshal(input, &manual); err != nil {
			return fmt.Errorf("refpdf: decode manual input: %w", err)
		}
		document, err = generator.GenerateManualReferencePDF(ctx, manual, settings)
	}
	if err != nil {
		return err
	}

	data, err := document.Bytes()
	if err != nil {
		return err
	}

	if opts.validate {
		if err := pdf.Validate(data); err != nil {
			return err
		}
		pages, err := pdf.PageCount(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "valid, %d pages\n", pages)
	}

	return writeOutput(opts.out, data)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("refpdf: read input: %w", err)
	}
	return data, nil
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("refpdf: write output: %w", err)
	}
	return nil
}
