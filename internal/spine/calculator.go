// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package spine calculates book spine widths from page count, paper
// stock, and binding type, using per-printer-service configurations.
// Three formula families exist: general (bulk-factor based),
// pages-per-inch, and fixed page-count ranges.
package spine

import (
	"github.com/mmartin-sub/bookspine/pkg/types"
)

// Calculator computes spine widths with configs resolved through its
// Loader.
type Calculator struct {
	Loader *Loader
}

// NewCalculator builds a Calculator on the embedded default configs.
func NewCalculator() *Calculator {
	return &Calculator{Loader: &Loader{}}
}

// Options adjust a single calculation.
type Options struct {
	// PrinterService selects the configuration; empty means default.
	PrinterService string

	// ManualOverride, when non-nil, replaces the calculated width (mm).
	// Must be non-negative; the calculated value is kept in the result.
	ManualOverride *float64

	// DPI for the pixel conversion; 0 means 300.
	DPI int
}

// Calculate computes the spine width for the book in every supported
// unit. Metadata is validated first; configuration problems surface as
// ConfigurationError, formula problems as CalculationError.
func (c *Calculator) Calculate(meta types.BookMetadata, opts Options) (*types.SpineResult, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	dpi := opts.DPI
	if dpi == 0 {
		dpi = DefaultDPI
	}
	if dpi < 0 {
		return nil, types.Calculationf("dpi must be positive, got %d", dpi)
	}
	if opts.ManualOverride != nil && *opts.ManualOverride < 0 {
		return nil, types.Calculationf("manual override must be non-negative, got %g", *opts.ManualOverride)
	}

	cfg, err := c.Loader.Load(opts.PrinterService)
	if err != nil {
		return nil, err
	}

	calculated, err := widthMM(meta, cfg)
	if err != nil {
		return nil, err
	}

	result := &types.SpineResult{
		WidthMM:        calculated,
		DPI:            dpi,
		Metadata:       meta,
		PrinterService: opts.PrinterService,
	}
	if opts.ManualOverride != nil {
		result.WidthMM = *opts.ManualOverride
		result.ManualOverrideApplied = true
		result.OriginalCalculatedWidthMM = calculated
	}

	result.WidthInches = MMToInches(result.WidthMM)
	pixels, err := MMToPixels(result.WidthMM, dpi)
	if err != nil {
		return nil, types.Calculationf("%v", err)
	}
	result.WidthPixels = pixels
	return result, nil
}

// widthMM dispatches to the formula configured for the binding type.
func widthMM(meta types.BookMetadata, cfg *PrinterConfig) (float64, error) {
	if meta.BindingType == "" {
		return 0, types.Calculationf("binding type is required for calculation")
	}
	formula, ok := cfg.Formulas[meta.BindingType]
	if !ok {
		return 0, types.Calculationf("no formula configuration found for binding type %q", meta.BindingType)
	}

	switch formula.Type {
	case FormulaGeneral:
		return generalWidth(meta, cfg)
	case FormulaPagesPerInch:
		return pagesPerInchWidth(meta, formula.Params)
	case FormulaFixedRanges:
		return fixedRangesWidth(meta, formula.Params)
	default:
		return 0, types.Calculationf("unknown formula type %q", formula.Type)
	}
}

// generalWidth: (paper_weight × bulk × page_count/2)/1000 plus twice
// the cover thickness, all in millimeters.
func generalWidth(meta types.BookMetadata, cfg *PrinterConfig) (float64, error) {
	if meta.PaperType == "" {
		return 0, types.Calculationf("paper type is required for the general formula")
	}
	if meta.PaperWeight <= 0 {
		return 0, types.Calculationf("paper weight is required for the general formula")
	}
	bulk, ok := cfg.PaperBulk[meta.PaperType]
	if !ok {
		return 0, types.Calculationf("no paper bulk factor for paper type %q", meta.PaperType)
	}
	thickness, ok := cfg.CoverThickness[meta.BindingType]
	if !ok {
		return 0, types.Calculationf("no cover thickness for binding type %q", meta.BindingType)
	}
	return meta.PaperWeight*bulk*(float64(meta.PageCount)/2)/1000 + 2*thickness, nil
}

// pagesPerInchWidth: page_count/ppi plus a base thickness, in inches,
// converted to millimeters.
func pagesPerInchWidth(meta types.BookMetadata, params FormulaParams) (float64, error) {
	if params.PagesPerInch <= 0 {
		return 0, types.Calculationf("pages_per_inch parameter is required and must be positive")
	}
	inches := float64(meta.PageCount)/params.PagesPerInch + params.BaseThickness
	return InchesToMM(inches), nil
}

// fixedRangesWidth looks the page count up in the configured ranges.
func fixedRangesWidth(meta types.BookMetadata, params FormulaParams) (float64, error) {
	if len(params.Ranges) == 0 {
		return 0, types.Calculationf("no ranges defined in fixed ranges formula")
	}
	for _, r := range params.Ranges {
		if meta.PageCount < r.MinPages {
			continue
		}
		if r.MaxPages != nil && meta.PageCount > *r.MaxPages {
			continue
		}
		if r.WidthInches == 0 {
			continue
		}
		return InchesToMM(r.WidthInches), nil
	}
	return 0, types.Calculationf("no matching range found for page count %d", meta.PageCount)
}
