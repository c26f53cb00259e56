// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Valid values for BookMetadata fields.
var (
	ValidPaperTypes   = []string{"MCG", "MCS", "ECB", "OFF"}
	ValidBindingTypes = []string{"Softcover Perfect Bound", "Hardcover Casewrap", "Hardcover Linen"}
	ValidUnitSystems  = []string{"metric", "imperial"}
)

// Paper weight bounds in gsm.
const (
	MinPaperWeight = 50.0
	MaxPaperWeight = 300.0
)

// BookMetadata describes the physical properties of a book needed for
// spine-width calculation.
type BookMetadata struct {
	// PageCount is the total number of pages, always positive.
	PageCount int `json:"page_count" yaml:"page_count"`

	// PaperType is the stock code (MCG, MCS, ECB, OFF). Optional for
	// formulas that do not use paper bulk.
	PaperType string `json:"paper_type,omitempty" yaml:"paper_type,omitempty"`

	// BindingType selects the formula configuration.
	BindingType string `json:"binding_type,omitempty" yaml:"binding_type,omitempty"`

	// PaperWeight is the paper weight in gsm, within [50,300] when set.
	PaperWeight float64 `json:"paper_weight,omitempty" yaml:"paper_weight,omitempty"`

	// UnitSystem is the preferred display system, metric or imperial.
	UnitSystem string `json:"unit_system" yaml:"unit_system"`
}

// NewBookMetadata validates and returns book metadata. An empty unit
// system defaults to metric.
func NewBookMetadata(m BookMetadata) (BookMetadata, error) {
	if m.UnitSystem == "" {
		m.UnitSystem = "metric"
	}
	if err := m.Validate(); err != nil {
		return BookMetadata{}, err
	}
	return m, nil
}

// Validate checks every field against its allowed values.
func (m BookMetadata) Validate() error {
	if m.PageCount <= 0 {
		return Validationf("page count must be positive, got %d", m.PageCount)
	}
	if m.PaperType != "" && !contains(ValidPaperTypes, m.PaperType) {
		return Validationf("invalid paper type %q, valid types: %s", m.PaperType, strings.Join(ValidPaperTypes, ", "))
	}
	if m.BindingType != "" && !contains(ValidBindingTypes, m.BindingType) {
		return Validationf("invalid binding type %q, valid types: %s", m.BindingType, strings.Join(ValidBindingTypes, ", "))
	}
	if m.PaperWeight != 0 && (m.PaperWeight < MinPaperWeight || m.PaperWeight > MaxPaperWeight) {
		return Validationf("paper weight must be between %g and %g gsm, got %g", MinPaperWeight, MaxPaperWeight, m.PaperWeight)
	}
	if !contains(ValidUnitSystems, m.UnitSystem) {
		return Validationf("invalid unit system %q, valid systems: %s", m.UnitSystem, strings.Join(ValidUnitSystems, ", "))
	}
	return nil
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// SpineResult is the outcome of a spine-width calculation, expressed in
// every supported unit.
type SpineResult struct {
	WidthMM     float64 `json:"width_mm" yaml:"width_mm"`
	WidthInches float64 `json:"width_inches" yaml:"width_inches"`
	WidthPixels float64 `json:"width_pixels" yaml:"width_pixels"`

	// DPI used for the pixel conversion.
	DPI int `json:"dpi" yaml:"dpi"`

	// Metadata is the book description the calculation was based on.
	Metadata BookMetadata `json:"book_metadata" yaml:"book_metadata"`

	// PrinterService names the configuration used, empty for the default.
	PrinterService string `json:"printer_service,omitempty" yaml:"printer_service,omitempty"`

	// ManualOverrideApplied records that the caller replaced the
	// calculated width; OriginalCalculatedWidthMM keeps the computed value.
	ManualOverrideApplied     bool    `json:"manual_override_applied" yaml:"manual_override_applied"`
	OriginalCalculatedWidthMM float64 `json:"original_calculated_width_mm,omitempty" yaml:"original_calculated_width_mm,omitempty"`
}
