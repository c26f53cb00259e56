// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package spine

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mmartin-sub/bookspine/pkg/types"
)

// RenderText writes a human-readable summary of the calculation.
// Imperial unit systems lead with inches, metric with millimeters.
func RenderText(w io.Writer, result *types.SpineResult) error {
	lines := []string{
		fmt.Sprintf("Spine width: %s", primaryWidth(result)),
		fmt.Sprintf("  mm:     %s", FormatWidth(result.WidthMM, "mm")),
		fmt.Sprintf("  inches: %s", FormatWidth(result.WidthInches, "inches")),
		fmt.Sprintf("  pixels: %s (at %d DPI)", FormatWidth(result.WidthPixels, "pixels"), result.DPI),
		fmt.Sprintf("  pages:  %d, binding: %s", result.Metadata.PageCount, result.Metadata.BindingType),
	}
	if result.PrinterService != "" {
		lines = append(lines, fmt.Sprintf("  printer service: %s", result.PrinterService))
	}
	if result.ManualOverrideApplied {
		lines = append(lines, fmt.Sprintf("  manual override applied (calculated: %s)",
			FormatWidth(result.OriginalCalculatedWidthMM, "mm")))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func primaryWidth(result *types.SpineResult) string {
	if result.Metadata.UnitSystem == "imperial" {
		return FormatWidth(result.WidthInches, "inches")
	}
	return FormatWidth(result.WidthMM, "mm")
}

// RenderJSON writes the result as indented JSON.
func RenderJSON(w io.Writer, result *types.SpineResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
