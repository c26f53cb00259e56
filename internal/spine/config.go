// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package spine

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mmartin-sub/bookspine/pkg/types"
)

//go:embed printer_services/*.json
var embeddedConfigs embed.FS

// PrinterConfig is a printer service's calculation parameters: paper
// bulk factors per stock, cover thickness per binding, and the formula
// each binding type uses.
type PrinterConfig struct {
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	PaperBulk      map[string]float64 `json:"paper_bulk"`
	CoverThickness map[string]float64 `json:"cover_thickness"`
	Formulas       map[string]Formula `json:"formulas,omitempty"`
}

// Formula selects and parameterizes a calculation method for one
// binding type.
type Formula struct {
	Type   string        `json:"type"`
	Params FormulaParams `json:"params"`
}

// FormulaParams carries the union of per-formula parameters; each
// formula type reads only its own fields.
type FormulaParams struct {
	PagesPerInch  float64     `json:"pages_per_inch,omitempty"`
	BaseThickness float64     `json:"base_thickness,omitempty"`
	Ranges        []PageRange `json:"ranges,omitempty"`
}

// PageRange maps an inclusive page-count interval to a fixed spine
// width. MaxPages of nil means unbounded above.
type PageRange struct {
	MinPages    int     `json:"min_pages"`
	MaxPages    *int    `json:"max_pages,omitempty"`
	WidthInches float64 `json:"width_inches"`
}

// Formula type names accepted in configurations.
const (
	FormulaGeneral      = "general"
	FormulaPagesPerInch = "pages_per_inch"
	FormulaFixedRanges  = "fixed_ranges"
)

// Loader resolves printer-service configurations. With an empty Dir the
// embedded defaults are used; a directory override makes the loader
// read <dir>/<service>.json instead.
type Loader struct {
	Dir string
}

// Load reads and validates the named service configuration. An empty
// name loads "default".
func (l *Loader) Load(service string) (*PrinterConfig, error) {
	if service == "" {
		service = "default"
	}

	var (
		data []byte
		err  error
		src  string
	)
	if l.Dir != "" {
		src = filepath.Join(l.Dir, service+".json")
		data, err = os.ReadFile(src)
	} else {
		src = "printer_services/" + service + ".json"
		data, err = embeddedConfigs.ReadFile(src)
	}
	if err != nil {
		return nil, &types.ConfigurationError{Msg: fmt.Sprintf("printer service %q not found", service), Err: err}
	}

	var cfg PrinterConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &types.ConfigurationError{Msg: fmt.Sprintf("invalid JSON in %s", src), Err: err}
	}
	if err := cfg.validate(service); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Services lists the available service names, sorted.
func (l *Loader) Services() ([]string, error) {
	var names []string
	if l.Dir != "" {
		entries, err := os.ReadDir(l.Dir)
		if err != nil {
			return nil, &types.ConfigurationError{Msg: fmt.Sprintf("reading configuration directory %s", l.Dir), Err: err}
		}
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".json") {
				names = append(names, strings.TrimSuffix(e.Name(), ".json"))
			}
		}
	} else {
		entries, err := embeddedConfigs.ReadDir("printer_services")
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			names = append(names, strings.TrimSuffix(e.Name(), ".json"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// validate enforces the configuration schema: every known paper type
// needs a positive bulk factor, every binding type a non-negative cover
// thickness, and any formula must be of a known type.
func (c *PrinterConfig) validate(service string) error {
	if c.Name == "" {
		return configErrf("missing required field %q in configuration for service %q", "name", service)
	}
	if c.Description == "" {
		return configErrf("missing required field %q in configuration for service %q", "description", service)
	}
	if c.PaperBulk == nil {
		return configErrf("missing required field %q in configuration for service %q", "paper_bulk", service)
	}
	if c.CoverThickness == nil {
		return configErrf("missing required field %q in configuration for service %q", "cover_thickness", service)
	}

	for _, pt := range types.ValidPaperTypes {
		bulk, ok := c.PaperBulk[pt]
		if !ok {
			return configErrf("missing paper type %q in paper_bulk for service %q", pt, service)
		}
		if bulk <= 0 {
			return configErrf("paper bulk for %q must be positive in service %q", pt, service)
		}
	}
	for _, bt := range types.ValidBindingTypes {
		thickness, ok := c.CoverThickness[bt]
		if !ok {
			return configErrf("missing binding type %q in cover_thickness for service %q", bt, service)
		}
		if thickness < 0 {
			return configErrf("cover thickness for %q must be non-negative in service %q", bt, service)
		}
	}
	for bt, f := range c.Formulas {
		switch f.Type {
		case FormulaGeneral, FormulaPagesPerInch, FormulaFixedRanges:
		case "":
			return configErrf("formula for %q missing type in service %q", bt, service)
		default:
			return configErrf("unknown formula type %q for binding type %q in service %q", f.Type, bt, service)
		}
	}
	return nil
}

func configErrf(format string, args ...any) error {
	return &types.ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}
