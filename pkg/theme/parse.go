package theme

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-kestrel/kestrel/pkg/errors"
)

// schemaMajor is the theme file schema this package understands.
const schemaMajor = "v1"

// definition is the on-disk YAML shape of a theme.
type definition struct {
	Version string            `yaml:"version"`
	Base    string            `yaml:"base,omitempty"`
	Colors  map[string]string `yaml:"colors"`
	Metrics *metricsDef       `yaml:"metrics,omitempty"`
}

type metricsDef struct {
	Padding           *int `yaml:"padding,omitempty"`
	Spacing           *int `yaml:"spacing,omitempty"`
	BorderWidth       *int `yaml:"border-width,omitempty"`
	SliderTrackHeight *int `yaml:"slider-track-height,omitempty"`
	SliderThumbWidth  *int `yaml:"slider-thumb-width,omitempty"`
	CheckboxBox       *int `yaml:"checkbox-box,omitempty"`
}

// Parse decodes a YAML theme definition.
//
// The file must carry a semver `version` with major v1. Colors override the
// base theme ("light" by default, "dark" if named); token names missing from
// the file keep their base values, unknown names are errors.
func Parse(data []byte) (*Theme, error) {
	const op = "theme.Parse"

	var def definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, errors.Theme(op, err)
	}

	if !semver.IsValid(def.Version) {
		return nil, errors.Theme(op, fmt.Errorf("invalid version %q", def.Version))
	}
	if semver.Major(def.Version) != schemaMajor {
		return nil, errors.Theme(op, fmt.Errorf("unsupported schema version %s", def.Version))
	}

	base := Light()
	switch def.Base {
	case "", "light":
	case "dark":
		base = Dark()
	default:
		return nil, errors.Theme(op, fmt.Errorf("unknown base theme %q", def.Base))
	}

	colors := base.colors
	for name, value := range def.Colors {
		tok, ok := tokenNames[name]
		if !ok {
			return nil, errors.Theme(op, fmt.Errorf("unknown color token %q", name))
		}
		c, err := parseHexColor(value)
		if err != nil {
			return nil, errors.Theme(op, fmt.Errorf("token %q: %w", name, err))
		}
		colors[tok] = c
	}

	metrics := base.metrics
	if def.Metrics != nil {
		applyMetric(&metrics.Padding, def.Metrics.Padding)
		applyMetric(&metrics.Spacing, def.Metrics.Spacing)
		applyMetric(&metrics.BorderWidth, def.Metrics.BorderWidth)
		applyMetric(&metrics.SliderTrackHeight, def.Metrics.SliderTrackHeight)
		applyMetric(&metrics.SliderThumbWidth, def.Metrics.SliderThumbWidth)
		applyMetric(&metrics.CheckboxBox, def.Metrics.CheckboxBox)
	}

	return New(colors, base.face, metrics), nil
}

func applyMetric(dst *int, src *int) {
	if src != nil && *src >= 0 {
		*dst = *src
	}
}

// parseHexColor accepts "#RRGGBB" and "#AARRGGBB".
func parseHexColor(s string) (Color, error) {
	hexPart, ok := strings.CutPrefix(s, "#")
	if !ok {
		return 0, fmt.Errorf("color %q must start with '#'", s)
	}
	v, err := strconv.ParseUint(hexPart, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q is not valid hex", s)
	}
	switch len(hexPart) {
	case 6:
		return Color(v) | Color(0xFF)<<24, nil
	case 8:
		return Color(v), nil
	default:
		return 0, fmt.Errorf("color %q must have 6 or 8 hex digits", s)
	}
}
