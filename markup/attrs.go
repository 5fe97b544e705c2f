package markup

import (
	"math"
	"strconv"
	"strings"
)

// Attribute decoders. All of them follow the same policy: always return usable
// value, never fail, and record exactly one problem for every deviation from
// well formed input.

// Dimension is a size given either in pixels or in percents.
type Dimension struct {
	Value float64
	Unit  Unit
}

// IsZero reports whether dimension is absent.
func (d Dimension) IsZero() bool {
	return d.Value == 0
}

func (d Dimension) String() string {
	return strconv.FormatFloat(d.Value, 'f', -1, 64) + d.Unit.String()
}

// parseAlign matches value against allowed alignments ignoring case.
func parseAlign(value string, allowed []Align) (Align, bool) {
	value = strings.TrimSpace(value)
	for _, a := range allowed {
		if strings.EqualFold(value, a.String()) {
			return a, true
		}
	}
	return 0, false
}

func decodeAlign(n Node, attr, value string, allowed []Align, dflt Align) Align {
	if a, ok := parseAlign(value, allowed); ok {
		return a
	}
	Report(n, ProblemBadAlign, attr, value, dflt.String())
	return dflt
}

// DecodeHAlign decodes one of left, right, center. Defaults to left.
func DecodeHAlign(n Node, attr, value string) Align {
	return decodeAlign(n, attr, value, horizontalAligns, AlignLeft)
}

// DecodeVAlign decodes one of top, middle, bottom. Defaults to middle.
func DecodeVAlign(n Node, attr, value string) Align {
	return decodeAlign(n, attr, value, verticalAligns, AlignMiddle)
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// DecodeDimension decodes "<num>%", "<num>px" or bare "<num>" (pixels).
// Non-numeric magnitude results in 0, number followed by unknown unit results
// in 100%.
func DecodeDimension(n Node, attr, value string) Dimension {
	s := strings.TrimSpace(value)
	if s == "" {
		return Dimension{Unit: UnitPixels}
	}

	var (
		body string
		unit = UnitPixels
	)
	lower := strings.ToLower(s)
	switch {
	case strings.HasSuffix(lower, "%"):
		unit, body = UnitPercent, s[:len(s)-1]
	case strings.HasSuffix(lower, "px"):
		body = s[:len(s)-2]
	default:
		idx := strings.IndexFunc(s, func(r rune) bool { return !isASCIIDigit(r) && r != '.' })
		if idx < 0 {
			body = s
			break
		}
		if idx == 0 {
			Report(n, ProblemBadDimension, attr, value)
			return Dimension{Unit: UnitPixels}
		}
		Report(n, ProblemBadDimensionSfx, attr, value)
		return Dimension{Value: 100, Unit: UnitPercent}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(body), 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		Report(n, ProblemBadDimension, attr, value)
		return Dimension{Unit: unit}
	}
	return Dimension{Value: v, Unit: unit}
}

// DecodeMargin decodes integer pixel value, "px" suffix is optional.
func DecodeMargin(n Node, attr, value string) int {
	s := strings.TrimSpace(value)
	if len(s) >= 2 && strings.EqualFold(s[len(s)-2:], "px") {
		s = strings.TrimSpace(s[:len(s)-2])
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		Report(n, ProblemBadMargin, attr, value)
		return 0
	}
	return v
}

// DecodeInt decodes integer which could not be less than lower bound.
func DecodeInt(n Node, attr, value string, lower, dflt int) int {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || v < lower {
		Report(n, ProblemBadNumber, attr, value, dflt)
		return dflt
	}
	return v
}

// parseBool accepts everything strconv.ParseBool does plus yes/no.
func parseBool(value string) (bool, bool) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "yes":
		return true, true
	case "no":
		return false, true
	}
	v, err := strconv.ParseBool(value)
	if err != nil {
		return false, false
	}
	return v, true
}
