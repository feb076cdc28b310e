package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/sphpost/internal/particles"
)

const tableTop = ` _______________________________________
|         |         |         |         |
|         |   min   |  mean   |   max   |
|_________|_________|_________|_________|
|         |         |         |         |
`

const (
	tableGap    = "|         |         |         |         |\n"
	tableBottom = "|_________|_________|_________|_________|\n"
)

// Write prints the summary: quarter sum, ring pressure range, expected
// curvature, then the kappa / epsilon table with %7.3f cells.
func Write(w io.Writer, s *Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Quarter sum of Dmv/Dt        : [ %s , %s , %s ]\n",
		FormatFloat(s.QuarterSum[0]), FormatFloat(s.QuarterSum[1]), FormatFloat(s.QuarterSum[2]))
	fmt.Fprintf(&b, "Pressure range               : [ %s , %s ]\n",
		FormatFloat(s.Pressure.Min), FormatFloat(s.Pressure.Max))
	fmt.Fprintf(&b, "Expected curvature           : %s\n", FormatFloat(s.ExpectedCurvature))

	b.WriteString(tableTop)
	b.WriteString(tableRow("kappa", s.Kappa))
	b.WriteString(tableGap)
	b.WriteString(tableRow("epsilon", s.Epsilon))
	b.WriteString(tableBottom)

	_, err := io.WriteString(w, b.String())
	return err
}

func tableRow(label string, st Stats) string {
	return fmt.Sprintf("| %-7s | %s | %s | %s |\n", label, cell(st.Min), cell(st.Mean), cell(st.Max))
}

// cell formats v as %7.3f, spelling non-finite values nan, inf and -inf.
func cell(v float64) string {
	switch {
	case math.IsNaN(v):
		return fmt.Sprintf("%7s", "nan")
	case math.IsInf(v, 1):
		return fmt.Sprintf("%7s", "inf")
	case math.IsInf(v, -1):
		return fmt.Sprintf("%7s", "-inf")
	}
	return fmt.Sprintf("%7.3f", v)
}

// FormatFloat prints the shortest representation that round-trips, always
// with a decimal point or an exponent: 1.0, 0.25, 1e-05, 1e+16.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// WriteFields prints the first and last values of every loaded field.
func WriteFields(w io.Writer, s *particles.Snapshot) error {
	var b strings.Builder
	b.WriteString("Read from files :\n")
	for _, name := range particles.RequiredFields {
		col, _ := s.Field(name)
		fmt.Fprintf(&b, "%-6s: %s\n", name, HeadTail(col, 3))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// HeadTail renders the first and last k values of v.
func HeadTail(v []float64, k int) string {
	format := func(vals []float64) string {
		parts := make([]string, len(vals))
		for i, x := range vals {
			parts[i] = FormatFloat(x)
		}
		return strings.Join(parts, "   ")
	}
	if len(v) <= 2*k {
		return "[ " + format(v) + " ]"
	}
	return "[ " + format(v[:k]) + "   ...   " + format(v[len(v)-k:]) + " ]"
}
