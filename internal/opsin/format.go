package opsin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// OutputFormat selects the structure representation OPSIN emits.
type OutputFormat string

const (
	FormatSMILES         OutputFormat = "SMILES"
	FormatExtendedSMILES OutputFormat = "ExtendedSMILES"
	FormatCML            OutputFormat = "CML"
	FormatInChI          OutputFormat = "InChI"
	FormatStdInChI       OutputFormat = "StdInChI"
	FormatStdInChIKey    OutputFormat = "StdInChIKey"
)

// DefaultFormat is used when no format is configured.
const DefaultFormat = FormatSMILES

// suggestionCutoff is the conventional difflib close-match cutoff.
const suggestionCutoff = 0.6

// FormatInfo describes one output format for listings.
type FormatInfo struct {
	Format      OutputFormat
	Flag        string
	Description string
}

var formatTable = []FormatInfo{
	{FormatSMILES, "-osmi", "Canonical SMILES"},
	{FormatExtendedSMILES, "-oextendedsmiles", "Extended SMILES (ChemAxon CXSMILES)"},
	{FormatCML, "-ocml", "Chemical Markup Language"},
	{FormatInChI, "-oinchi", "InChI with fixed hydrogen layer"},
	{FormatStdInChI, "-ostdinchi", "Standard InChI"},
	{FormatStdInChIKey, "-ostdinchikey", "Standard InChIKey"},
}

// Formats returns every supported output format in documentation order.
func Formats() []FormatInfo {
	out := make([]FormatInfo, len(formatTable))
	copy(out, formatTable)
	return out
}

// FormatNames returns the accepted format strings.
func FormatNames() []string {
	names := make([]string, 0, len(formatTable))
	for _, f := range formatTable {
		names = append(names, string(f.Format))
	}
	return names
}

// Flag returns the OPSIN output flag, or "" for an unknown format.
func (f OutputFormat) Flag() string {
	for _, info := range formatTable {
		if info.Format == f {
			return info.Flag
		}
	}
	return ""
}

// Valid reports whether f is one of the supported formats.
func (f OutputFormat) Valid() bool {
	return f.Flag() != ""
}

func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat validates s against the supported formats. Matching is exact.
func ParseOutputFormat(s string) (OutputFormat, error) {
	f := OutputFormat(s)
	if f.Valid() {
		return f, nil
	}
	return "", invalidFormatError(s)
}

func invalidFormatError(s string) *ValidationError {
	msg := fmt.Sprintf("Output format %s is invalid.", s)
	if best, ok := closestMatch(s, FormatNames()); ok {
		msg += fmt.Sprintf(" Did you mean '%s'?", best)
	} else {
		msg += " Try 'go2opsin formats' for the list of valid formats."
	}
	return &ValidationError{Field: "output_format", Value: s, Message: msg}
}

// closestMatch returns the single candidate most similar to word by difflib
// ratio, provided it reaches suggestionCutoff.
func closestMatch(word string, candidates []string) (string, bool) {
	type scored struct {
		candidate string
		score     float64
	}

	target := splitChars(word)
	m := difflib.NewMatcher(nil, target)

	var hits []scored
	for _, c := range candidates {
		m.SetSeq1(splitChars(c))
		if m.RealQuickRatio() < suggestionCutoff || m.QuickRatio() < suggestionCutoff {
			continue
		}
		if r := m.Ratio(); r >= suggestionCutoff {
			hits = append(hits, scored{c, r})
		}
	}
	if len(hits) == 0 {
		return "", false
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].candidate > hits[j].candidate
	})
	return hits[0].candidate, true
}

func splitChars(s string) []string {
	return strings.Split(s, "")
}
