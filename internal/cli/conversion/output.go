package conversion

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/go2opsin/go2opsin/internal/opsin"
	"gopkg.in/yaml.v3"
)

// Report is the structured form of a conversion written by --output json|yaml.
type Report struct {
	Status      string   `json:"status" yaml:"status"`
	Format      string   `json:"format" yaml:"format"`
	Batch       bool     `json:"batch" yaml:"batch"`
	Results     []Entry  `json:"results,omitempty" yaml:"results,omitempty"`
	Diagnostics []string `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Error       string   `json:"error,omitempty" yaml:"error,omitempty"`
	ExitCode    int      `json:"exit_code,omitempty" yaml:"exit_code,omitempty"`
}

// Entry pairs one input name with its converted value.
type Entry struct {
	Name        string `json:"name" yaml:"name"`
	Value       string `json:"value" yaml:"value"`
	Interpreted bool   `json:"interpreted" yaml:"interpreted"`
}

func buildReport(req opsin.Request, format opsin.OutputFormat, res *opsin.Result) Report {
	report := Report{
		Status: res.Status.String(),
		Format: format.String(),
		Batch:  req.Shape() == opsin.ShapeBatch,
	}
	for _, d := range res.Diagnostics {
		report.Diagnostics = append(report.Diagnostics, d.Message)
	}
	if !res.OK() {
		report.Error = res.Err.Error()
		report.ExitCode = res.Err.ExitCode
		return report
	}

	names := req.Names()
	values := []string{}
	if v, ok := res.Value(); ok {
		values = []string{v}
	} else if vs, ok := res.Values(); ok {
		values = vs
	}
	for i, name := range names {
		report.Results = append(report.Results, Entry{
			Name:        name,
			Value:       values[i],
			Interpreted: values[i] != "",
		})
	}
	return report
}

// writeReport renders report in the given style. Text output is one value
// per line in input order, with an empty line for each uninterpretable name.
func writeReport(w io.Writer, style string, report Report) error {
	switch style {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
	default:
		for _, entry := range report.Results {
			if _, err := fmt.Fprintln(w, entry.Value); err != nil {
				return fmt.Errorf("writing results: %w", err)
			}
		}
	}
	return nil
}

// printDiagnostics writes OPSIN's explanations as warnings.
func printDiagnostics(w io.Writer, diags opsin.Diagnostics, useColor bool) {
	warn := color.New(color.FgYellow)
	if useColor {
		warn.EnableColor()
	} else {
		warn.DisableColor()
	}
	for _, d := range diags {
		warn.Fprintf(w, "warning: %s\n", d.Message)
	}
}
