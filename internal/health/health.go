// Package health runs on-demand checks that the Java runtime and the OPSIN
// jar needed for conversions are usable. Nothing here runs at import time.
package health

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/go2opsin/go2opsin/internal/opsin"
)

// probeName is converted as a smoke test once Java and the jar are found.
const (
	probeName   = "ethane"
	probeSMILES = "CC"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

func (r *HealthReport) add(c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Passed {
		r.Passed = false
	}
}

// Checker holds what the checks look at. Zero-valued hooks use the real
// filesystem, PATH and process execution.
type Checker struct {
	Options opsin.Options

	LookPath func(file string) (string, error)
	Stat     func(name string) (os.FileInfo, error)
	Invoker  opsin.Invoker
}

// NewChecker returns a Checker for the given conversion options.
func NewChecker(opts opsin.Options) *Checker {
	return &Checker{Options: opts}
}

func (c *Checker) lookPath(file string) (string, error) {
	if c.LookPath != nil {
		return c.LookPath(file)
	}
	return exec.LookPath(file)
}

func (c *Checker) stat(name string) (os.FileInfo, error) {
	if c.Stat != nil {
		return c.Stat(name)
	}
	return os.Stat(name)
}

func (c *Checker) invoker() opsin.Invoker {
	if c.Invoker != nil {
		return c.Invoker
	}
	return &opsin.ExecInvoker{Timeout: c.Options.Timeout}
}

// Run runs every check and returns a report. The conversion smoke test is
// only attempted when the Java runtime and the jar checks passed.
func (c *Checker) Run(ctx context.Context) *HealthReport {
	report := &HealthReport{
		Checks: make([]CheckResult, 0, 3),
		Passed: true,
	}

	javaCheck := c.CheckJava(ctx)
	report.add(javaCheck)

	jarCheck := c.CheckJar()
	report.add(jarCheck)

	if javaCheck.Passed && jarCheck.Passed {
		report.add(c.CheckConversion(ctx))
	}

	return report
}

// CheckJava checks that the Java launcher is on PATH and starts.
func (c *Checker) CheckJava(ctx context.Context) CheckResult {
	name := "Java runtime"
	path, err := c.lookPath(c.Options.JavaCmd)
	if err != nil {
		return CheckResult{
			Name:    name,
			Passed:  false,
			Message: fmt.Sprintf("%s not found in PATH (install a Java runtime, 8 or newer)", c.Options.JavaCmd),
		}
	}

	inv, err := c.invoker().Invoke(ctx, path, []string{"-version"})
	if err != nil {
		return CheckResult{Name: name, Passed: false, Message: fmt.Sprintf("running %s -version: %v", path, err)}
	}
	if !inv.Success() {
		return CheckResult{Name: name, Passed: false, Message: fmt.Sprintf("%s -version exited with code %d", path, inv.ExitCode)}
	}

	// java -version reports on stderr.
	version := firstLine(string(inv.Stderr))
	if version == "" {
		version = firstLine(string(inv.Stdout))
	}
	msg := fmt.Sprintf("found at %s", path)
	if version != "" {
		msg += fmt.Sprintf(" (%s)", version)
	}
	return CheckResult{Name: name, Passed: true, Message: msg}
}

// CheckJar checks that the OPSIN jar exists and is a regular file.
func (c *Checker) CheckJar() CheckResult {
	name := "OPSIN jar"
	info, err := c.stat(c.Options.JarPath)
	if err != nil {
		return CheckResult{
			Name:    name,
			Passed:  false,
			Message: fmt.Sprintf("%s not found (set jar_path or pass --jar)", c.Options.JarPath),
		}
	}
	if !info.Mode().IsRegular() {
		return CheckResult{Name: name, Passed: false, Message: fmt.Sprintf("%s is not a regular file", c.Options.JarPath)}
	}
	return CheckResult{Name: name, Passed: true, Message: fmt.Sprintf("found at %s", c.Options.JarPath)}
}

// CheckConversion converts a known name and compares the SMILES output.
func (c *Checker) CheckConversion(ctx context.Context) CheckResult {
	name := "Conversion"
	opts := c.Options
	opts.Format = opsin.FormatSMILES
	opts.Modifiers = opsin.Modifiers{}

	conv, err := opsin.NewConverter(opts, nil, c.invoker())
	if err != nil {
		return CheckResult{Name: name, Passed: false, Message: err.Error()}
	}
	res, err := conv.Convert(ctx, probeName)
	if err != nil {
		return CheckResult{Name: name, Passed: false, Message: err.Error()}
	}
	if !res.OK() {
		return CheckResult{Name: name, Passed: false, Message: res.Err.Error()}
	}
	got, _ := res.Value()
	if got != probeSMILES {
		return CheckResult{
			Name:    name,
			Passed:  false,
			Message: fmt.Sprintf("%s converted to %q, expected %q", probeName, got, probeSMILES),
		}
	}
	return CheckResult{Name: name, Passed: true, Message: fmt.Sprintf("%s -> %s", probeName, got)}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var output strings.Builder

	for _, check := range report.Checks {
		if check.Passed {
			fmt.Fprintf(&output, "✓ %s: %s\n", check.Name, check.Message)
		} else {
			fmt.Fprintf(&output, "✗ %s: %s\n", check.Name, check.Message)
		}
	}

	return output.String()
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
