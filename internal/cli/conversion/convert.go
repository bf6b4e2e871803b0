package conversion

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go2opsin/go2opsin/internal/cli/shared"
	"github.com/go2opsin/go2opsin/internal/config"
	"github.com/go2opsin/go2opsin/internal/health"
	"github.com/go2opsin/go2opsin/internal/opsin"
	"github.com/go2opsin/go2opsin/internal/progress"
	"github.com/spf13/cobra"
)

// Output styles accepted by --output
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

type convertFlags struct {
	format           string
	allowAcid        bool
	allowRadicals    bool
	allowBadStereo   bool
	wildcardRadicals bool
	jar              string
	java             string
	input            string
	out              string
	output           string
	timeout          time.Duration
	progress         bool
	strict           bool
}

// NewConvertCmd returns the convert command.
func NewConvertCmd() *cobra.Command {
	f := &convertFlags{}
	cmd := &cobra.Command{
		Use:   "convert [names...]",
		Short: "Convert chemical names to structures with OPSIN",
		Long: `Convert IUPAC or common chemical names to structures by running OPSIN once.

A single name produces a single value. Several names, or names read with
--input, are converted as one batch and produce one output line per name in
input order; a name OPSIN cannot interpret produces an empty line and a warning.

Flags override the configuration file and GO2OPSIN_* environment variables.`,
		Example: `  # Single name to SMILES
  go2opsin convert ethane

  # Standard InChIKey for several names
  go2opsin convert -f StdInChIKey water methane "acetic acid"

  # Names from a file, one per line, results as JSON
  go2opsin convert --input names.txt --output json

  # Allow acids without the 'acid' suffix
  go2opsin convert -a acetic`,
		GroupID: shared.GroupConversion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, f)
		},
	}

	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format (see 'go2opsin formats')")
	cmd.Flags().BoolVarP(&f.allowAcid, "allow-acid", "a", false, "Interpret acids without the 'acid' suffix")
	cmd.Flags().BoolVarP(&f.allowRadicals, "allow-radicals", "r", false, "Interpret names describing radicals")
	cmd.Flags().BoolVarP(&f.allowBadStereo, "allow-bad-stereo", "s", false, "Ignore stereochemistry OPSIN cannot interpret")
	cmd.Flags().BoolVarP(&f.wildcardRadicals, "wildcard-radicals", "w", false, "Output radicals as wildcard atoms")
	cmd.Flags().StringVar(&f.jar, "jar", "", "Path to the OPSIN jar")
	cmd.Flags().StringVar(&f.java, "java", "", "Java launcher used to run the jar")
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "Read names from a file, one per line ('-' for stdin)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Write results to a file instead of stdout")
	cmd.Flags().StringVar(&f.output, "output", OutputText, "Result style: text, json or yaml")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Kill OPSIN after this long (e.g. 30s); 0 uses the configured timeout")
	cmd.Flags().BoolVar(&f.progress, "progress", false, "Show progress even when stderr is not a terminal")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Exit non-zero when any name could not be interpreted")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, f *convertFlags) error {
	switch f.output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return shared.WithExitCode(shared.ExitInvalidArguments,
			fmt.Errorf("invalid --output %q: must be text, json or yaml", f.output))
	}

	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := resolveOptions(cmd, cfg, f)
	if err != nil {
		return shared.WithExitCode(shared.ExitInvalidArguments, err)
	}

	names, err := collectNames(args, f.input, cmd.InOrStdin())
	if err != nil {
		return shared.WithExitCode(shared.ExitInvalidArguments, err)
	}
	req := opsin.Batch(names...)
	if f.input == "" && len(names) == 1 {
		req = opsin.Scalar(names[0])
	}

	if check := health.NewChecker(opts).CheckJar(); !check.Passed {
		return shared.WithExitCode(shared.ExitMissingDependency,
			fmt.Errorf("%s (run 'go2opsin doctor')", check.Message))
	}

	errOut := cmd.ErrOrStderr()
	logger := shared.NewLogger(errOut, cfg.LogLevel, shared.Debug(cmd))
	converter, err := opsin.NewConverter(opts, logger, nil)
	if err != nil {
		return shared.WithExitCode(shared.ExitInvalidArguments, err)
	}

	caps := detectCapabilities(errOut)
	var display *progress.ProgressDisplay
	task := progress.TaskInfo{Names: req.Len(), Format: converter.Options().Format.String()}
	if caps.IsTTY || f.progress {
		display = progress.NewProgressDisplay(caps, errOut)
		if err := display.Start(task); err != nil {
			display = nil
		}
	}

	res, err := converter.ConvertRequest(cmd.Context(), req)
	if err != nil {
		if display != nil {
			display.Fail(task, err)
		}
		return shared.WithExitCode(shared.ExitInvalidArguments, err)
	}
	if display != nil {
		if res.OK() {
			display.Succeed(task)
		} else {
			display.Fail(task, res.Err)
		}
	}

	report := buildReport(req, converter.Options().Format, res)
	if err := emit(cmd, f, report); err != nil {
		return err
	}
	if f.output == OutputText {
		printDiagnostics(errOut, res.Diagnostics, caps.SupportsColor)
	}

	if !res.OK() {
		code := shared.ExitCode(res.Err)
		if code == shared.ExitInvalidArguments {
			code = shared.ExitConversionFailed
		}
		if f.output == OutputText {
			return shared.WithExitCode(code, res.Err)
		}
		return shared.NewExitError(code)
	}
	if f.strict && len(res.Failures()) > 0 {
		return shared.NewExitError(shared.ExitConversionFailed)
	}
	return nil
}

// resolveOptions applies explicitly set flags on top of the loaded configuration.
func resolveOptions(cmd *cobra.Command, cfg *config.Configuration, f *convertFlags) (opsin.Options, error) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.OutputFormat = f.format
	}
	if flags.Changed("allow-acid") {
		cfg.AllowAcid = f.allowAcid
	}
	if flags.Changed("allow-radicals") {
		cfg.AllowRadicals = f.allowRadicals
	}
	if flags.Changed("allow-bad-stereo") {
		cfg.AllowBadStereo = f.allowBadStereo
	}
	if flags.Changed("wildcard-radicals") {
		cfg.WildcardRadicals = f.wildcardRadicals
	}
	if flags.Changed("jar") {
		cfg.JarPath = f.jar
	}
	if flags.Changed("java") {
		cfg.JavaCmd = f.java
	}

	opts, err := cfg.Options()
	if err != nil {
		return opsin.Options{}, err
	}
	if f.timeout < 0 {
		return opsin.Options{}, errors.New("--timeout must not be negative")
	}
	if f.timeout > 0 {
		opts.Timeout = f.timeout
	}
	return opts, opts.Validate()
}

// collectNames gathers names from the command line and, when input is set,
// from a file (or stdin for "-") holding one name per line. Blank lines are
// skipped.
func collectNames(args []string, input string, stdin io.Reader) ([]string, error) {
	names := append([]string(nil), args...)
	if input != "" {
		var r io.Reader = stdin
		if input != "-" {
			file, err := os.Open(input)
			if err != nil {
				return nil, fmt.Errorf("opening input file: %w", err)
			}
			defer file.Close()
			r = file
		}
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if name := strings.TrimSpace(scanner.Text()); name != "" {
				names = append(names, name)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading input file: %w", err)
		}
	}
	if len(names) == 0 {
		return nil, errors.New("no chemical names given: pass names as arguments or use --input")
	}
	return names, nil
}

// detectCapabilities inspects w when it is a file; anything else is treated
// as a pipe.
func detectCapabilities(w io.Writer) progress.TerminalCapabilities {
	if file, ok := w.(*os.File); ok {
		return progress.DetectTerminalCapabilities(file)
	}
	return progress.TerminalCapabilities{}
}

// emit writes the report to --out or stdout.
func emit(cmd *cobra.Command, f *convertFlags, report Report) error {
	if f.out == "" {
		return writeReport(cmd.OutOrStdout(), f.output, report)
	}
	file, err := os.Create(f.out)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := writeReport(file, f.output, report); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}
