package opsin

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultJarPath is the file name of the OPSIN command-line jar shipped
// alongside the binary.
const DefaultJarPath = "opsin-cli-2.7.0-jar-with-dependencies.jar"

// DefaultJavaCmd is the Java launcher looked up on PATH.
const DefaultJavaCmd = "java"

// Modifiers are the independent interpretation switches OPSIN accepts.
type Modifiers struct {
	// AllowAcid permits interpreting acids without the "acid" suffix.
	AllowAcid bool `json:"allow_acid" yaml:"allow_acid"`
	// AllowRadicals permits names that describe radicals.
	AllowRadicals bool `json:"allow_radicals" yaml:"allow_radicals"`
	// AllowBadStereo ignores stereochemistry OPSIN cannot interpret.
	AllowBadStereo bool `json:"allow_bad_stereo" yaml:"allow_bad_stereo"`
	// WildcardRadicals renders radicals as wildcard atoms.
	WildcardRadicals bool `json:"wildcard_radicals" yaml:"wildcard_radicals"`
}

// Flags returns the OPSIN flags for every enabled modifier, always in the
// order -a, -r, -s, -w.
func (m Modifiers) Flags() []string {
	var flags []string
	if m.AllowAcid {
		flags = append(flags, "-a")
	}
	if m.AllowRadicals {
		flags = append(flags, "-r")
	}
	if m.AllowBadStereo {
		flags = append(flags, "-s")
	}
	if m.WildcardRadicals {
		flags = append(flags, "-w")
	}
	return flags
}

// Options configures a Converter.
type Options struct {
	// JavaCmd is the program used to run the jar.
	JavaCmd string `validate:"required"`
	// JarPath points at the OPSIN command-line jar.
	JarPath string `validate:"required"`
	// Format is the requested output format; empty means DefaultFormat.
	Format OutputFormat

	Modifiers

	// Timeout bounds a single invocation. Zero means no limit.
	Timeout time.Duration `validate:"min=0"`
	// ScratchDir holds staged input files. Empty means os.TempDir().
	ScratchDir string
	// LockFile, when set, serializes invocations across processes.
	LockFile string
	// Encoding names the text encoding of OPSIN's output streams.
	// Empty means UTF-8.
	Encoding string
}

// DefaultOptions returns options using the bundled jar and SMILES output.
func DefaultOptions() Options {
	return Options{
		JavaCmd: DefaultJavaCmd,
		JarPath: DefaultJarPath,
		Format:  DefaultFormat,
	}
}

// Validate checks the options without touching the filesystem.
func (o Options) Validate() error {
	if err := validator.New().Struct(o); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return &ValidationError{
				Field:   fe.Field(),
				Value:   fmt.Sprint(fe.Value()),
				Message: fmt.Sprintf("invalid option %s: failed %q constraint", fe.Field(), fe.Tag()),
			}
		}
		return fmt.Errorf("validating options: %w", err)
	}
	if _, err := ParseOutputFormat(string(o.format())); err != nil {
		return err
	}
	if _, err := lookupEncoding(o.Encoding); err != nil {
		return err
	}
	return nil
}

func (o Options) format() OutputFormat {
	if o.Format == "" {
		return DefaultFormat
	}
	return o.Format
}

// Args assembles the interpreter argument list for a staged input file:
//
//	-jar <jar> <output-flag> [modifier flags...] <input>
func (o Options) Args(inputPath string) ([]string, error) {
	f, err := ParseOutputFormat(string(o.format()))
	if err != nil {
		return nil, err
	}
	args := []string{"-jar", o.JarPath, f.Flag()}
	args = append(args, o.Modifiers.Flags()...)
	return append(args, inputPath), nil
}
