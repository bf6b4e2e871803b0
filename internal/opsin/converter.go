// Package opsin bridges chemical-name conversion requests to the OPSIN
// command-line interpreter.
//
// A request is staged to a transient file, OPSIN runs once as a child
// process, and its output is mapped back onto the request: one value for a
// single name, or one positionally aligned value per name for a batch.
// Names OPSIN cannot interpret come back as "" with an explanation in the
// result's Diagnostics; problems running OPSIN itself produce a failed
// Result rather than an error.
//
// ValidationError is returned before anything runs for an invalid output
// format, invalid options, an empty request, a batch name containing a line
// break, and a batch request for CML output, whose records span several
// lines and so cannot be aligned with the names.
package opsin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofrs/flock"
	"github.com/sirupsen/logrus"
)

const lockRetryDelay = 50 * time.Millisecond

// Converter converts chemical names with a fixed set of options.
// It is safe for concurrent use.
type Converter struct {
	opts    Options
	format  OutputFormat
	decoder *Decoder
	invoker Invoker
	logger  *logrus.Logger
}

// NewConverter validates opts and returns a Converter. A nil invoker selects
// an ExecInvoker honouring opts.Timeout; a nil logger discards log output.
func NewConverter(opts Options, logger *logrus.Logger, invoker Invoker) (*Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	dec, err := NewDecoder(opts.Encoding)
	if err != nil {
		return nil, err
	}
	if invoker == nil {
		invoker = &ExecInvoker{Timeout: opts.Timeout}
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Converter{
		opts:    opts,
		format:  opts.format(),
		decoder: dec,
		invoker: invoker,
		logger:  logger,
	}, nil
}

// Options returns the converter's options.
func (c *Converter) Options() Options {
	return c.opts
}

// Convert interprets a single name.
func (c *Converter) Convert(ctx context.Context, name string) (*Result, error) {
	return c.ConvertRequest(ctx, Scalar(name))
}

// ConvertBatch interprets names in one OPSIN run.
func (c *Converter) ConvertBatch(ctx context.Context, names []string) (*Result, error) {
	return c.ConvertRequest(ctx, Batch(names...))
}

// ConvertRequest runs req through OPSIN. The returned error is always a
// *ValidationError raised before any process starts; failures to run OPSIN
// are reported through a StatusFailed Result.
func (c *Converter) ConvertRequest(ctx context.Context, req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if req.Shape() == ShapeBatch && c.format == FormatCML {
		return nil, &ValidationError{
			Field:   "output_format",
			Value:   string(c.format),
			Message: "CML output spans several lines per structure and cannot be used for batch requests",
		}
	}

	log := c.logger.WithFields(logrus.Fields{
		"shape":  req.Shape().String(),
		"names":  req.Len(),
		"format": c.format.String(),
	})

	if c.opts.LockFile != "" {
		lock := flock.New(c.opts.LockFile)
		locked, err := lock.TryLockContext(ctx, lockRetryDelay)
		if err != nil || !locked {
			if err == nil {
				err = fmt.Errorf("lock %s not acquired", c.opts.LockFile)
			}
			return c.fail(log, req.Shape(), &InvocationError{ExitCode: -1, Err: fmt.Errorf("acquiring invocation lock: %w", err)}, nil), nil
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				log.WithError(err).Warn("Failed to release invocation lock")
			}
		}()
	}

	staged, err := Stage(c.opts.ScratchDir, req)
	if err != nil {
		return c.fail(log, req.Shape(), &InvocationError{ExitCode: -1, Err: err}, nil), nil
	}
	defer func() {
		if err := staged.Remove(); err != nil {
			log.WithError(err).Warn("Failed to remove staged input")
		}
	}()

	args, err := c.opts.Args(staged.Path())
	if err != nil {
		return nil, err
	}

	log.Debugf("Running command: %s %v", c.opts.JavaCmd, args)
	inv, err := c.invoker.Invoke(ctx, c.opts.JavaCmd, args)
	if err != nil {
		return c.fail(log, req.Shape(), &InvocationError{ExitCode: -1, Err: err}, nil), nil
	}
	log.WithField("duration", inv.Duration).Debug("OPSIN finished")

	diags := ParseDiagnostics(inv.Stderr, c.decoder)
	if !diags.Empty() {
		log.WithField("diagnostics", len(diags)).Warn(diags.Aggregate())
	}

	value, values, err := Demultiplex(inv, req.Shape(), req.Len(), c.decoder)
	if err != nil {
		var cause *InvocationError
		if !errors.As(err, &cause) {
			cause = &InvocationError{ExitCode: inv.ExitCode, Err: err}
		}
		return c.fail(log, req.Shape(), cause, diags), nil
	}

	if req.Shape() == ShapeScalar {
		return okScalar(value, diags), nil
	}
	return okBatch(values, diags), nil
}

func (c *Converter) fail(log *logrus.Entry, shape Shape, cause *InvocationError, diags Diagnostics) *Result {
	log.WithError(cause).Warn("Unexpected error occurred while running OPSIN")
	return failed(shape, cause, diags)
}

// Convert interprets a single name with opts and no logging.
func Convert(ctx context.Context, name string, opts Options) (*Result, error) {
	c, err := NewConverter(opts, nil, nil)
	if err != nil {
		return nil, err
	}
	return c.Convert(ctx, name)
}

// ConvertBatch interprets names with opts and no logging.
func ConvertBatch(ctx context.Context, names []string, opts Options) (*Result, error) {
	c, err := NewConverter(opts, nil, nil)
	if err != nil {
		return nil, err
	}
	return c.ConvertBatch(ctx, names)
}
